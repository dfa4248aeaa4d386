package cursor

import (
	"sort"

	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/framework/math/vector"
)

// Timeline holds the gestures of one cursor slot ordered by start time. Gestures never overlap.
type Timeline struct {
	Slot   int
	Groups []Group
}

// Build regroups the decoded samples of every slot into timelines. A press while a gesture is
// still open ends that gesture unreleased; drags and releases with no open gesture are dropped.
func Build(movements [][]droid.Movement) []Timeline {
	timelines := make([]Timeline, len(movements))

	for slot, samples := range movements {
		timelines[slot] = buildTimeline(slot, samples)
	}

	return timelines
}

func buildTimeline(slot int, samples []droid.Movement) Timeline {
	timeline := Timeline{Slot: slot}

	open := -1

	closeGroup := func(last int, released bool) {
		timeline.Groups = append(timeline.Groups, Group{
			samples:  samples,
			first:    open,
			last:     last,
			released: released,
		})
		open = -1
	}

	for i, m := range samples {
		switch m.Type {
		case droid.Press:
			if open != -1 {
				closeGroup(i-1, false)
			}

			open = i
		case droid.Release:
			if open != -1 {
				closeGroup(i, true)
			}
		}
	}

	if open != -1 {
		closeGroup(len(samples)-1, false)
	}

	return timeline
}

func (t *Timeline) PressCount() int {
	return len(t.Groups)
}

func (t *Timeline) Empty() bool {
	return len(t.Groups) == 0
}

// Search returns the index of the first gesture that ends at or after time, or len(Groups).
func (t *Timeline) Search(time float64) int {
	return sort.Search(len(t.Groups), func(i int) bool {
		return float64(t.Groups[i].EndTime()) >= time
	})
}

// ActiveAt returns the gesture that is down at time.
func (t *Timeline) ActiveAt(time float64) (int, bool) {
	i := t.Search(time)

	if i < len(t.Groups) && t.Groups[i].Contains(time) {
		return i, true
	}

	return -1, false
}

// PositionAt returns the cursor position at time if the slot is down.
func (t *Timeline) PositionAt(time float64) (vector.Vector2f, bool) {
	i, ok := t.ActiveAt(time)
	if !ok {
		return vector.Vector2f{}, false
	}

	return t.Groups[i].PositionAt(time), true
}

// ActiveSlots counts timelines with at least one gesture.
func ActiveSlots(timelines []Timeline) (count int) {
	for i := range timelines {
		if !timelines[i].Empty() {
			count++
		}
	}

	return
}
