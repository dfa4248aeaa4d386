package antiabuse

import (
	"math"
	"sort"

	"github.com/Givikap120/droidguard/app/replay/droid/cursor"
	"github.com/Givikap120/droidguard/framework/math/vector"
)

// pressMatch is a press found for an object.
type pressMatch struct {
	Slot  int
	Group int

	TimeDistance float64
	Distance     float32
}

// pressQuery describes which press is looked for: one within Window ms of Time, optionally no
// farther than MaxDistance from Target.
type pressQuery struct {
	Time   float64
	Window float64

	Target      vector.Vector2f
	MaxDistance float32

	TieEpsilon float64
}

// nearestPress finds the press closest in time to the query among the included slots. Presses
// that are equally close in time are ranked by distance.
func nearestPress(seeker *cursor.Seeker, timelines []cursor.Timeline, included []bool, q pressQuery) (best pressMatch, found bool) {
	for slot := range timelines {
		if included != nil && !included[slot] {
			continue
		}

		first, groups := seeker.Window(slot, q.Time-q.Window, q.Time+q.Window)

		for i, g := range groups {
			press := g.Press()

			dt := math.Abs(float64(press.Time) - q.Time)
			if dt > q.Window {
				continue
			}

			dist := press.Position.Dst(q.Target)
			if q.MaxDistance > 0 && dist > q.MaxDistance {
				continue
			}

			better := !found ||
				dt < best.TimeDistance-q.TieEpsilon ||
				(math.Abs(dt-best.TimeDistance) <= q.TieEpsilon && dist < best.Distance)

			if better {
				best = pressMatch{Slot: slot, Group: first + i, TimeDistance: dt, Distance: dist}
				found = true
			}
		}
	}

	return
}

// filterAccidentalSlots marks the slots that pressed often enough to be a finger.
func filterAccidentalSlots(timelines []cursor.Timeline, minPresses int, minRatio float64) []bool {
	total := 0
	for i := range timelines {
		total += timelines[i].PressCount()
	}

	included := make([]bool, len(timelines))

	if total == 0 {
		return included
	}

	for i := range timelines {
		presses := timelines[i].PressCount()
		included[i] = presses > 0 && presses >= minPresses && float64(presses)/float64(total) >= minRatio
	}

	return included
}

func countIncluded(included []bool) (count int) {
	for _, in := range included {
		if in {
			count++
		}
	}

	return
}

// fingerMap assigns every gesture to a finger. Fingers are identified by the slot of their
// first gesture. Gestures of excluded slots map to -1.
type fingerMap struct {
	offsets []int
	fingers []int
}

func (m fingerMap) Finger(slot, group int) int {
	return m.fingers[m.offsets[slot]+group]
}

type gestureEvent struct {
	slot  int
	group int

	start int32
	end   int32

	pressPosition vector.Vector2f
	endPosition   vector.Vector2f

	released bool
}

type fingerState struct {
	used     bool
	released bool
	end      int32
	position vector.Vector2f
}

// buildFingerMap merges a press into the finger that was lifted just before, close by, on
// another slot: the same finger registered on a new slot.
func buildFingerMap(timelines []cursor.Timeline, included []bool, distancingTime, distancingDistance float64) fingerMap {
	m := fingerMap{offsets: make([]int, len(timelines))}

	var events []gestureEvent

	total := 0

	for slot := range timelines {
		m.offsets[slot] = total
		total += len(timelines[slot].Groups)

		if !included[slot] {
			continue
		}

		for i, g := range timelines[slot].Groups {
			samples := g.Samples()

			events = append(events, gestureEvent{
				slot:          slot,
				group:         i,
				start:         g.StartTime(),
				end:           g.EndTime(),
				pressPosition: g.Press().Position,
				endPosition:   samples[len(samples)-1].Position,
				released:      g.Released(),
			})
		}
	}

	m.fingers = make([]int, total)
	for i := range m.fingers {
		m.fingers[i] = -1
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].start == events[j].start {
			return events[i].slot < events[j].slot
		}

		return events[i].start < events[j].start
	})

	states := make([]fingerState, len(timelines))

	for _, e := range events {
		finger := e.slot

		bestEnd := int32(math.MinInt32)

		for f, st := range states {
			if f == e.slot || !st.used || !st.released || st.end > e.start {
				continue
			}

			if float64(e.start-st.end) > distancingTime || float64(st.position.Dst(e.pressPosition)) > distancingDistance {
				continue
			}

			if st.end > bestEnd {
				bestEnd = st.end
				finger = f
			}
		}

		prev := states[finger]

		state := fingerState{used: true, released: e.released, end: e.end, position: e.endPosition}
		if prev.used && prev.end > e.end {
			state = prev
		}

		states[finger] = state

		m.fingers[m.offsets[e.slot]+e.group] = finger
	}

	return m
}
