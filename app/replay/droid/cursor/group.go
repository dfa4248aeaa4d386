package cursor

import (
	"sort"

	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/framework/math/vector"
)

// Group is one press-drag-release gesture on a cursor slot. It is a view of an inclusive
// range of the slot's decoded samples: the first sample is the press, the last one is the
// release when the gesture was lifted before the replay ended.
type Group struct {
	samples  []droid.Movement
	first    int
	last     int
	released bool
}

func (g Group) Press() droid.Movement {
	return g.samples[g.first]
}

func (g Group) Drags() []droid.Movement {
	end := g.last + 1
	if g.released {
		end = g.last
	}

	return g.samples[g.first+1 : end]
}

// Release returns the release sample, if the gesture was lifted.
func (g Group) Release() (droid.Movement, bool) {
	if !g.released {
		return droid.Movement{}, false
	}

	return g.samples[g.last], true
}

func (g Group) Released() bool {
	return g.released
}

// Samples returns every sample of the gesture in time order.
func (g Group) Samples() []droid.Movement {
	return g.samples[g.first : g.last+1]
}

func (g Group) StartTime() int32 {
	return g.samples[g.first].Time
}

// EndTime is the release time, else the last drag time, else the press time.
func (g Group) EndTime() int32 {
	return g.samples[g.last].Time
}

func (g Group) Duration() int32 {
	return g.EndTime() - g.StartTime()
}

func (g Group) Contains(time float64) bool {
	return time >= float64(g.StartTime()) && time <= float64(g.EndTime())
}

// PositionAt linearly interpolates the cursor position at time. Times outside the gesture are
// clamped to its first or last sample. Zero-length intervals resolve to the earlier sample.
func (g Group) PositionAt(time float64) vector.Vector2f {
	samples := g.Samples()

	if time <= float64(samples[0].Time) {
		return samples[0].Position
	}

	last := samples[len(samples)-1]
	if time >= float64(last.Time) {
		return last.Position
	}

	// first sample strictly after time; guaranteed to be in 1..len-1
	next := sort.Search(len(samples), func(i int) bool {
		return float64(samples[i].Time) > time
	})

	a, b := samples[next-1], samples[next]

	if b.Time == a.Time {
		return a.Position
	}

	t := (time - float64(a.Time)) / float64(b.Time-a.Time)

	return a.Position.Lerp(b.Position, float32(t))
}
