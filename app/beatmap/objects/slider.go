package objects

import (
	"github.com/Givikap120/droidguard/framework/math/vector"
)

type NestedKind int

const (
	NestedHead NestedKind = iota
	NestedTick
	NestedRepeat
	NestedTail
)

func (k NestedKind) String() string {
	switch k {
	case NestedTick:
		return "tick"
	case NestedRepeat:
		return "repeat"
	case NestedTail:
		return "tail"
	}

	return "head"
}

// NestedObject is a precomputed judgement point along a slider path.
type NestedObject struct {
	Kind     NestedKind
	Time     float64
	Position vector.Vector2f
}

// Slider carries its precomputed nested objects; path approximation happens upstream.
// Nested[0] is always the head.
type Slider struct {
	*HitObject

	Nested      []NestedObject
	RepeatCount int
	Length      float64
}

func NewSlider(id int, startTime float64, position vector.Vector2f, newCombo bool, nested []NestedObject, repeats int, length float64) *Slider {
	if len(nested) == 0 || nested[0].Kind != NestedHead {
		nested = append([]NestedObject{{Kind: NestedHead, Time: startTime, Position: position}}, nested...)
	}

	last := nested[len(nested)-1]

	return &Slider{
		HitObject: &HitObject{
			ID:            id,
			StartTime:     startTime,
			EndTime:       last.Time,
			StartPosition: position,
			EndPosition:   last.Position,
			NewCombo:      newCombo,
		},
		Nested:      nested,
		RepeatCount: max(1, repeats),
		Length:      length,
	}
}

func (s *Slider) GetType() Type {
	return SLIDER
}

// StackedNestedPosition returns the position of nested object i with the stack offset applied.
func (s *Slider) StackedNestedPosition(i int) vector.Vector2f {
	return s.Nested[i].Position.Add(s.StackOffset)
}

// TickCount returns the number of nested objects after the head, which is the number of
// entries a replay tickset records for this slider.
func (s *Slider) TickCount() int {
	return len(s.Nested) - 1
}
