package objects

import (
	"github.com/Givikap120/droidguard/framework/math/vector"
)

type Type int

const (
	CIRCLE Type = iota
	SLIDER
	SPINNER
)

func (t Type) String() string {
	switch t {
	case SLIDER:
		return "slider"
	case SPINNER:
		return "spinner"
	}

	return "circle"
}

type IHitObject interface {
	GetID() int
	GetType() Type

	GetStartTime() float64
	GetEndTime() float64
	GetDuration() float64

	GetStartPosition() vector.Vector2f
	GetEndPosition() vector.Vector2f

	GetStackedStartPosition() vector.Vector2f
	GetStackedEndPosition() vector.Vector2f

	GetStackIndex() int64
	SetStackOffset(radius float64)

	IsNewCombo() bool
}

// HitObject contains fields common to every object kind.
type HitObject struct {
	ID int

	StartTime float64
	EndTime   float64

	StartPosition vector.Vector2f
	EndPosition   vector.Vector2f

	StackIndex  int64
	StackOffset vector.Vector2f

	NewCombo bool
}

func (h *HitObject) GetID() int                        { return h.ID }
func (h *HitObject) GetStartTime() float64             { return h.StartTime }
func (h *HitObject) GetEndTime() float64               { return h.EndTime }
func (h *HitObject) GetDuration() float64              { return h.EndTime - h.StartTime }
func (h *HitObject) GetStartPosition() vector.Vector2f { return h.StartPosition }
func (h *HitObject) GetEndPosition() vector.Vector2f   { return h.EndPosition }
func (h *HitObject) GetStackIndex() int64              { return h.StackIndex }
func (h *HitObject) IsNewCombo() bool                  { return h.NewCombo }

func (h *HitObject) GetStackedStartPosition() vector.Vector2f {
	return h.StartPosition.Add(h.StackOffset)
}

func (h *HitObject) GetStackedEndPosition() vector.Vector2f {
	return h.EndPosition.Add(h.StackOffset)
}

// SetStackOffset recomputes the stack offset for the given circle radius.
func (h *HitObject) SetStackOffset(radius float64) {
	offset := float32(-float64(h.StackIndex) * radius / 10)
	h.StackOffset = vector.NewVec2f(offset, offset)
}

type Circle struct {
	*HitObject
}

func NewCircle(id int, time float64, position vector.Vector2f, newCombo bool) *Circle {
	return &Circle{
		HitObject: &HitObject{
			ID:            id,
			StartTime:     time,
			EndTime:       time,
			StartPosition: position,
			EndPosition:   position,
			NewCombo:      newCombo,
		},
	}
}

func (c *Circle) GetType() Type {
	return CIRCLE
}

type Spinner struct {
	*HitObject
}

func NewSpinner(id int, startTime, endTime float64, newCombo bool) *Spinner {
	center := vector.NewVec2f(256, 192)

	return &Spinner{
		HitObject: &HitObject{
			ID:            id,
			StartTime:     startTime,
			EndTime:       endTime,
			StartPosition: center,
			EndPosition:   center,
			NewCombo:      newCombo,
		},
	}
}

func (s *Spinner) GetType() Type {
	return SPINNER
}
