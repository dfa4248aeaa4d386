package objects

import (
	"testing"

	"github.com/Givikap120/droidguard/framework/math/vector"
)

func TestSliderHeadInserted(t *testing.T) {
	s := NewSlider(0, 1000, vector.NewVec2f(100, 100), true, []NestedObject{
		{Kind: NestedTick, Time: 1100, Position: vector.NewVec2f(150, 100)},
		{Kind: NestedTail, Time: 1200, Position: vector.NewVec2f(200, 100)},
	}, 1, 100)

	if s.Nested[0].Kind != NestedHead || s.TickCount() != 2 {
		t.Fatalf("unexpected nested layout: %+v", s.Nested)
	}

	if s.GetEndTime() != 1200 || s.GetEndPosition() != vector.NewVec2f(200, 100) {
		t.Fatalf("unexpected end %v %v", s.GetEndTime(), s.GetEndPosition())
	}
}

func TestStacking(t *testing.T) {
	c := NewCircle(0, 0, vector.NewVec2f(100, 100), true)
	c.StackIndex = 2
	c.SetStackOffset(40)

	if got := c.GetStackedStartPosition(); got != vector.NewVec2f(92, 92) {
		t.Fatalf("stacked position = %v", got)
	}
}

func TestBeatmapNewCombo(t *testing.T) {
	b := &Beatmap{HitObjects: []IHitObject{
		NewCircle(0, 0, vector.Vector2f{}, false),
		NewCircle(1, 100, vector.Vector2f{}, false),
		NewCircle(2, 200, vector.Vector2f{}, true),
	}}

	if !b.IsNewCombo(0) || b.IsNewCombo(1) || !b.IsNewCombo(2) || b.IsNewCombo(3) {
		t.Fatal("unexpected new combo flags")
	}
}
