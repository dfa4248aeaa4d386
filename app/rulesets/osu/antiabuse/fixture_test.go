package antiabuse

import (
	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/framework/math/vector"
)

const (
	mapStart   = 1000.0
	tapHold    = 30
	objectStep = 150.0
)

// newDiff is OD8 CS4: Hit50 is 220ms, radius 36.48.
func newDiff() *difficulty.Difficulty {
	return difficulty.NewDifficulty(5, 4, 8, 9)
}

// gridPosition places consecutive objects 64px apart, repeating every 8 objects.
func gridPosition(i int) vector.Vector2f {
	return vector.NewVec2f(40+64*float32(i%8), 192)
}

func circleMap(n int, step float64, position func(i int) vector.Vector2f) *objects.Beatmap {
	b := &objects.Beatmap{Name: "fixture"}

	for i := 0; i < n; i++ {
		b.HitObjects = append(b.HitObjects, objects.NewCircle(i, mapStart+float64(i)*step, position(i), i == 0))
	}

	return b
}

func greatJudgements(n int) []droid.ObjectJudgement {
	judgements := make([]droid.ObjectJudgement, n)
	for i := range judgements {
		judgements[i].Result = droid.ResultGreat
	}

	return judgements
}

func movement(t float64, p vector.Vector2f, kind droid.MovementType) droid.Movement {
	return droid.Movement{Time: int32(t), Position: p, Type: kind, HasPosition: kind != droid.Release}
}

// tap appends a short press and release at p.
func tap(slot []droid.Movement, t float64, p vector.Vector2f) []droid.Movement {
	return append(slot, movement(t, p, droid.Press), movement(t+tapHold, p, droid.Release))
}

// tapObjects builds one slot per entry of owner, where owner[i] is the slot that taps object i.
func tapObjects(b *objects.Beatmap, slots int, owner func(i int) int) [][]droid.Movement {
	movements := make([][]droid.Movement, slots)

	for i, o := range b.HitObjects {
		slot := owner(i)
		movements[slot] = tap(movements[slot], o.GetStartTime(), o.GetStackedStartPosition())
	}

	return movements
}
