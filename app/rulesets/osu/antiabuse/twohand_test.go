package antiabuse

import (
	"context"
	"math"
	"testing"

	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/replay/droid/cursor"
	droidperf "github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid"
	"github.com/Givikap120/droidguard/framework/math/vector"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

// sidePosition jumps between the left and right side of the playfield.
func sidePosition(i int) vector.Vector2f {
	if i%2 == 0 {
		return vector.NewVec2f(100, 192)
	}

	return vector.NewVec2f(400, 192)
}

func TestTwoHand(t *testing.T) {
	Convey("Given a map jumping between both sides", t, func() {
		diff := newDiff()
		b := circleMap(40, 300, sidePosition)

		check := func(movements [][]droid.Movement) TwoHandResult {
			replay := &droid.ReplayData{Objects: greatJudgements(40), CursorMovements: movements}
			return NewTwoHandChecker(b, diff, replay, cursor.Build(movements), droidperf.NewDifficultyCalculator(), DefaultConfig(), logrus.New()).Check(context.Background())
		}

		Convey("one slot hitting everything is not two-handed", func() {
			res := check(tapObjects(b, 1, func(int) int { return 0 }))

			So(res.IsTwoHanded, ShouldBeFalse)
			So(res.TwoHandedObjectCount, ShouldEqual, 0)
		})

		Convey("an unused second slot does not count", func() {
			res := check(tapObjects(b, 2, func(int) int { return 0 }))

			So(res.IsTwoHanded, ShouldBeFalse)
		})

		Convey("each side hit by its own slot is two-handed", func() {
			res := check(tapObjects(b, 2, func(i int) int { return i % 2 }))

			So(res.IsTwoHanded, ShouldBeTrue)
			So(res.TwoHandedObjectCount, ShouldEqual, 20)
			So(res.SubTimelines, ShouldHaveLength, 2)

			for i, sub := range res.SubTimelines {
				So(sub.Slot, ShouldEqual, i)
				So(sub.ObjectIndices, ShouldHaveLength, 20)
				So(sub.Attributes.ObjectCount, ShouldEqual, 20)
			}

			for i, slot := range res.Assignments {
				So(slot, ShouldEqual, i%2)
			}
		})

		Convey("a slot used a few times is folded into the majority", func() {
			res := check(tapObjects(b, 2, func(i int) int {
				if i == 7 || i == 21 {
					return 1
				}

				return 0
			}))

			So(res.IsTwoHanded, ShouldBeFalse)
			So(res.TwoHandedObjectCount, ShouldEqual, 0)
			So(res.SubTimelines, ShouldHaveLength, 1)
		})
	})
}

// streamPosition lays objects on a straight horizontal line, 20px apart.
func streamPosition(i int) vector.Vector2f {
	return vector.NewVec2f(100+20*float32(i), 192)
}

func TestTwoHandDragPath(t *testing.T) {
	Convey("Given a slow straight stream tapped by the second slot", t, func() {
		diff := newDiff()
		b := circleMap(12, 400, streamPosition)

		movements := tapObjects(b, 2, func(int) int { return 1 })
		movements[0] = tap(movements[0], 0, vector.NewVec2f(400, 300))

		replay := &droid.ReplayData{Objects: greatJudgements(12), CursorMovements: movements}
		c := NewTwoHandChecker(b, diff, replay, cursor.Build(movements), droidperf.NewDifficultyCalculator(), DefaultConfig(), logrus.New())

		Convey("objects after an easy transition go to slot 0 without a search", func() {
			assignments, ok := c.assign(context.Background())
			So(ok, ShouldBeTrue)

			So(assignments[0], ShouldEqual, 1)
			So(assignments[1], ShouldEqual, 1)

			for _, slot := range assignments[2:] {
				So(slot, ShouldEqual, 0)
			}
		})

		Convey("the searched objects are folded into the drag slot", func() {
			res := c.Check(context.Background())

			So(res.IsTwoHanded, ShouldBeFalse)
			So(res.TwoHandedObjectCount, ShouldEqual, 0)
			So(res.Assignments, ShouldResemble, []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
		})
	})
}

func TestDragProbability(t *testing.T) {
	Convey("Wide slow transitions can be dragged", t, func() {
		So(dragProbability(math.Pi, 0, 0.5), ShouldAlmostEqual, 1, 1e-12)
	})

	Convey("Acute transitions are never dragged", t, func() {
		So(dragProbability(0, 0, 0.5), ShouldEqual, 0)
		So(dragProbability(math.Pi/3, 0, 0.5), ShouldEqual, 0)
	})

	Convey("Fast transitions are never dragged", t, func() {
		So(dragProbability(math.Pi, 0.5, 0.5), ShouldEqual, 0)
		So(dragProbability(math.Pi, 3, 0.5), ShouldEqual, 0)
	})

	Convey("An unknown angle is treated as a jump", t, func() {
		So(dragProbability(math.NaN(), 0, 0.5), ShouldEqual, 0)
	})
}

func TestNoiseSuppression(t *testing.T) {
	Convey("Given three slots", t, func() {
		c := &TwoHandChecker{timelines: make([]cursor.Timeline, 3), cfg: DefaultConfig()}

		Convey("a third slot is folded into the majority", func() {
			assignments := []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 2}

			So(c.suppressNoise(assignments), ShouldEqual, 0)
			So(assignments[12], ShouldEqual, 0)
			So(assignments[6], ShouldEqual, 1)
		})

		Convey("a rarely used second slot is folded too", func() {
			assignments := []int{1, 1, 1, 1, 1, 1, 0, 0, 0}

			So(c.suppressNoise(assignments), ShouldEqual, 1)
			So(assignments, ShouldResemble, []int{1, 1, 1, 1, 1, 1, 1, 1, 1})
		})
	})

	Convey("topTwo prefers lower indices on ties", t, func() {
		first, second := topTwo([]int{3, 7, 5})
		So(first, ShouldEqual, 1)
		So(second, ShouldEqual, 2)

		first, second = topTwo([]int{4, 4})
		So(first, ShouldEqual, 0)
		So(second, ShouldEqual, 1)

		first, second = topTwo([]int{4})
		So(first, ShouldEqual, 0)
		So(second, ShouldEqual, 0)
	})
}
