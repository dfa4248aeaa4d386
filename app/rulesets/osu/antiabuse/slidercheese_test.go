package antiabuse

import (
	"context"
	"math"
	"testing"

	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/replay/droid/cursor"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"github.com/Givikap120/droidguard/framework/math/vector"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

const sliderCount = 5

// horizontalSliderMap has sliders going 200px to the right over 600ms, with a tick halfway.
func horizontalSliderMap() *objects.Beatmap {
	b := &objects.Beatmap{Name: "sliders"}

	for i := 0; i < sliderCount; i++ {
		start := mapStart + float64(i)*1000
		head := vector.NewVec2f(100, 192)

		b.HitObjects = append(b.HitObjects, objects.NewSlider(i, start, head, i == 0, []objects.NestedObject{
			{Kind: objects.NestedTick, Time: start + 300, Position: vector.NewVec2f(200, 192)},
			{Kind: objects.NestedTail, Time: start + 600, Position: vector.NewVec2f(300, 192)},
		}, 0, 200))
	}

	return b
}

func sliderJudgements() []droid.ObjectJudgement {
	judgements := greatJudgements(sliderCount)
	for i := range judgements {
		judgements[i].Tickset = []bool{true, true}
	}

	return judgements
}

// playSliders taps the head of every slider and follows the ones follow reports.
func playSliders(b *objects.Beatmap, follow func(i int) bool) [][]droid.Movement {
	var slot []droid.Movement

	for i, o := range b.HitObjects {
		s := o.(*objects.Slider)

		if !follow(i) {
			slot = tap(slot, s.GetStartTime(), s.GetStackedStartPosition())
			continue
		}

		slot = append(slot, movement(s.GetStartTime(), s.GetStackedStartPosition(), droid.Press))

		for _, n := range s.Nested[1:] {
			slot = append(slot, movement(n.Time, n.Position, droid.Drag))
		}

		slot = append(slot, movement(s.GetEndTime()+20, s.GetStackedEndPosition(), droid.Release))
	}

	return [][]droid.Movement{slot}
}

func TestSliderCheese(t *testing.T) {
	Convey("Given a map of sliders", t, func() {
		diff := newDiff()
		b := horizontalSliderMap()
		judgements := sliderJudgements()
		cfg := DefaultConfig()

		stable := func(sliders []api.DifficultSlider, factor float64) api.AbuseAttributes {
			return &api.StableAttributes{Attributes: api.Attributes{DifficultSliders: sliders, SliderFactor: factor}}
		}

		check := func(attribs api.AbuseAttributes, movements [][]droid.Movement) SliderCheeseResult {
			replay := &droid.ReplayData{Objects: judgements, CursorMovements: movements}
			return NewSliderCheeseChecker(b, diff, attribs, replay, cursor.Build(movements), cfg, VariantFor(attribs, cfg).SliderCheese, logrus.New()).Check(context.Background())
		}

		cheeseAll := playSliders(b, func(int) bool { return false })
		followAll := playSliders(b, func(int) bool { return true })

		Convey("no difficult sliders means no penalty", func() {
			res := check(stable(nil, 0.8), cheeseAll)

			So(res.AimPenalty, ShouldEqual, 1)
			So(res.FlashlightPenalty, ShouldEqual, 1)
		})

		Convey("followed sliders are not penalised", func() {
			res := check(stable([]api.DifficultSlider{{Index: 2, DifficultyRating: 1}}, 0.8), followAll)

			So(res.CheesedSliders, ShouldBeEmpty)
			So(res.AimPenalty, ShouldEqual, 1)
		})

		Convey("a slider left right after its head is cheesed", func() {
			res := check(stable([]api.DifficultSlider{{Index: 2, DifficultyRating: 1}}, 0.8), cheeseAll)

			So(res.CheesedSliders, ShouldResemble, []int{2})
			So(res.SummedRating, ShouldEqual, 1)
			So(res.AimPenalty, ShouldAlmostEqual, 0.8, 1e-12)
			So(res.FlashlightPenalty, ShouldEqual, 1)
		})

		Convey("the penalty follows the summed rating of cheesed sliders", func() {
			sliders := []api.DifficultSlider{{Index: 3, DifficultyRating: 0.7}, {Index: 1, DifficultyRating: 0.3}}
			movements := playSliders(b, func(i int) bool { return i != 1 })

			res := check(stable(sliders, 0.3), movements)

			So(res.CheesedSliders, ShouldResemble, []int{1})
			So(res.SummedRating, ShouldAlmostEqual, 0.3, 1e-12)
			So(res.AimPenalty, ShouldAlmostEqual, math.Pow(1-0.3*0.3, 2), 1e-12)
		})

		Convey("the aim penalty never drops below the slider factor", func() {
			sliders := []api.DifficultSlider{{Index: 1, DifficultyRating: 0.5}, {Index: 2, DifficultyRating: 0.5}}

			for _, factor := range []float64{0.1, 0.5, 0.9} {
				res := check(stable(sliders, factor), cheeseAll)
				So(res.AimPenalty, ShouldBeGreaterThanOrEqualTo, factor)
			}
		})

		Convey("slider breaks are skipped", func() {
			judgements[2].HitOffset = int16(diff.SliderBreakOffset())

			res := check(stable([]api.DifficultSlider{{Index: 2, DifficultyRating: 1}}, 0.8), cheeseAll)
			So(res.AimPenalty, ShouldEqual, 1)
		})

		Convey("a late hit just inside the 50 window is still judged", func() {
			So(diff.SliderBreakOffset(), ShouldEqual, 233)
			judgements[2].HitOffset = int16(diff.Hit50)

			res := check(stable([]api.DifficultSlider{{Index: 2, DifficultyRating: 1}}, 0.8), cheeseAll)
			So(res.CheesedSliders, ShouldResemble, []int{2})
		})

		Convey("missed sliders are skipped", func() {
			judgements[2].Result = droid.ResultMiss

			res := check(stable([]api.DifficultSlider{{Index: 2, DifficultyRating: 1}}, 0.8), cheeseAll)
			So(res.AimPenalty, ShouldEqual, 1)
		})

		Convey("ticks the replay dropped are not checked", func() {
			judgements[2].Tickset = []bool{false, false}

			res := check(stable([]api.DifficultSlider{{Index: 2, DifficultyRating: 1}}, 0.8), cheeseAll)
			So(res.CheesedSliders, ShouldBeEmpty)
		})

		Convey("indices outside the map are ignored", func() {
			res := check(stable([]api.DifficultSlider{{Index: 99, DifficultyRating: 1}, {Index: -1, DifficultyRating: 1}}, 0.8), cheeseAll)
			So(res.AimPenalty, ShouldEqual, 1)
		})

		Convey("rebalance also penalises flashlight", func() {
			attribs := &api.RebalanceAttributes{
				Attributes:             api.Attributes{DifficultSliders: []api.DifficultSlider{{Index: 2, DifficultyRating: 1}}, SliderFactor: 0.8},
				FlashlightSliderFactor: 0.9,
			}

			res := check(attribs, cheeseAll)

			So(res.AimPenalty, ShouldAlmostEqual, 0.8, 1e-12)
			So(res.FlashlightPenalty, ShouldAlmostEqual, 0.9, 1e-12)
		})
	})
}

func TestCheesePenalty(t *testing.T) {
	Convey("Slider factors outside (0, 1) give no penalty", t, func() {
		So(cheesePenalty(1, 0), ShouldEqual, 1)
		So(cheesePenalty(1, 1), ShouldEqual, 1)
		So(cheesePenalty(1, math.NaN()), ShouldEqual, 1)
	})

	Convey("Nothing cheesed gives no penalty", t, func() {
		So(cheesePenalty(0, 0.5), ShouldEqual, 1)
	})
}
