package droid

import (
	"math"
	"testing"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"github.com/Givikap120/droidguard/framework/math/vector"
	. "github.com/smartystreets/goconvey/convey"
)

// streamMap is 20 slow circles, a 60 note stream and 20 slow circles again. The first
// circle after the stream still follows it at stream spacing.
func streamMap() []objects.IHitObject {
	var hitObjects []objects.IHitObject

	time := 1000.0

	add := func(count int, spacing float64, dist float32) {
		for i := 0; i < count; i++ {
			x := float32(200) + dist*float32(len(hitObjects)%2)
			hitObjects = append(hitObjects, objects.NewCircle(len(hitObjects), time, vector.NewVec2f(x, 192), i == 0))
			time += spacing
		}
	}

	add(20, 500, 120)
	add(60, 75, 30)
	add(20, 500, 120)

	return hitObjects
}

func sliderMap() []objects.IHitObject {
	var hitObjects []objects.IHitObject

	for i := 0; i < 30; i++ {
		start := 1000 + float64(i)*300
		head := vector.NewVec2f(100+float32(i%2)*250, 150)

		nested := []objects.NestedObject{
			{Kind: objects.NestedTick, Time: start + 75, Position: head.Add(vector.NewVec2f(100, 0))},
			{Kind: objects.NestedTail, Time: start + 150, Position: head.Add(vector.NewVec2f(200, 0))},
		}

		hitObjects = append(hitObjects, objects.NewSlider(i, start, head, false, nested, 1, 200))
	}

	return hitObjects
}

func newDiff() *difficulty.Difficulty {
	return difficulty.NewDifficulty(5, 4, 8, 9)
}

func TestFindThreeFingeredSections(t *testing.T) {
	Convey("Given per object tap strains", t, func() {
		strains := []float64{0, 10, 10, 10, 10, 10, 1, 10, 10, 0, 0, 0, 10, 10}

		sections := findThreeFingeredSections(strains)

		Convey("runs are merged across short gaps and short runs are dropped", func() {
			So(sections, ShouldHaveLength, 1)
			So(sections[0].FirstObjectIndex, ShouldEqual, 1)
			So(sections[0].LastObjectIndex, ShouldEqual, 8)
			So(sections[0].SumStrain, ShouldAlmostEqual, 71, 1e-9)
			So(sections[0].ObjectCount(), ShouldEqual, 8)
		})

		Convey("flat zero strain yields nothing", func() {
			So(findThreeFingeredSections(make([]float64, 10)), ShouldBeEmpty)
			So(findThreeFingeredSections(nil), ShouldBeEmpty)
		})
	})
}

func TestCalculateSingle(t *testing.T) {
	calc := NewDifficultyCalculator()

	Convey("An empty map has neutral attributes", t, func() {
		attr := calc.CalculateSingle(nil, newDiff())

		So(attr.ObjectCount, ShouldEqual, 0)
		So(attr.SliderFactor, ShouldEqual, 1)
		So(attr.PossibleThreeFingeredSections, ShouldBeEmpty)
		So(attr.DifficultSliders, ShouldBeEmpty)
	})

	Convey("Given a map with a single stream", t, func() {
		hitObjects := streamMap()
		attr := calc.CalculateSingle(hitObjects, newDiff())

		So(attr.ObjectCount, ShouldEqual, 100)
		So(attr.Circles, ShouldEqual, 100)
		So(attr.MaxCombo, ShouldEqual, 100)
		So(attr.Tap, ShouldBeGreaterThan, 0)
		So(attr.Total, ShouldBeGreaterThan, 0)

		Convey("the stream is reported as a possibly three-fingered section", func() {
			So(attr.PossibleThreeFingeredSections, ShouldNotBeEmpty)

			prevLast := -1
			for _, s := range attr.PossibleThreeFingeredSections {
				So(s.FirstObjectIndex, ShouldBeGreaterThan, prevLast)
				So(s.FirstObjectIndex, ShouldBeGreaterThanOrEqualTo, 20)
				So(s.LastObjectIndex, ShouldBeLessThanOrEqualTo, 80)
				So(s.ObjectCount(), ShouldBeGreaterThanOrEqualTo, MinSectionObjects)
				So(s.SumStrain, ShouldBeGreaterThan, 0)
				prevLast = s.LastObjectIndex
			}
		})
	})

	Convey("Given a map of fast sliders", t, func() {
		hitObjects := sliderMap()
		attr := calc.CalculateSingle(hitObjects, newDiff())

		So(attr.Sliders, ShouldEqual, 30)
		So(attr.MaxCombo, ShouldEqual, 90)
		So(attr.SliderFactor, ShouldBeGreaterThan, 0)
		So(attr.SliderFactor, ShouldBeLessThanOrEqualTo, 1)

		Convey("the aim skill counts the sliders near its top strain", func() {
			So(attr.AimDifficultSliderCount, ShouldBeGreaterThan, 0)
			So(attr.AimDifficultSliderCount, ShouldBeLessThan, float64(attr.Sliders))
		})

		Convey("difficult slider ratings point at sliders and sum to one", func() {
			So(attr.DifficultSliders, ShouldNotBeEmpty)

			sum := 0.0
			for _, s := range attr.DifficultSliders {
				So(hitObjects[s.Index].GetType(), ShouldEqual, objects.SLIDER)
				sum += s.DifficultyRating
			}

			So(sum, ShouldAlmostEqual, 1, 1e-9)
		})

		Convey("rebalance attributes carry a flashlight slider factor", func() {
			rebalance := calc.CalculateRebalance(hitObjects, newDiff())

			So(rebalance.GetFlashlightSliderFactor(), ShouldBeGreaterThan, 0)
			So(rebalance.GetFlashlightSliderFactor(), ShouldBeLessThanOrEqualTo, 1)
			So(rebalance.GetSliderFactor(), ShouldAlmostEqual, attr.SliderFactor, 1e-12)
		})
	})

	Convey("Strain peaks line up across skills", t, func() {
		peaks := calc.CalculateStrainPeaks(streamMap(), newDiff())

		So(len(peaks.Aim), ShouldEqual, len(peaks.Tap))
		So(len(peaks.Total), ShouldEqual, len(peaks.Aim))
	})
}

func TestPerformancePenalties(t *testing.T) {
	Convey("Given attributes of a slider map", t, func() {
		diff := newDiff()
		attr := NewDifficultyCalculator().CalculateSingle(sliderMap(), diff)

		calc := NewPPCalculator()
		base := calc.Calculate(attr, -1, -1, 0, 0, 0, 1, diff, api.NoPenalties())

		Convey("the three-finger penalty divides tap", func() {
			p := api.NoPenalties()
			p.ThreeFinger = 2

			res := calc.Calculate(attr, -1, -1, 0, 0, 0, 1, diff, p)
			So(res.Tap, ShouldAlmostEqual, base.Tap/2, 1e-9)
			So(res.Aim, ShouldAlmostEqual, base.Aim, 1e-9)
		})

		Convey("the slider cheese penalty multiplies aim", func() {
			p := api.NoPenalties()
			p.SliderCheeseAim = 0.5

			res := calc.Calculate(attr, -1, -1, 0, 0, 0, 1, diff, p)
			So(res.Aim, ShouldAlmostEqual, base.Aim/2, 1e-9)
		})

		Convey("two-handed objects reduce aim", func() {
			p := api.NoPenalties()
			p.TwoHandedObjects = attr.ObjectCount / 2

			res := calc.Calculate(attr, -1, -1, 0, 0, 0, 1, diff, p)
			So(res.Aim, ShouldBeLessThan, base.Aim)
		})

		Convey("non-finite penalties are ignored", func() {
			p := api.Penalties{ThreeFinger: math.NaN(), SliderCheeseAim: math.Inf(1)}

			res := calc.Calculate(attr, -1, -1, 0, 0, 0, 1, diff, p)
			So(res.Total, ShouldAlmostEqual, base.Total, 1e-9)
		})
	})
}
