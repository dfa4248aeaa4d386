package antiabuse

import (
	"math"

	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
)

// NerfFactor is the penalty contribution of one three-fingered section. Each factor is at least 1.
type NerfFactor struct {
	StrainFactor float64
	FingerFactor float64
	LengthFactor float64
}

func (n NerfFactor) Value() float64 {
	return n.StrainFactor * n.FingerFactor * n.LengthFactor
}

// SectionUsage describes how a section was tapped.
type SectionUsage struct {
	Section api.HighStrainSection

	// ObjectCount is the number of objects of the section that were matched to a press
	ObjectCount int

	LegitimatePresses int

	// ExtraPresses holds the presses of every extra finger, in order of first use
	ExtraPresses []int

	ExtraPressedObjects int
}

func (u SectionUsage) TotalExtraPresses() (total int) {
	for _, p := range u.ExtraPresses {
		total += p
	}

	return
}

// ThreeFingerScorer turns an abusive section into a nerf factor.
type ThreeFingerScorer interface {
	NerfFactor(usage SectionUsage) NerfFactor
	Weight() float64
}

// SliderCheeseScorer computes the flashlight penalty from the summed rating of cheesed sliders.
type SliderCheeseScorer interface {
	FlashlightPenalty(summedRating float64, attribs api.AbuseAttributes) float64
}

// Variant bundles the scoring formulas of one difficulty algorithm.
type Variant struct {
	Name         string
	ThreeFinger  ThreeFingerScorer
	SliderCheese SliderCheeseScorer
}

func Stable(cfg Config) Variant {
	return Variant{
		Name:         "stable",
		ThreeFinger:  &stableThreeFinger{scale: cfg.StableStrainScale, weight: cfg.StableNerfWeight},
		SliderCheese: stableSliderCheese{},
	}
}

func Rebalance(cfg Config) Variant {
	return Variant{
		Name:         "rebalance",
		ThreeFinger:  &rebalanceThreeFinger{scale: cfg.RebalanceStrainScale, weight: cfg.RebalanceNerfWeight},
		SliderCheese: rebalanceSliderCheese{},
	}
}

// VariantFor picks the variant matching the attributes' algorithm.
func VariantFor(attribs api.AbuseAttributes, cfg Config) Variant {
	if _, ok := attribs.(*api.RebalanceAttributes); ok {
		return Rebalance(cfg)
	}

	return Stable(cfg)
}

type stableThreeFinger struct {
	scale  float64
	weight float64
}

func (s *stableThreeFinger) NerfFactor(usage SectionUsage) NerfFactor {
	return NerfFactor{
		StrainFactor: max(1, usage.Section.SumStrain*s.scale),
		FingerFactor: fingerFactor(usage),
		LengthFactor: lengthFactor(usage),
	}
}

func (s *stableThreeFinger) Weight() float64 {
	return s.weight
}

type rebalanceThreeFinger struct {
	scale  float64
	weight float64
}

func (s *rebalanceThreeFinger) NerfFactor(usage SectionUsage) NerfFactor {
	strain := 0.0
	if n := usage.Section.ObjectCount(); n > 0 {
		strain = usage.Section.SumStrain / float64(n) * s.scale
	}

	return NerfFactor{
		StrainFactor: max(1, strain),
		FingerFactor: fingerFactor(usage),
		LengthFactor: lengthFactor(usage),
	}
}

func (s *rebalanceThreeFinger) Weight() float64 {
	return s.weight
}

// fingerFactor grows faster with the number of distinct extra fingers than with the number of
// presses of a single one.
func fingerFactor(usage SectionUsage) float64 {
	factor := 1.0

	if usage.LegitimatePresses == 0 {
		return factor
	}

	for k, presses := range usage.ExtraPresses {
		factor += math.Pow(float64(k+1)*float64(presses)/float64(usage.LegitimatePresses), 0.9)
	}

	return factor
}

func lengthFactor(usage SectionUsage) float64 {
	if usage.ObjectCount == 0 {
		return 1
	}

	return 1 + math.Pow(float64(usage.ExtraPressedObjects)/float64(usage.ObjectCount), 1.2)
}

type stableSliderCheese struct{}

func (stableSliderCheese) FlashlightPenalty(float64, api.AbuseAttributes) float64 {
	return 1
}

type rebalanceSliderCheese struct{}

func (rebalanceSliderCheese) FlashlightPenalty(summedRating float64, attribs api.AbuseAttributes) float64 {
	return cheesePenalty(summedRating, attribs.GetFlashlightSliderFactor())
}

// cheesePenalty never drops below the slider factor, the value with sliders not counted at all.
func cheesePenalty(summedRating, sliderFactor float64) float64 {
	if !(sliderFactor > 0 && sliderFactor < 1) {
		return 1
	}

	return max(sliderFactor, math.Pow(1-summedRating*sliderFactor, 2))
}
