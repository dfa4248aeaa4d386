package droid

import (
	"math"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/skills"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0675
	CurrentVersion    int     = 20250301
)

type DifficultyCalculator struct{}

func NewDifficultyCalculator() *DifficultyCalculator {
	return &DifficultyCalculator{}
}

// getStarsFromRawValues converts raw skill values to Attributes
func (diffCalc *DifficultyCalculator) getStarsFromRawValues(rawAim, rawAimNoSliders, rawTap, rawFlashlight float64, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	aimRating := math.Sqrt(rawAim) * StarScalingFactor
	aimRatingNoSliders := math.Sqrt(rawAimNoSliders) * StarScalingFactor
	tapRating := math.Sqrt(rawTap) * StarScalingFactor
	flashlightRating := math.Sqrt(rawFlashlight) * StarScalingFactor

	sliderFactor := 1.0
	if aimRating > 0.00001 {
		sliderFactor = aimRatingNoSliders / aimRating
	}

	if diff.CheckModActive(difficulty.TouchDevice) {
		aimRating = math.Pow(aimRating, 0.8)
		flashlightRating = math.Pow(flashlightRating, 0.8)
	}

	if diff.CheckModActive(difficulty.Relax) {
		aimRating *= 0.9
		tapRating = 0
		flashlightRating *= 0.7
	}

	if diff.CheckModActive(difficulty.Relax2) {
		aimRating = 0
		flashlightRating *= 0.4
	}

	baseAimPerformance := skills.DefaultDifficultyToPerformance(aimRating)
	baseTapPerformance := skills.DefaultDifficultyToPerformance(tapRating)

	baseFlashlightPerformance := 0.0
	if diff.CheckModActive(difficulty.Flashlight) {
		baseFlashlightPerformance = skills.FlashlightDifficultyToPerformance(flashlightRating)
	}

	basePerformance := math.Pow(
		math.Pow(baseAimPerformance, 1.1)+
			math.Pow(baseTapPerformance, 1.1)+
			math.Pow(baseFlashlightPerformance, 1.1),
		1.0/1.1,
	)

	var total float64

	if basePerformance > 0.00001 {
		total = math.Cbrt(PerformanceBaseMultiplier) * 0.027 * (math.Cbrt(100000/math.Pow(2, 1/1.1)*basePerformance) + 4)
	}

	attr.Total = total
	attr.Aim = aimRating
	attr.SliderFactor = sliderFactor
	attr.Tap = tapRating
	attr.Flashlight = flashlightRating

	return attr
}

// Retrieves skill values and converts to Attributes
func (diffCalc *DifficultyCalculator) getStars(skills *SkillsProcessor, diff *difficulty.Difficulty, attr api.Attributes) api.Attributes {
	attr = diffCalc.getStarsFromRawValues(
		skills.Aim.DifficultyValue(),
		skills.AimWithoutSliders.DifficultyValue(),
		skills.Tap.DifficultyValue(),
		skills.Flashlight.DifficultyValue(),
		diff,
		attr,
	)

	attr.TapNoteCount = skills.Tap.RelevantNoteCount()
	attr.AimDifficultStrainCount = skills.Aim.CountDifficultStrains()
	attr.AimDifficultSliderCount = skills.Aim.DifficultSliderCount()
	attr.TapDifficultStrainCount = skills.Tap.CountDifficultStrains()

	return attr
}

func (diffCalc *DifficultyCalculator) addObjectToAttribs(o objects.IHitObject, attr *api.Attributes) {
	if s, ok := o.(*objects.Slider); ok {
		attr.Sliders++
		attr.MaxCombo += s.TickCount()
	} else if _, ok := o.(*objects.Circle); ok {
		attr.Circles++
	} else if _, ok := o.(*objects.Spinner); ok {
		attr.Spinners++
	}

	attr.MaxCombo++
	attr.ObjectCount++
}

func (diffCalc *DifficultyCalculator) process(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) (*SkillsProcessor, api.Attributes) {
	skills := NewSkillsProcessor(false)

	attr := api.Attributes{SliderFactor: 1}

	if len(hitObjects) == 0 {
		return skills, attr
	}

	diffCalc.addObjectToAttribs(hitObjects[0], &attr)

	for i, o := range preprocessing.CreateDifficultyObjects(hitObjects, diff) {
		diffCalc.addObjectToAttribs(hitObjects[i+1], &attr)

		skills.Process(o)
	}

	attr = diffCalc.getStars(skills, diff, attr)

	attr.PossibleThreeFingeredSections = findThreeFingeredSections(alignStrains(skills.Tap.ObjectStrains(), len(hitObjects)))
	attr.DifficultSliders = findDifficultSliders(
		hitObjects,
		alignStrains(skills.Aim.ObjectStrains(), len(hitObjects)),
		alignStrains(skills.AimWithoutSliders.ObjectStrains(), len(hitObjects)),
	)

	return skills, attr
}

// CalculateSingle calculates the final difficulty attributes of a map
func (diffCalc *DifficultyCalculator) CalculateSingle(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.Attributes {
	_, attr := diffCalc.process(hitObjects, diff)

	return attr
}

// CalculateStable returns the attributes the live abuse checks consume.
func (diffCalc *DifficultyCalculator) CalculateStable(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) *api.StableAttributes {
	return &api.StableAttributes{Attributes: diffCalc.CalculateSingle(hitObjects, diff)}
}

// CalculateRebalance also measures how much of the flashlight difficulty comes from sliders.
func (diffCalc *DifficultyCalculator) CalculateRebalance(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) *api.RebalanceAttributes {
	skills, attr := diffCalc.process(hitObjects, diff)

	flashlightSliderFactor := 1.0

	flashlight := math.Sqrt(skills.Flashlight.DifficultyValue())
	if flashlight > 0.00001 {
		flashlightSliderFactor = math.Sqrt(skills.FlashlightWithoutSliders.DifficultyValue()) / flashlight
	}

	return &api.RebalanceAttributes{
		Attributes:             attr,
		FlashlightSliderFactor: flashlightSliderFactor,
	}
}

func (diffCalc *DifficultyCalculator) CalculateStrainPeaks(hitObjects []objects.IHitObject, diff *difficulty.Difficulty) api.StrainPeaks {
	skills := NewSkillsProcessor(true)

	for _, o := range preprocessing.CreateDifficultyObjects(hitObjects, diff) {
		skills.Process(o)
	}

	peaks := api.StrainPeaks{
		Aim:        skills.Aim.GetCurrentStrainPeaks(),
		Tap:        skills.Tap.GetCurrentStrainPeaks(),
		Flashlight: skills.Flashlight.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Aim))

	for i := 0; i < len(peaks.Aim); i++ {
		stars := diffCalc.getStarsFromRawValues(peaks.Aim[i], peaks.Aim[i], peaks.Tap[i], peaks.Flashlight[i], diff, api.Attributes{})
		peaks.Total[i] = stars.Total
	}

	return peaks
}

func (diffCalc *DifficultyCalculator) GetVersion() int {
	return CurrentVersion
}

func (diffCalc *DifficultyCalculator) GetVersionMessage() string {
	return "2025-03-01: three-finger sections and difficult sliders"
}
