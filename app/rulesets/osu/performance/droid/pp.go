package droid

import (
	"math"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/skills"
	"github.com/Givikap120/droidguard/framework/math/mutils"
)

const (
	PerformanceBaseMultiplier float64 = 1.15

	// twoHandAimReduction is the share of aim taken away when every object is hit by a second hand
	twoHandAimReduction float64 = 0.5

	// estimatedDifficultSliderShare is the share of sliders assumed hard enough to be dropped
	// when the attributes carry no difficult slider count
	estimatedDifficultSliderShare float64 = 0.15
)

// PPv2 rates a play from its difficulty attributes, hit counts and abuse penalties.
type PPv2 struct {
	attribs   api.Attributes
	penalties api.Penalties
	diff      *difficulty.Difficulty

	combo int
	great int
	ok    int
	meh   int
	miss  int

	totalHits   int
	accuracy    float64
	missCount   float64
	judgedNotes int
}

func NewPPCalculator() api.IPerformanceCalculator {
	return &PPv2{}
}

// Calculate rates a play. Negative combo and n300 are filled in as a full combo SS.
func (pp *PPv2) Calculate(attribs api.Attributes, combo, n300, n100, n50, nmiss int, acc float64, diff *difficulty.Difficulty, penalties api.Penalties) api.PPv2Results {
	attribs.MaxCombo = max(1, attribs.MaxCombo)

	if combo < 0 {
		combo = attribs.MaxCombo
	}

	if n300 < 0 {
		n300 = attribs.ObjectCount - n100 - n50 - nmiss
	}

	*pp = PPv2{
		attribs:   attribs,
		penalties: sanitizePenalties(penalties),
		diff:      diff,
		combo:     combo,
		great:     n300,
		ok:        n100,
		meh:       n50,
		miss:      nmiss,
		totalHits: n300 + n100 + n50 + nmiss,
		accuracy:  acc,
	}

	pp.missCount = pp.effectiveMissCount()

	pp.judgedNotes = attribs.Circles
	if diff.CheckModActive(difficulty.ScoreV2) {
		pp.judgedNotes += attribs.Sliders
	}

	multiplier := pp.globalMultiplier()

	results := api.PPv2Results{
		Aim:        pp.aimValue(),
		Tap:        pp.tapValue(),
		Acc:        pp.accuracyValue(),
		Flashlight: pp.flashlightValue(),
	}

	sum := 0.0
	for _, v := range []float64{results.Aim, results.Tap, results.Acc, results.Flashlight} {
		sum += math.Pow(v, 1.1)
	}

	results.Total = math.Pow(sum, 1/1.1) * multiplier

	return results
}

// sanitizePenalties replaces unset or non-finite multipliers with neutral ones.
func sanitizePenalties(p api.Penalties) api.Penalties {
	valid := func(v float64) bool {
		return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
	}

	if !valid(p.ThreeFinger) || p.ThreeFinger < 1 {
		p.ThreeFinger = 1
	}

	if !valid(p.SliderCheeseAim) {
		p.SliderCheeseAim = 1
	}

	if !valid(p.SliderCheeseFlashlight) {
		p.SliderCheeseFlashlight = 1
	}

	p.TwoHandedObjects = max(0, p.TwoHandedObjects)

	return p
}

func (pp *PPv2) globalMultiplier() float64 {
	multiplier := PerformanceBaseMultiplier

	if pp.diff.CheckModActive(difficulty.NoFail) {
		multiplier *= max(0.9, 1-0.02*pp.missCount)
	}

	if pp.diff.CheckModActive(difficulty.SpunOut) && pp.totalHits > 0 {
		multiplier *= 1 - math.Pow(float64(pp.attribs.Spinners)/float64(pp.totalHits), 0.85)
	}

	if pp.diff.CheckModActive(difficulty.Relax) {
		// relax turns inaccurate hits into misses
		okWeight, mehWeight := 1.0, 1.0

		if od := pp.diff.ODReal; od > 0 {
			okWeight = max(0, 1-math.Pow(od/13.33, 1.8))
			mehWeight = max(0, 1-math.Pow(od/13.33, 5))
		}

		pp.missCount = min(pp.missCount+float64(pp.ok)*okWeight+float64(pp.meh)*mehWeight, float64(pp.totalHits))
	}

	return multiplier
}

func (pp *PPv2) lengthBonus() float64 {
	hits := float64(pp.totalHits)

	bonus := 0.95 + 0.4*min(1, hits/2000)
	if hits > 2000 {
		bonus += 0.5 * math.Log10(hits/2000)
	}

	return bonus
}

// approachRateBonus rewards high approach rates, and low ones too when withLow is set.
func (pp *PPv2) approachRateBonus(withLow bool) float64 {
	ar := pp.diff.ARReal

	factor := 0.0

	switch {
	case ar > 10.33:
		factor = 0.3 * (ar - 10.33)
	case withLow && ar < 8:
		factor = 0.05 * (8 - ar)
	}

	return 1 + factor*pp.lengthBonus()
}

func (pp *PPv2) hiddenBonus() float64 {
	if !pp.diff.CheckModActive(difficulty.Hidden) {
		return 1
	}

	return 1 + 0.04*(12-pp.diff.ARReal)
}

func (pp *PPv2) odScaling() float64 {
	return 0.98 + pp.diff.ODReal*pp.diff.ODReal/2500
}

// sliderNerf scales aim towards the slider factor by the number of slider ends the play
// probably dropped.
func (pp *PPv2) sliderNerf() float64 {
	if pp.attribs.Sliders == 0 {
		return 1
	}

	difficultSliders := pp.attribs.AimDifficultSliderCount
	if difficultSliders <= 0 {
		difficultSliders = float64(pp.attribs.Sliders) * estimatedDifficultSliderShare
	}

	dropped := float64(min(pp.ok+pp.meh+pp.miss, pp.attribs.MaxCombo-pp.combo))
	dropped = mutils.Clamp(dropped, 0, difficultSliders)

	sf := pp.attribs.SliderFactor

	return (1-sf)*math.Pow(1-dropped/difficultSliders, 3) + sf
}

// twoHandNerf takes away aim in proportion to the objects hit by a second hand.
func (pp *PPv2) twoHandNerf() float64 {
	if pp.attribs.ObjectCount == 0 || pp.penalties.TwoHandedObjects == 0 {
		return 1
	}

	ratio := min(1, float64(pp.penalties.TwoHandedObjects)/float64(pp.attribs.ObjectCount))

	return 1 - twoHandAimReduction*ratio
}

func (pp *PPv2) aimValue() float64 {
	value := skills.DefaultDifficultyToPerformance(pp.attribs.Aim) * pp.lengthBonus()

	if pp.missCount > 0 {
		value *= pp.missPenalty(pp.attribs.AimDifficultStrainCount)
	}

	if !pp.diff.CheckModActive(difficulty.Relax) {
		value *= pp.approachRateBonus(true)
	}

	value *= pp.hiddenBonus()
	value *= pp.sliderNerf()

	value *= pp.penalties.SliderCheeseAim
	value *= pp.twoHandNerf()

	return value * pp.accuracy * pp.odScaling()
}

// tapAccuracy is the accuracy of the notes that count towards tap difficulty, assuming the
// worst judgements fell on the easy ones.
func (pp *PPv2) tapAccuracy() float64 {
	notes := pp.attribs.TapNoteCount
	if notes == 0 {
		return 0
	}

	easy := float64(pp.totalHits) - notes

	great := max(0, float64(pp.great)-easy)
	ok := max(0, float64(pp.ok)-max(0, easy-float64(pp.great)))
	meh := max(0, float64(pp.meh)-max(0, easy-float64(pp.great)-float64(pp.ok)))

	return (great*6 + ok*2 + meh) / (notes * 6)
}

func (pp *PPv2) tapValue() float64 {
	if pp.diff.CheckModActive(difficulty.Relax) {
		return 0
	}

	value := skills.DefaultDifficultyToPerformance(pp.attribs.Tap) * pp.lengthBonus()

	if pp.missCount > 0 {
		value *= pp.missPenalty(pp.attribs.TapDifficultStrainCount)
	}

	value *= pp.approachRateBonus(false)
	value *= pp.hiddenBonus()

	od := pp.diff.ODReal
	value *= (0.95 + od*od/750) * math.Pow((pp.accuracy+pp.tapAccuracy())/2, (14.5-od)/2)

	// 50s hint at doubletapping
	if allowed := float64(pp.totalHits) / 500; float64(pp.meh) >= allowed {
		value *= math.Pow(0.99, float64(pp.meh)-allowed)
	}

	return value / pp.penalties.ThreeFinger
}

func (pp *PPv2) accuracyValue() float64 {
	if pp.diff.CheckModActive(difficulty.Relax) || pp.judgedNotes <= 0 {
		return 0
	}

	notes := float64(pp.judgedNotes)

	// only circles are judged on timing
	greats := pp.great - (pp.totalHits - pp.judgedNotes)
	accuracy := max(0, float64(greats*6+pp.ok*2+pp.meh)/(notes*6))

	value := math.Pow(1.52163, pp.diff.ODReal) * math.Pow(accuracy, 24) * 2.83
	value *= min(1.15, math.Pow(notes/1000, 0.3))

	if pp.diff.CheckModActive(difficulty.Hidden) {
		value *= 1.08
	}

	if pp.diff.CheckModActive(difficulty.Flashlight) {
		value *= 1.02
	}

	return value
}

func (pp *PPv2) flashlightValue() float64 {
	if !pp.diff.CheckModActive(difficulty.Flashlight) {
		return 0
	}

	value := skills.FlashlightDifficultyToPerformance(pp.attribs.Flashlight)

	if pp.missCount > 0 {
		hits := float64(pp.totalHits)
		value *= 0.97 * math.Pow(1-math.Pow(pp.missCount/hits, 0.775), math.Pow(pp.missCount, 0.875))
	}

	value *= pp.comboScaling()

	// short maps spend more of their time at a small flashlight radius
	scale := 0.7 + 0.1*min(1, float64(pp.totalHits)/200)
	if pp.totalHits > 200 {
		scale += 0.2 * min(1, float64(pp.totalHits-200)/200)
	}

	value *= scale
	value *= pp.penalties.SliderCheeseFlashlight

	return value * (0.5 + pp.accuracy/2) * pp.odScaling()
}

// effectiveMissCount guesses misses and slider breaks from the combo.
func (pp *PPv2) effectiveMissCount() float64 {
	comboMisses := 0.0

	if pp.attribs.Sliders > 0 {
		threshold := float64(pp.attribs.MaxCombo) - 0.1*float64(pp.attribs.Sliders)
		if float64(pp.combo) < threshold {
			comboMisses = threshold / max(1, float64(pp.combo))
		}
	}

	comboMisses = min(comboMisses, float64(pp.ok+pp.meh+pp.miss))

	return max(float64(pp.miss), comboMisses)
}

func (pp *PPv2) missPenalty(difficultStrainCount float64) float64 {
	return 0.96 / (pp.missCount/(4*math.Pow(math.Log(difficultStrainCount), 0.94)) + 1)
}

func (pp *PPv2) comboScaling() float64 {
	if pp.attribs.MaxCombo <= 0 {
		return 1
	}

	return min(1, math.Pow(float64(pp.combo)/float64(pp.attribs.MaxCombo), 0.8))
}
