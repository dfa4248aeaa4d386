package skills

import (
	"math"

	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/evaluators"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"gonum.org/v1/gonum/floats"
)

const (
	flashlightSkillMultiplier float64 = 0.05512
	flashlightStrainDecayBase float64 = 0.15
)

type Flashlight struct {
	*Skill
	withSliders   bool
	CurrentStrain float64
}

func NewFlashlightSkill(withSliders bool) *Flashlight {
	skill := &Flashlight{Skill: NewSkill(), withSliders: withSliders}

	skill.StrainValueOf = skill.flashlightStrainValue
	skill.CalculateInitialStrain = skill.flashlightInitialStrain

	return skill
}

func (skill *Flashlight) strainDecay(ms float64) float64 {
	return math.Pow(flashlightStrainDecayBase, ms/1000)
}

func (skill *Flashlight) flashlightInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *Flashlight) flashlightStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateFlashlight(current, skill.withSliders) * flashlightSkillMultiplier

	skill.objectStrains = append(skill.objectStrains, skill.CurrentStrain)

	return skill.CurrentStrain
}

// DifficultyValue sums every peak; flashlight difficulty grows with map length.
func (skill *Flashlight) DifficultyValue() float64 {
	skill.Difficulty = floats.Sum(skill.GetCurrentStrainPeaks()) * skill.DifficultyMultiplier

	return skill.Difficulty
}

func FlashlightDifficultyToPerformance(difficulty float64) float64 {
	return 25 * math.Pow(difficulty, 2)
}
