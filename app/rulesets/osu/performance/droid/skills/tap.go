package skills

import (
	"math"

	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/evaluators"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"gonum.org/v1/gonum/floats"
)

const (
	tapSkillMultiplier float64 = 1.430
	tapStrainDecayBase float64 = 0.3
)

// TapSkill measures how fast and how long a map has to be tapped.
type TapSkill struct {
	*Skill
	CurrentStrain float64
}

func NewTapSkill() *TapSkill {
	skill := &TapSkill{Skill: NewSkill()}

	skill.ReducedSectionCount = 5

	skill.StrainValueOf = skill.tapStrainValue
	skill.CalculateInitialStrain = skill.tapInitialStrain

	return skill
}

func (skill *TapSkill) strainDecay(ms float64) float64 {
	return math.Pow(tapStrainDecayBase, ms/1000)
}

func (skill *TapSkill) tapInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	return skill.CurrentStrain * skill.strainDecay(time-current.Previous(0).StartTime)
}

func (skill *TapSkill) tapStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.StrainTime)
	skill.CurrentStrain += evaluators.EvaluateTap(current) * tapSkillMultiplier

	skill.objectStrains = append(skill.objectStrains, skill.CurrentStrain)

	return skill.CurrentStrain
}

// RelevantNoteCount estimates how many notes are tapped at close to the top strain.
func (skill *TapSkill) RelevantNoteCount() float64 {
	if len(skill.objectStrains) == 0 {
		return 0
	}

	maxStrain := floats.Max(skill.objectStrains)
	if maxStrain == 0 {
		return 0
	}

	sum := 0.0
	for _, s := range skill.objectStrains {
		sum += 1.0 / (1.0 + math.Exp(-(s/maxStrain*12.0 - 6.0)))
	}

	return sum
}
