package skills

import (
	"math"

	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/evaluators"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"gonum.org/v1/gonum/floats"
)

const (
	aimMultiplier float64 = 24.55
	aimDecayBase  float64 = 0.15
)

// AimSkill measures cursor movement between objects. Without sliders it ignores the travel
// inside sliders, which is what the slider factor compares against.
type AimSkill struct {
	*Skill

	withSliders bool
	strain      float64

	// strains at slider heads, for counting sliders that carry the aim difficulty
	sliderStrains []float64
}

func NewAimSkill(withSliders bool) *AimSkill {
	skill := &AimSkill{Skill: NewSkill(), withSliders: withSliders}

	skill.StrainValueOf = skill.nextStrain
	skill.CalculateInitialStrain = func(time float64, current *preprocessing.DifficultyObject) float64 {
		return skill.strain * math.Pow(aimDecayBase, (time-current.Previous(0).StartTime)/1000)
	}

	return skill
}

func (skill *AimSkill) nextStrain(current *preprocessing.DifficultyObject) float64 {
	skill.strain *= math.Pow(aimDecayBase, current.DeltaTime/1000)
	skill.strain += evaluators.EvaluateAim(current, skill.withSliders) * aimMultiplier

	skill.objectStrains = append(skill.objectStrains, skill.strain)

	if current.IsSlider {
		skill.sliderStrains = append(skill.sliderStrains, skill.strain)
	}

	return skill.strain
}

// DifficultSliderCount weighs every slider by how close its strain is to the hardest slider.
func (skill *AimSkill) DifficultSliderCount() float64 {
	if len(skill.sliderStrains) == 0 {
		return 0
	}

	top := floats.Max(skill.sliderStrains)
	if top == 0 {
		return 0
	}

	count := 0.0
	for _, s := range skill.sliderStrains {
		count += 1 / (1 + math.Exp(-(s/top*12 - 6)))
	}

	return count
}
