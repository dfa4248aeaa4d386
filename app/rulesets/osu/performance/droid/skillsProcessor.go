package droid

import (
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/skills"
)

type SkillsProcessor struct {
	Aim                      *skills.AimSkill
	AimWithoutSliders        *skills.AimSkill
	Tap                      *skills.TapSkill
	Flashlight               *skills.Flashlight
	FlashlightWithoutSliders *skills.Flashlight

	skipIrrelevantToStarRating bool
}

func NewSkillsProcessor(skipIrrelevantToStarRating bool) *SkillsProcessor {
	return &SkillsProcessor{
		Aim:                        skills.NewAimSkill(true),
		AimWithoutSliders:          skills.NewAimSkill(false),
		Tap:                        skills.NewTapSkill(),
		Flashlight:                 skills.NewFlashlightSkill(true),
		FlashlightWithoutSliders:   skills.NewFlashlightSkill(false),
		skipIrrelevantToStarRating: skipIrrelevantToStarRating,
	}
}

func (skills *SkillsProcessor) Process(current *preprocessing.DifficultyObject) {
	skills.Aim.Process(current)
	skills.Tap.Process(current)
	skills.Flashlight.Process(current)

	if !skills.skipIrrelevantToStarRating {
		skills.AimWithoutSliders.Process(current)
		skills.FlashlightWithoutSliders.Process(current)
	}
}
