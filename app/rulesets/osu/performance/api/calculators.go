package api

import (
	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
)

type IDifficultyCalculator interface {
	CalculateSingle(objects []objects.IHitObject, diff *difficulty.Difficulty) Attributes
	CalculateStrainPeaks(objects []objects.IHitObject, diff *difficulty.Difficulty) StrainPeaks
	GetVersion() int
	GetVersionMessage() string
}

type IPerformanceCalculator interface {
	Calculate(attribs Attributes, combo, n300, n100, n50, nmiss int, acc float64, diff *difficulty.Difficulty, penalties Penalties) PPv2Results
}
