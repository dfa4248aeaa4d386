package evaluators

import (
	"math"

	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"github.com/Givikap120/droidguard/framework/math/mutils"
)

const (
	singleSpacingThreshold float64 = 125
	minSpeedBonus          float64 = 75 // ~200BPM
	speedBalancingFactor   float64 = 40
)

// EvaluateTap computes the tapping difficulty of current, ignoring rhythm.
func EvaluateTap(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	osuPrevObj := current.Previous(0)

	strainTime := current.StrainTime
	doubletapness := 1 - current.GetDoubletapness(current.Next(0))

	// Cap deltatime to the OD 300 hitwindow.
	// 0.93 is derived from making sure 260bpm OD8 streams aren't nerfed harshly, whilst 0.92 limits the effect of the cap.
	strainTime /= mutils.Clamp((strainTime/current.GreatWindow)/0.93, 0.92, 1)

	speedBonus := 0.0

	if strainTime < minSpeedBonus {
		speedBonus = 0.75 * math.Pow((minSpeedBonus-strainTime)/speedBalancingFactor, 2)
	}

	travelDistance := 0.0
	if osuPrevObj != nil {
		travelDistance = osuPrevObj.TravelDistance
	}

	distance := min(singleSpacingThreshold, travelDistance+current.MinimumJumpDistance)

	return (1 + speedBonus + speedBonus*math.Pow(distance/singleSpacingThreshold, 3.5)) * doubletapness / strainTime
}
