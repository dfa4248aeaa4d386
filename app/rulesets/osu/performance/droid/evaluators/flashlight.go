package evaluators

import (
	"math"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
)

const (
	maxOpacityBonus    float64 = 0.4
	hiddenBonus        float64 = 0.2
	minVelocity        float64 = 0.5
	sliderMultiplierFL float64 = 1.3
	minAngleMultiplier float64 = 0.2
)

// EvaluateFlashlight computes the memorisation difficulty of current from the objects
// preceding it.
func EvaluateFlashlight(current *preprocessing.DifficultyObject, withSliders bool) float64 {
	if current.IsSpinner {
		return 0
	}

	scalingFactor := 52.0 / current.Diff.CircleRadius

	smallDistNerf := 1.0
	cumulativeStrainTime := 0.0

	result := 0.0

	lastObj := current

	angleRepeatCount := 0.0

	// This is iterating backwards in time from the current object.
	for i := 0; i < min(current.Index, 10); i++ {
		currentObj := current.Previous(i)

		if !currentObj.IsSpinner {
			jumpDistance := float64(current.BaseObject.GetStackedStartPosition().Dst(currentObj.BaseObject.GetStackedEndPosition()))

			cumulativeStrainTime += lastObj.StrainTime

			// We want to nerf objects that can be easily seen within the Flashlight circle radius.
			if i == 0 {
				smallDistNerf = min(1, jumpDistance/75)
			}

			// We also want to nerf stacks so that only the first object of the stack is accounted for.
			stackNerf := min(1, (currentObj.LazyJumpDistance/scalingFactor)/25)

			// Bonus based on how visible the object is.
			opacityBonus := 1 + maxOpacityBonus*(1-current.OpacityAt(currentObj.BaseObject.GetStartTime()))

			result += stackNerf * opacityBonus * scalingFactor * jumpDistance / cumulativeStrainTime

			if !math.IsNaN(currentObj.Angle) && !math.IsNaN(current.Angle) {
				// Objects further back in time should count less for the nerf.
				if math.Abs(currentObj.Angle-current.Angle) < 0.02 {
					angleRepeatCount += max(1-0.1*float64(i), 0)
				}
			}
		}

		lastObj = currentObj
	}

	result = math.Pow(smallDistNerf*result, 2)

	// Additional bonus for Hidden due to there being no approach circles.
	if current.Diff.CheckModActive(difficulty.Hidden) {
		result *= 1 + hiddenBonus
	}

	// Nerf patterns with repeated angles.
	result *= minAngleMultiplier + (1-minAngleMultiplier)/(angleRepeatCount+1)

	sliderBonus := 0.0

	if current.IsSlider && withSliders {
		// Invert the scaling factor to determine the true travel distance independent of circle size.
		pixelTravelDistance := current.TravelDistance / scalingFactor

		// Reward sliders based on velocity.
		sliderBonus = math.Pow(max(0, pixelTravelDistance/current.TravelTime-minVelocity), 0.5)

		// Longer sliders require more memorisation.
		sliderBonus *= pixelTravelDistance
	}

	result += sliderBonus * sliderMultiplierFL

	return result
}
