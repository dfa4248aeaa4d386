package preprocessing

import (
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/framework/math/vector"
)

const (
	maximumSliderRadius = NormalizedRadius * 2.4
	assumedSliderRadius = NormalizedRadius * 1.8

	// the tail is judged slightly before the slider's visual end
	tailLeniency = 36.0
)

// LazySlider is a slider annotated with the shortest cursor path that still follows it.
type LazySlider struct {
	*objects.Slider

	LazyEndPosition    vector.Vector2f
	LazyTravelDistance float32
	LazyTravelTime     float64
	LazyEndTime        float64
}

func NewLazySlider(s *objects.Slider, radius float64) *LazySlider {
	lazy := &LazySlider{Slider: s}
	lazy.calculateLazyTravel(radius)

	return lazy
}

func (s *LazySlider) calculateLazyTravel(radius float64) {
	scalingFactor := NormalizedRadius / float32(radius)

	s.LazyEndTime = max(s.GetStartTime()+(s.GetEndTime()-s.GetStartTime())/2, s.GetEndTime()-tailLeniency)
	s.LazyTravelTime = s.LazyEndTime - s.GetStartTime()

	cursor := s.GetStackedStartPosition()

	last := len(s.Nested) - 1

	for i := 1; i <= last; i++ {
		movement := s.StackedNestedPosition(i).Sub(cursor)
		movementLength := scalingFactor * movement.Len()

		requiredMovement := float32(assumedSliderRadius)

		if i == last {
			lazyMovement := s.lazyTailPosition().Sub(cursor)

			if lazyMovement.Len() < movement.Len() {
				movement = lazyMovement
			}

			movementLength = scalingFactor * movement.Len()
		} else if s.Nested[i].Kind == objects.NestedRepeat {
			requiredMovement = NormalizedRadius
		}

		if movementLength > requiredMovement {
			scale := (movementLength - requiredMovement) / movementLength

			cursor = cursor.Add(movement.Scl(scale))
			s.LazyTravelDistance += movementLength * scale
		}
	}

	s.LazyEndPosition = cursor
}

// lazyTailPosition is where the slider ball is when the tail gets judged.
func (s *LazySlider) lazyTailPosition() vector.Vector2f {
	last := len(s.Nested) - 1
	if last < 1 {
		return s.GetStackedEndPosition()
	}

	prev, tail := s.Nested[last-1], s.Nested[last]
	if tail.Time <= prev.Time || s.LazyEndTime >= tail.Time {
		return s.StackedNestedPosition(last)
	}

	t := float32((max(s.LazyEndTime, prev.Time) - prev.Time) / (tail.Time - prev.Time))

	return s.StackedNestedPosition(last - 1).Lerp(s.StackedNestedPosition(last), t)
}
