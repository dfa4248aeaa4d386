package preprocessing

import (
	"math"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/framework/math/mutils"
	"github.com/Givikap120/droidguard/framework/math/vector"
	"github.com/chewxy/math32"
)

const (
	NormalizedRadius        = 50.0
	CircleSizeBuffThreshold = 30.0
	MinDeltaTime            = 25
)

// DifficultyObject is a hit object seen from the object before it. Times are divided by the
// clock rate.
type DifficultyObject struct {
	listOfDiffs *[]*DifficultyObject
	Index       int

	Diff       *difficulty.Difficulty
	BaseObject objects.IHitObject

	lastObject     objects.IHitObject
	lastLastObject objects.IHitObject

	IsSlider  bool
	IsSpinner bool

	StartTime  float64
	EndTime    float64
	DeltaTime  float64
	StrainTime float64

	// Jump distances are scaled to a radius of NormalizedRadius.
	LazyJumpDistance    float64
	MinimumJumpDistance float64
	MinimumJumpTime     float64

	TravelDistance float64
	TravelTime     float64

	// Angle is the angle at the previous object, in [0, π]. NaN when undefined.
	Angle float64

	GreatWindow float64
	ClockRate   float64
	Preempt     float64
}

// CreateDifficultyObjects wraps every object but the first, which has nothing to jump from.
func CreateDifficultyObjects(hitObjects []objects.IHitObject, d *difficulty.Difficulty) []*DifficultyObject {
	lazyObjects := make([]objects.IHitObject, len(hitObjects))

	for i, o := range hitObjects {
		if s, ok := o.(*objects.Slider); ok {
			lazyObjects[i] = NewLazySlider(s, d.CircleRadius)
			continue
		}

		lazyObjects[i] = o
	}

	diffObjects := make([]*DifficultyObject, 0, max(0, len(hitObjects)-1))

	for i := 1; i < len(lazyObjects); i++ {
		var lastLast objects.IHitObject
		if i > 1 {
			lastLast = lazyObjects[i-2]
		}

		diffObjects = append(diffObjects, NewDifficultyObject(lazyObjects[i], lastLast, lazyObjects[i-1], d, &diffObjects, i-1))
	}

	return diffObjects
}

func NewDifficultyObject(hitObject, lastLastObject, lastObject objects.IHitObject, d *difficulty.Difficulty, listOfDiffs *[]*DifficultyObject, index int) *DifficultyObject {
	obj := &DifficultyObject{
		listOfDiffs:    listOfDiffs,
		Index:          index,
		Diff:           d,
		BaseObject:     hitObject,
		lastObject:     lastObject,
		lastLastObject: lastLastObject,
		DeltaTime:      (hitObject.GetStartTime() - lastObject.GetStartTime()) / d.Speed,
		StartTime:      hitObject.GetStartTime() / d.Speed,
		EndTime:        hitObject.GetEndTime() / d.Speed,
		Angle:          math.NaN(),
		GreatWindow:    2 * d.Hit300 / d.Speed,
		ClockRate:      d.Speed,
		Preempt:        d.Preempt / d.Speed,
	}

	if _, ok := hitObject.(*objects.Spinner); ok {
		obj.IsSpinner = true
	}

	if _, ok := hitObject.(*LazySlider); ok {
		obj.IsSlider = true
	}

	obj.StrainTime = max(obj.DeltaTime, MinDeltaTime)

	obj.setDistances()

	return obj
}

// ObjectIndex is the index of the underlying object in the beatmap.
func (o *DifficultyObject) ObjectIndex() int {
	return o.Index + 1
}

// Velocity is the normalized jump distance covered per millisecond.
func (o *DifficultyObject) Velocity() float64 {
	return o.LazyJumpDistance / o.StrainTime
}

func (o *DifficultyObject) GetDoubletapness(osuNextObj *DifficultyObject) float64 {
	if osuNextObj != nil {
		currDeltaTime := max(1, o.DeltaTime)
		nextDeltaTime := max(1, osuNextObj.DeltaTime)
		deltaDifference := math.Abs(nextDeltaTime - currDeltaTime)
		speedRatio := currDeltaTime / max(currDeltaTime, deltaDifference)
		windowRatio := math.Pow(min(1, currDeltaTime/o.GreatWindow), 2)
		return 1 - math.Pow(speedRatio, 1-windowRatio)
	}

	return 0
}

func (o *DifficultyObject) OpacityAt(time float64) float64 {
	if time > o.BaseObject.GetStartTime() {
		return 0
	}

	fadeInStartTime := o.BaseObject.GetStartTime() - o.Diff.Preempt
	fadeInDuration := o.Diff.TimeFadeIn

	if o.Diff.CheckModActive(difficulty.Hidden) {
		fadeOutStartTime := o.BaseObject.GetStartTime() - o.Diff.Preempt + o.Diff.TimeFadeIn
		fadeOutDuration := o.Diff.Preempt * 0.3

		return min(
			mutils.Clamp((time-fadeInStartTime)/fadeInDuration, 0.0, 1.0),
			1.0-mutils.Clamp((time-fadeOutStartTime)/fadeOutDuration, 0.0, 1.0),
		)
	}

	return mutils.Clamp((time-fadeInStartTime)/fadeInDuration, 0.0, 1.0)
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) Next(forwardsIndex int) *DifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) setDistances() {
	if currentSlider, ok := o.BaseObject.(*LazySlider); ok {
		// RepeatCount counts the first span too
		o.TravelDistance = float64(currentSlider.LazyTravelDistance * float32(math.Pow(1+float64(currentSlider.RepeatCount-1)/2.5, 1.0/2.5)))
		o.TravelTime = max(currentSlider.LazyTravelTime/o.Diff.Speed, MinDeltaTime)
	}

	_, ok1 := o.BaseObject.(*objects.Spinner)
	_, ok2 := o.lastObject.(*objects.Spinner)

	if ok1 || ok2 {
		return
	}

	scalingFactor := NormalizedRadius / float32(o.Diff.CircleRadius)

	if o.Diff.CircleRadius < CircleSizeBuffThreshold {
		smallCircleBonus := min(CircleSizeBuffThreshold-float32(o.Diff.CircleRadius), 5.0) / 50.0
		scalingFactor *= 1.0 + smallCircleBonus
	}

	lastCursorPosition := getEndCursorPosition(o.lastObject)

	o.LazyJumpDistance = float64(o.BaseObject.GetStackedStartPosition().Scl(scalingFactor).Dst(lastCursorPosition.Scl(scalingFactor)))
	o.MinimumJumpTime = o.StrainTime
	o.MinimumJumpDistance = o.LazyJumpDistance

	if lastSlider, ok := o.lastObject.(*LazySlider); ok {
		lastTravelTime := max(lastSlider.LazyTravelTime/o.Diff.Speed, MinDeltaTime)
		o.MinimumJumpTime = max(o.StrainTime-lastTravelTime, MinDeltaTime)

		// Players either cut the slider short towards the next object or follow it through to
		// its end; the shorter of the two jumps is assumed.
		tailJumpDistance := lastSlider.GetStackedEndPosition().Dst(o.BaseObject.GetStackedStartPosition()) * scalingFactor
		o.MinimumJumpDistance = max(0, min(o.LazyJumpDistance-float64(maximumSliderRadius-assumedSliderRadius), float64(tailJumpDistance-maximumSliderRadius)))
	}

	if o.lastLastObject != nil {
		if _, ok := o.lastLastObject.(*objects.Spinner); ok {
			return
		}

		lastLastCursorPosition := getEndCursorPosition(o.lastLastObject)

		v1 := lastLastCursorPosition.Sub(o.lastObject.GetStackedStartPosition())
		v2 := o.BaseObject.GetStackedStartPosition().Sub(lastCursorPosition)
		o.Angle = float64(math32.Abs(math32.Atan2(v1.X*v2.Y-v1.Y*v2.X, v1.Dot(v2))))
	}
}

func getEndCursorPosition(obj objects.IHitObject) (pos vector.Vector2f) {
	pos = obj.GetStackedStartPosition()

	if s, ok := obj.(*LazySlider); ok {
		pos = s.LazyEndPosition
	}

	return
}
