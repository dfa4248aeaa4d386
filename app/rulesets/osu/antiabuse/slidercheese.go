package antiabuse

import (
	"context"
	"slices"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/replay/droid/cursor"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

type SliderCheeseResult struct {
	// AimPenalty multiplies the aim value. It is never below the slider factor.
	AimPenalty        float64
	FlashlightPenalty float64

	SummedRating   float64
	CheesedSliders []int
}

// SliderCheeseChecker verifies that difficult sliders were followed by the finger that hit them.
type SliderCheeseChecker struct {
	beatmap   *objects.Beatmap
	diff      *difficulty.Difficulty
	attribs   api.AbuseAttributes
	replay    *droid.ReplayData
	timelines []cursor.Timeline

	cfg    Config
	scorer SliderCheeseScorer
	log    logrus.FieldLogger
}

func NewSliderCheeseChecker(beatmap *objects.Beatmap, diff *difficulty.Difficulty, attribs api.AbuseAttributes, replay *droid.ReplayData, timelines []cursor.Timeline, cfg Config, scorer SliderCheeseScorer, log logrus.FieldLogger) *SliderCheeseChecker {
	return &SliderCheeseChecker{
		beatmap:   beatmap,
		diff:      diff,
		attribs:   attribs,
		replay:    replay,
		timelines: timelines,
		cfg:       cfg,
		scorer:    scorer,
		log:       log,
	}
}

func (c *SliderCheeseChecker) Check(ctx context.Context) SliderCheeseResult {
	result := SliderCheeseResult{AimPenalty: 1, FlashlightPenalty: 1}

	sliders := c.attribs.GetDifficultSliders()
	sliderFactor := c.attribs.GetSliderFactor()

	if len(sliders) == 0 || sliderFactor == 1 {
		return result
	}

	sliders = slices.Clone(sliders)
	slices.SortFunc(sliders, func(a, b api.DifficultSlider) int {
		return a.Index - b.Index
	})

	seeker := cursor.NewSeeker(c.timelines)

	acceptableRadius := float32(c.cfg.CheeseRadiusMultiplier * c.diff.CircleRadius)
	sliderBreak := c.diff.SliderBreakOffset()

	var ratings []float64

	for _, ds := range sliders {
		if ctx.Err() != nil {
			return SliderCheeseResult{AimPenalty: 1, FlashlightPenalty: 1}
		}

		if ds.Index < 0 || ds.Index >= len(c.beatmap.HitObjects) || ds.Index >= len(c.replay.Objects) {
			continue
		}

		slider, ok := c.beatmap.HitObjects[ds.Index].(*objects.Slider)
		if !ok {
			continue
		}

		judgement := c.replay.Objects[ds.Index]

		// slider breaks are already penalised by combo
		if judgement.Result == droid.ResultMiss || int(judgement.HitOffset) == sliderBreak {
			continue
		}

		if c.isCheesed(seeker, slider, judgement, acceptableRadius) {
			ratings = append(ratings, ds.DifficultyRating)
			result.CheesedSliders = append(result.CheesedSliders, ds.Index)
		}
	}

	if len(ratings) > 0 {
		result.SummedRating = min(1, floats.Sum(ratings))
	}

	result.AimPenalty = cheesePenalty(result.SummedRating, sliderFactor)
	result.FlashlightPenalty = c.scorer.FlashlightPenalty(result.SummedRating, c.attribs)

	c.log.WithFields(logrus.Fields{
		"cheesed":     len(result.CheesedSliders),
		"rating":      result.SummedRating,
		"aim_penalty": result.AimPenalty,
	}).Debug("slider cheese check finished")

	return result
}

// isCheesed reports whether the gesture that hit the slider's head left it before a tick the
// replay recorded as hit. Sliders with no identifiable initiating press are not judged.
func (c *SliderCheeseChecker) isCheesed(seeker *cursor.Seeker, slider *objects.Slider, judgement droid.ObjectJudgement, acceptableRadius float32) bool {
	match, found := nearestPress(seeker, c.timelines, nil, pressQuery{
		Time:        slider.GetStartTime(),
		Window:      c.diff.Hit50,
		Target:      slider.GetStackedStartPosition(),
		MaxDistance: acceptableRadius,
		TieEpsilon:  c.cfg.TimeTieEpsilon,
	})

	if !found {
		return false
	}

	group := c.timelines[match.Slot].Groups[match.Group]

	for tick := 0; tick < slider.TickCount(); tick++ {
		if !judgement.TickHit(tick) {
			continue
		}

		nested := tick + 1
		t := slider.Nested[nested].Time

		if t < float64(group.StartTime()) || (group.Released() && t > float64(group.EndTime())) {
			return true
		}

		if group.PositionAt(t).Dst(slider.StackedNestedPosition(nested)) > acceptableRadius {
			return true
		}
	}

	return false
}
