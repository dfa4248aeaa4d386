package antiabuse

import (
	"context"
	"io"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/replay/droid/cursor"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	droidperf "github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

type Result struct {
	ThreeFinger  ThreeFingerResult
	TwoHand      TwoHandResult
	SliderCheese SliderCheeseResult
}

// Penalties converts the result into the multipliers a performance calculation consumes.
func (r Result) Penalties() api.Penalties {
	return api.Penalties{
		ThreeFinger:            r.ThreeFinger.Penalty,
		SliderCheeseAim:        r.SliderCheese.AimPenalty,
		SliderCheeseFlashlight: r.SliderCheese.FlashlightPenalty,
		TwoHandedObjects:       r.TwoHand.TwoHandedObjectCount,
	}
}

func (r Result) Summary() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("three_finger", r.ThreeFinger.Penalty)
	data.Set("abusive_sections", len(r.ThreeFinger.AbusiveSections))
	data.Set("two_handed", r.TwoHand.IsTwoHanded)
	data.Set("two_handed_objects", r.TwoHand.TwoHandedObjectCount)
	data.Set("cheese_aim", r.SliderCheese.AimPenalty)
	data.Set("cheese_flashlight", r.SliderCheese.FlashlightPenalty)
	data.Set("cheesed_sliders", len(r.SliderCheese.CheesedSliders))

	return data
}

func (r Result) String() string {
	return orderedMapToString(r.Summary())
}

// Analyzer runs every check on one replay. The cursor timelines are built once and shared.
type Analyzer struct {
	beatmap *objects.Beatmap
	diff    *difficulty.Difficulty
	attribs api.AbuseAttributes
	replay  *droid.ReplayData

	timelines []cursor.Timeline

	cfg        Config
	variant    *Variant
	calculator api.IDifficultyCalculator
	log        logrus.FieldLogger
}

type Option func(a *Analyzer)

func WithConfig(cfg Config) Option {
	return func(a *Analyzer) {
		a.cfg = cfg
	}
}

func WithVariant(v Variant) Option {
	return func(a *Analyzer) {
		a.variant = &v
	}
}

// WithCalculator sets the difficulty calculator sub-timelines of two-handed plays are rated with.
func WithCalculator(calc api.IDifficultyCalculator) Option {
	return func(a *Analyzer) {
		a.calculator = calc
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Analyzer) {
		a.log = log
	}
}

func NewAnalyzer(beatmap *objects.Beatmap, diff *difficulty.Difficulty, attribs api.AbuseAttributes, replay *droid.ReplayData, opts ...Option) *Analyzer {
	a := &Analyzer{
		beatmap:    beatmap,
		diff:       diff,
		attribs:    attribs,
		replay:     replay,
		cfg:        DefaultConfig(),
		calculator: droidperf.NewDifficultyCalculator(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		a.log = logger
	}

	if a.variant == nil {
		v := VariantFor(attribs, a.cfg)
		a.variant = &v
	}

	a.timelines = cursor.Build(replay.CursorMovements)

	return a
}

func (a *Analyzer) Timelines() []cursor.Timeline {
	return a.timelines
}

func (a *Analyzer) Variant() Variant {
	return *a.variant
}

// Analyze runs the three checks in turn. It only fails when ctx is done.
func (a *Analyzer) Analyze(ctx context.Context) (Result, error) {
	var result Result

	log := a.log.WithFields(logrus.Fields{
		"variant":    a.variant.Name,
		"slot_count": len(a.timelines),
		"objects":    len(a.beatmap.HitObjects),
	})

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result.ThreeFinger = NewThreeFingerChecker(a.beatmap, a.diff, a.attribs, a.replay, a.timelines, a.cfg, a.variant.ThreeFinger, log).Check(ctx)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result.TwoHand = NewTwoHandChecker(a.beatmap, a.diff, a.replay, a.timelines, a.calculator, a.cfg, log).Check(ctx)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	result.SliderCheese = NewSliderCheeseChecker(a.beatmap, a.diff, a.attribs, a.replay, a.timelines, a.cfg, a.variant.SliderCheese, log).Check(ctx)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	log.WithFields(fields(result.Summary())).Debug("analysis finished")

	return result, nil
}
