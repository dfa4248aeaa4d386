package analysis

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/rulesets/osu/antiabuse"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	droidperf "github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid"
	"github.com/Givikap120/droidguard/app/settings"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// Report is the outcome of one job.
type Report struct {
	Job         string
	Fingerprint string

	Player     string
	Variant    string
	Objects    int
	ReplaySize int
	Slots      int

	ThreeFingerPenalty     float64
	SliderCheeseAim        float64
	SliderCheeseFlashlight float64
	TwoHanded              bool
	TwoHandedObjects       int

	RawPP       float64
	PenalisedPP float64

	Summary string

	AnalyzedAt time.Time
	Duration   time.Duration
	Cached     bool

	Err error
}

// Runner analyses jobs on a worker pool.
type Runner struct {
	settings *settings.Settings
	cache    *Cache
	metrics  *Metrics
	log      logrus.FieldLogger

	runID      uuid.UUID
	calculator *droidperf.DifficultyCalculator
}

// NewRunner creates a runner. cache may be nil.
func NewRunner(s *settings.Settings, cache *Cache, log logrus.FieldLogger) *Runner {
	runID := uuid.New()

	return &Runner{
		settings:   s,
		cache:      cache,
		metrics:    NewMetrics(runID.String()),
		log:        log.WithField("run_id", runID.String()),
		runID:      runID,
		calculator: droidperf.NewDifficultyCalculator(),
	}
}

func (r *Runner) RunID() string {
	return r.runID.String()
}

func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run analyses every job file and returns one report per path, in order. Failed jobs carry
// their error in the report.
func (r *Runner) Run(ctx context.Context, paths []string) []Report {
	reports := make([]Report, len(paths))

	pool := NewPool(r.settings.Workers, r.log)

	for i, path := range paths {
		reports[i] = Report{Job: path, Err: ErrJobPanicked}

		pool.Submit(func() {
			reports[i] = r.runJob(ctx, path)
		})
	}

	pool.Wait()

	for _, report := range reports {
		r.metrics.Observe(report)
	}

	if r.settings.MetricsPath != "" {
		if err := r.metrics.WriteTextfile(r.settings.MetricsPath); err != nil {
			r.log.WithError(err).Warn("unable to write metrics")
		}
	}

	return reports
}

func (r *Runner) runJob(ctx context.Context, path string) Report {
	job, err := LoadJob(path)
	if err != nil {
		return Report{Job: path, Err: err}
	}

	report, err := r.Analyze(ctx, job)
	if err != nil {
		report.Err = err
	}

	return report
}

// Analyze runs the checks of one job, or returns the cached report of an identical one.
func (r *Runner) Analyze(ctx context.Context, job *Job) (Report, error) {
	report := Report{Job: job.Name, Variant: job.Variant, Player: job.Replay.Player}

	log := r.log.WithFields(logrus.Fields{"job": job.Name, "replay": job.ReplayPath()})

	raw, err := os.ReadFile(job.ReplayPath())
	if err != nil {
		return report, fmt.Errorf("%w: %w", ErrLoadJob, err)
	}

	report.ReplaySize = len(raw)
	report.Fingerprint = r.fingerprint(raw, job)

	if r.cache != nil {
		cached, ok, err := r.cache.Get(ctx, report.Fingerprint)
		if err != nil {
			log.WithError(err).Warn("cache lookup failed")
		} else if ok {
			log.Debug("using cached result")
			return cached, nil
		}
	}

	start := time.Now()

	beatmap, err := job.BuildBeatmap()
	if err != nil {
		return report, err
	}

	decoder := droid.NewDecoder(droid.RawHeaderParser{Header: job.Header(), Offset: job.Replay.Offset})
	decoder.Beatmap = beatmap

	replay, err := decoder.Decode(raw)
	if err != nil {
		return report, err
	}

	diff := job.Difficulty()
	replay.ApplyTo(diff)
	beatmap.ApplyStacking(diff.CircleRadius)

	var (
		attribs api.AbuseAttributes
		base    api.Attributes
	)

	if job.Variant == VariantRebalance {
		a := r.calculator.CalculateRebalance(beatmap.HitObjects, diff)
		attribs, base = a, a.Attributes
	} else {
		a := r.calculator.CalculateStable(beatmap.HitObjects, diff)
		attribs, base = a, a.Attributes
	}

	analyzer := antiabuse.NewAnalyzer(beatmap, diff, attribs, replay,
		antiabuse.WithConfig(r.settings.Thresholds),
		antiabuse.WithCalculator(r.calculator),
		antiabuse.WithLogger(log),
	)

	result, err := analyzer.Analyze(ctx)
	if err != nil {
		return report, err
	}

	penalties := result.Penalties()

	report.Objects = len(beatmap.HitObjects)
	report.Slots = replay.ActiveSlots()
	report.ThreeFingerPenalty = penalties.ThreeFinger
	report.SliderCheeseAim = penalties.SliderCheeseAim
	report.SliderCheeseFlashlight = penalties.SliderCheeseFlashlight
	report.TwoHanded = result.TwoHand.IsTwoHanded
	report.TwoHandedObjects = penalties.TwoHandedObjects
	report.RawPP = performance(base, replay.Statistics, diff, api.NoPenalties())
	report.PenalisedPP = performance(base, replay.Statistics, diff, penalties)
	report.Summary = result.String()
	report.AnalyzedAt = time.Now()
	report.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"slot_count": report.Slots,
		"penalty":    report.ThreeFingerPenalty,
		"two_handed": report.TwoHanded,
	}).Info("replay analysed")

	if r.cache != nil {
		if err := r.cache.Put(ctx, report); err != nil {
			log.WithError(err).Warn("unable to cache result")
		}
	}

	return report, nil
}

// fingerprint identifies a replay analysed on a map with a given set of thresholds.
func (r *Runner) fingerprint(raw []byte, job *Job) string {
	h := xxh3.New()

	_, _ = h.Write(raw)
	_, _ = h.WriteString(job.Beatmap.MD5)
	_, _ = h.WriteString(job.Variant)
	_, _ = h.WriteString(fmt.Sprintf("%d|%d|%+v", job.Replay.Offset, r.calculator.GetVersion(), r.settings.Thresholds))

	sum := h.Sum128().Bytes()

	return hex.EncodeToString(sum[:])
}

func performance(attribs api.Attributes, stats droid.Statistics, diff *difficulty.Difficulty, penalties api.Penalties) float64 {
	// hit300k and hit100k are combo end bonuses already counted in hit300 and hit100
	n300 := stats.Hit300
	n100 := stats.Hit100

	combo := stats.MaxCombo
	total := n300 + n100 + stats.Hit50 + stats.Misses

	accuracy := 1.0
	if total > 0 {
		accuracy = float64(300*n300+100*n100+50*stats.Hit50) / float64(300*total)
	} else {
		// no statistics recorded, rate it as a full combo SS
		n300, combo = -1, -1
	}

	pp := droidperf.NewPPCalculator().Calculate(attribs, combo, n300, n100, stats.Hit50, stats.Misses, accuracy, diff, penalties)

	return pp.Total
}
