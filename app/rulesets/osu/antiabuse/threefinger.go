package antiabuse

import (
	"context"
	"math"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/replay/droid/cursor"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/sirupsen/logrus"
)

// SectionVerdict is one section found to be tapped with extra fingers.
type SectionVerdict struct {
	Usage SectionUsage
	Ratio float64
	Nerf  NerfFactor
}

type ThreeFingerResult struct {
	// Penalty divides the tap value. It is never below 1.
	Penalty float64

	AbusiveSections []SectionVerdict
}

// ThreeFingerChecker looks for tap-heavy sections played with more fingers than allowed.
type ThreeFingerChecker struct {
	beatmap   *objects.Beatmap
	diff      *difficulty.Difficulty
	attribs   api.AbuseAttributes
	replay    *droid.ReplayData
	timelines []cursor.Timeline

	cfg    Config
	scorer ThreeFingerScorer
	log    logrus.FieldLogger
}

func NewThreeFingerChecker(beatmap *objects.Beatmap, diff *difficulty.Difficulty, attribs api.AbuseAttributes, replay *droid.ReplayData, timelines []cursor.Timeline, cfg Config, scorer ThreeFingerScorer, log logrus.FieldLogger) *ThreeFingerChecker {
	return &ThreeFingerChecker{
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

// Check returns the three-finger penalty. A cancelled context stops the check early with no penalty.
func (c *ThreeFingerChecker) Check(ctx context.Context) ThreeFingerResult {
	result := ThreeFingerResult{Penalty: 1}

	sections := c.attribs.GetPossibleThreeFingeredSections()
	if len(sections) == 0 || c.diff.CheckModActive(difficulty.Relax) {
		return result
	}

	legitimate := max(1, c.cfg.LegitimateFingers)

	included := filterAccidentalSlots(c.timelines, c.cfg.AccidentalTapMinPresses, c.cfg.AccidentalTapRatio)
	if countIncluded(included) <= legitimate {
		return result
	}

	fingers := buildFingerMap(c.timelines, included, c.cfg.DistancingTime, c.cfg.DistancingDistance)
	seeker := cursor.NewSeeker(c.timelines)

	penalty := 1.0

	for _, section := range sections {
		if ctx.Err() != nil {
			return ThreeFingerResult{Penalty: 1}
		}

		usage, ok := c.sectionUsage(section, fingers, seeker, included, legitimate)
		if !ok || usage.LegitimatePresses == 0 {
			continue
		}

		ratio := float64(usage.TotalExtraPresses()) / float64(usage.LegitimatePresses)
		if ratio <= c.cfg.ThreeFingerRatio {
			continue
		}

		nerf := c.scorer.NerfFactor(usage)

		term := c.scorer.Weight() * math.Pow(nerf.Value(), 1.05)
		if math.IsNaN(term) || math.IsInf(term, 0) || term < 0 {
			continue
		}

		penalty += term

		result.AbusiveSections = append(result.AbusiveSections, SectionVerdict{Usage: usage, Ratio: ratio, Nerf: nerf})

		data := orderedmap.NewOrderedMap[string, any]()
		data.Set("first", section.FirstObjectIndex)
		data.Set("last", section.LastObjectIndex)
		data.Set("ratio", ratio)
		data.Set("extra_fingers", len(usage.ExtraPresses))
		data.Set("nerf", nerf.Value())

		c.log.WithFields(fields(data)).Debug("three-fingered section")
	}

	result.Penalty = penalty

	return result
}

// sectionUsage matches every object of section to a press and splits the fingers into
// legitimate ones and extra ones by order of first use.
func (c *ThreeFingerChecker) sectionUsage(section api.HighStrainSection, fingers fingerMap, seeker *cursor.Seeker, included []bool, legitimate int) (SectionUsage, bool) {
	hitObjects := c.beatmap.HitObjects

	first := max(0, section.FirstObjectIndex)
	last := min(section.LastObjectIndex, len(hitObjects)-1, len(c.replay.Objects)-1)

	if first > last {
		return SectionUsage{}, false
	}

	type fingerUsage struct {
		presses map[int]struct{}
		objects int
	}

	// first-use order decides which fingers are legitimate
	used := orderedmap.NewOrderedMap[int, *fingerUsage]()

	matched := 0

	for i := first; i <= last; i++ {
		obj := hitObjects[i]
		judgement := c.replay.Objects[i]

		if obj.GetType() == objects.SPINNER || judgement.Result == droid.ResultMiss {
			continue
		}

		match, found := nearestPress(seeker, c.timelines, included, pressQuery{
			Time:       obj.GetStartTime() + float64(judgement.HitOffset),
			Window:     c.diff.Hit50,
			Target:     obj.GetStackedStartPosition(),
			TieEpsilon: c.cfg.TimeTieEpsilon,
		})

		if !found {
			continue
		}

		finger := fingers.Finger(match.Slot, match.Group)
		if finger < 0 {
			continue
		}

		u, ok := used.Get(finger)
		if !ok {
			u = &fingerUsage{presses: make(map[int]struct{})}
			used.Set(finger, u)
		}

		u.presses[match.Slot<<20|match.Group] = struct{}{}
		u.objects++

		matched++
	}

	usage := SectionUsage{Section: section, ObjectCount: matched}

	k := 0

	for el := used.Front(); el != nil; el = el.Next() {
		if k < legitimate {
			usage.LegitimatePresses += len(el.Value.presses)
		} else {
			usage.ExtraPresses = append(usage.ExtraPresses, len(el.Value.presses))
			usage.ExtraPressedObjects += el.Value.objects
		}

		k++
	}

	return usage, true
}
