package antiabuse

import (
	"context"
	"math"
	"slices"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/replay/droid/cursor"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"github.com/Givikap120/droidguard/framework/math/mutils"
	"github.com/Givikap120/droidguard/framework/math/vector"
	"github.com/sirupsen/logrus"
)

// SubTimeline is the part of the map one slot played.
type SubTimeline struct {
	Slot          int
	ObjectIndices []int
	Attributes    api.Attributes
}

type TwoHandResult struct {
	IsTwoHanded bool

	// TwoHandedObjectCount is the number of objects not hit by the majority slot
	TwoHandedObjectCount int

	// Assignments holds the slot every object was attributed to
	Assignments []int

	SubTimelines []SubTimeline
}

// TwoHandChecker attributes every object to a cursor slot and splits the map between slots.
type TwoHandChecker struct {
	beatmap   *objects.Beatmap
	diff      *difficulty.Difficulty
	replay    *droid.ReplayData
	timelines []cursor.Timeline

	calculator api.IDifficultyCalculator

	cfg Config
	log logrus.FieldLogger
}

func NewTwoHandChecker(beatmap *objects.Beatmap, diff *difficulty.Difficulty, replay *droid.ReplayData, timelines []cursor.Timeline, calculator api.IDifficultyCalculator, cfg Config, log logrus.FieldLogger) *TwoHandChecker {
	return &TwoHandChecker{
		beatmap:    beatmap,
		diff:       diff,
		replay:     replay,
		timelines:  timelines,
		calculator: calculator,
		cfg:        cfg,
		log:        log,
	}
}

// dragProbability is high for wide angles and low velocities, transitions a single finger can
// drag through.
func dragProbability(angle, velocity, maxVelocity float64) float64 {
	if math.IsNaN(angle) || maxVelocity <= 0 {
		return 0
	}

	angleFactor := math.Pow(math.Sin(mutils.Clamp((angle-math.Pi/3)/(math.Pi/2), 0, 1)*math.Pi/2), 2)
	velocityFactor := 1 - mutils.Clamp(velocity/maxVelocity, 0, 1)

	return angleFactor * velocityFactor
}

func (c *TwoHandChecker) Check(ctx context.Context) TwoHandResult {
	if cursor.ActiveSlots(c.timelines) < 2 || len(c.beatmap.HitObjects) == 0 {
		return TwoHandResult{}
	}

	assignments, ok := c.assign(ctx)
	if !ok {
		return TwoHandResult{}
	}

	majority := c.suppressNoise(assignments)

	result := TwoHandResult{Assignments: assignments}

	bySlot := make(map[int][]int)
	for i, slot := range assignments {
		bySlot[slot] = append(bySlot[slot], i)

		if slot != majority {
			result.TwoHandedObjectCount++
		}
	}

	slots := make([]int, 0, len(bySlot))
	for slot := range bySlot {
		slots = append(slots, slot)
	}

	slices.Sort(slots)

	for _, slot := range slots {
		indices := bySlot[slot]
		if len(indices) < c.cfg.MinOccurrence {
			continue
		}

		if ctx.Err() != nil {
			return TwoHandResult{}
		}

		sub := SubTimeline{Slot: slot, ObjectIndices: indices}

		if c.calculator != nil {
			subObjects := make([]objects.IHitObject, len(indices))
			for i, index := range indices {
				subObjects[i] = c.beatmap.HitObjects[index]
			}

			sub.Attributes = c.calculator.CalculateSingle(subObjects, c.diff)
		}

		result.SubTimelines = append(result.SubTimelines, sub)
	}

	result.IsTwoHanded = len(result.SubTimelines) > 1

	c.log.WithFields(logrus.Fields{
		"two_handed":    result.IsTwoHanded,
		"other_hand":    result.TwoHandedObjectCount,
		"sub_timelines": len(result.SubTimelines),
		"majority_slot": majority,
	}).Debug("two-hand check finished")

	return result
}

// assign picks a slot for every object. Easy transitions are given slot 0 without a search,
// others go to the nearest cursor, and objects no cursor is close to alternate between the two
// most used slots.
func (c *TwoHandChecker) assign(ctx context.Context) ([]int, bool) {
	hitObjects := c.beatmap.HitObjects

	diffObjects := preprocessing.CreateDifficultyObjects(hitObjects, c.diff)
	seeker := cursor.NewSeeker(c.timelines)

	assignments := make([]int, len(hitObjects))
	usage := make([]int, len(c.timelines))

	maxDistance := float32(c.cfg.TwoHandMaxDistance * c.diff.CircleRadius)

	for i, obj := range hitObjects {
		if ctx.Err() != nil {
			return nil, false
		}

		slot := -1

		if i > 0 {
			d := diffObjects[i-1]

			if obj.GetType() == objects.SPINNER || dragProbability(d.Angle, d.Velocity(), c.cfg.DragMaxVelocity) >= c.cfg.DragThreshold {
				slot = 0
			}
		}

		if slot == -1 {
			hitTime := obj.GetStartTime()
			if i < len(c.replay.Objects) && c.replay.Objects[i].Result != droid.ResultMiss {
				hitTime += float64(c.replay.Objects[i].HitOffset)
			}

			if match, found := c.nearestCursor(seeker, hitTime, obj.GetStackedStartPosition()); found && match.Distance <= maxDistance {
				slot = match.Slot
			}
		}

		if slot == -1 {
			previous := -1
			if i > 0 {
				previous = assignments[i-1]
			}

			slot = c.alternate(usage, previous)
		}

		assignments[i] = slot
		usage[slot]++
	}

	return assignments, true
}

// nearestCursor finds the slot whose cursor is closest to the object at hit time, among the
// gestures that are down within the hit window.
func (c *TwoHandChecker) nearestCursor(seeker *cursor.Seeker, hitTime float64, target vector.Vector2f) (best pressMatch, found bool) {
	for slot := range c.timelines {
		first, groups := seeker.Window(slot, hitTime-c.diff.Hit50, hitTime+c.diff.Hit50)

		for i, g := range groups {
			t := mutils.Clamp(hitTime, float64(g.StartTime()), float64(g.EndTime()))

			dist := g.PositionAt(t).Dst(target)
			if !found || dist < best.Distance {
				best = pressMatch{Slot: slot, Group: first + i, TimeDistance: mutils.Abs(t - hitTime), Distance: dist}
				found = true
			}
		}
	}

	return
}

// alternate switches away from the previous slot between the two most used slots so far,
// falling back to the two slots with the most presses.
func (c *TwoHandChecker) alternate(usage []int, previous int) int {
	first, second := topTwo(usage)

	if usage[first] == 0 || usage[second] == 0 {
		presses := make([]int, len(c.timelines))
		for i := range c.timelines {
			presses[i] = c.timelines[i].PressCount()
		}

		first, second = topTwo(presses)
	}

	if previous == first {
		return second
	}

	return first
}

// suppressNoise folds rarely used slots, and every slot but the two most used, into the
// majority slot. It returns the majority slot.
func (c *TwoHandChecker) suppressNoise(assignments []int) int {
	counts := make([]int, len(c.timelines))
	for _, slot := range assignments {
		counts[slot]++
	}

	first, second := topTwo(counts)

	for i, slot := range assignments {
		keep := slot == first || (slot == second && counts[second] >= c.cfg.MinOccurrence)
		if !keep {
			assignments[i] = first
		}
	}

	return first
}

// topTwo returns the indices of the two largest values, lower index first on ties.
func topTwo(values []int) (first, second int) {
	first, second = 0, min(1, len(values)-1)

	if len(values) > 1 && values[second] > values[first] {
		first, second = second, first
	}

	for i := 2; i < len(values); i++ {
		switch {
		case values[i] > values[first]:
			first, second = i, first
		case values[i] > values[second]:
			second = i
		}
	}

	return
}
