package droid

import (
	"slices"

	"github.com/Givikap120/droidguard/app/beatmap/objects"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	"gonum.org/v1/gonum/floats"
)

const (
	// SectionStrainThreshold is the share of the peak tap strain an object needs to be part of
	// a possibly three-fingered section.
	SectionStrainThreshold = 0.6

	// MinSectionObjects is the shortest run of tap-heavy objects that forms a section.
	MinSectionObjects = 5

	// SectionMergeGap is the longest run of easier objects two sections are merged across.
	SectionMergeGap = 2

	// DifficultSliderThreshold is the share of the largest slider aim contribution a slider
	// needs to be flagged as difficult.
	DifficultSliderThreshold = 0.2
)

// alignStrains maps per difficulty object strains onto beatmap object indices. The first
// object has no strain.
func alignStrains(strains []float64, objectCount int) []float64 {
	aligned := make([]float64, objectCount)
	copy(aligned[min(1, objectCount):], strains)

	return aligned
}

// findThreeFingeredSections returns the contiguous runs of objects whose tap strain stays close
// to the peak.
func findThreeFingeredSections(tapStrains []float64) []api.HighStrainSection {
	if len(tapStrains) == 0 {
		return nil
	}

	peak := floats.Max(tapStrains)
	if peak <= 0 {
		return nil
	}

	threshold := peak * SectionStrainThreshold

	var sections []api.HighStrainSection

	first, last := -1, -1

	flush := func() {
		if first == -1 || last-first+1 < MinSectionObjects {
			return
		}

		sections = append(sections, api.HighStrainSection{
			FirstObjectIndex: first,
			LastObjectIndex:  last,
			SumStrain:        floats.Sum(tapStrains[first : last+1]),
		})
	}

	for i, strain := range tapStrains {
		if strain < threshold {
			continue
		}

		if first != -1 && i-last-1 > SectionMergeGap {
			flush()
			first = -1
		}

		if first == -1 {
			first = i
		}

		last = i
	}

	flush()

	return sections
}

// findDifficultSliders rates every slider by how much aim strain following it adds to the
// object after it. Ratings are normalised to sum to 1.
func findDifficultSliders(hitObjects []objects.IHitObject, aimStrains, aimStrainsNoSliders []float64) []api.DifficultSlider {
	var candidates []api.DifficultSlider

	for i := 0; i+1 < len(hitObjects); i++ {
		if _, ok := hitObjects[i].(*objects.Slider); !ok {
			continue
		}

		delta := aimStrains[i+1] - aimStrainsNoSliders[i+1]
		if delta > 0 {
			candidates = append(candidates, api.DifficultSlider{Index: i, DifficultyRating: delta})
		}
	}

	if len(candidates) == 0 {
		return nil
	}

	maxDelta := 0.0
	for _, c := range candidates {
		maxDelta = max(maxDelta, c.DifficultyRating)
	}

	candidates = slices.DeleteFunc(candidates, func(c api.DifficultSlider) bool {
		return c.DifficultyRating < maxDelta*DifficultSliderThreshold
	})

	total := 0.0
	for _, c := range candidates {
		total += c.DifficultyRating
	}

	for i := range candidates {
		candidates[i].DifficultyRating /= total
	}

	return candidates
}
