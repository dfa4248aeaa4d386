package skills

import (
	"math"
	"slices"

	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/droid/preprocessing"
	"github.com/Givikap120/droidguard/framework/math/mutils"
)

// Skill accumulates per-object strains into section peaks and a weighted difficulty value.
type Skill struct {
	// Final multiplier applied to the weighted sum of peaks
	DifficultyMultiplier float64

	// Weight decay of every next, lower peak
	DecayWeight float64

	SectionLength float64

	// Number of highest peaks that are scaled down, to damp single difficulty spikes
	ReducedSectionCount   int
	ReducedStrainBaseline float64

	StrainValueOf          func(current *preprocessing.DifficultyObject) float64
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64

	Difficulty float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks   []float64
	objectStrains []float64
}

func NewSkill() *Skill {
	return &Skill{
		DifficultyMultiplier:  1.06,
		DecayWeight:           0.9,
		SectionLength:         400,
		ReducedSectionCount:   10,
		ReducedStrainBaseline: 0.75,
	}
}

// Process calculates the strainValue of current and updates the section peaks.
func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.CalculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += skill.SectionLength
	}

	skill.currentSectionPeak = max(skill.StrainValueOf(current), skill.currentSectionPeak)
}

// GetCurrentStrainPeaks returns the saved peaks plus the still open section.
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

// ObjectStrains returns the strain of every processed object in processing order.
func (skill *Skill) ObjectStrains() []float64 {
	return skill.objectStrains
}

func (skill *Skill) DifficultyValue() float64 {
	strains := make([]float64, 0, len(skill.strainPeaks)+1)

	for _, s := range skill.GetCurrentStrainPeaks() {
		if s > 0 {
			strains = append(strains, s)
		}
	}

	slices.SortFunc(strains, descending)

	numReduced := min(len(strains), skill.ReducedSectionCount)

	for i := 0; i < numReduced; i++ {
		scale := math.Log10(mutils.Lerp(1.0, 10.0, mutils.Clamp(float64(i)/float64(skill.ReducedSectionCount), 0, 1)))
		strains[i] *= mutils.Lerp(skill.ReducedStrainBaseline, 1.0, scale)
	}

	slices.SortFunc(strains, descending)

	difficulty := 0.0
	weight := 1.0

	for _, strain := range strains {
		difficulty += strain * weight
		weight *= skill.DecayWeight
	}

	skill.Difficulty = difficulty * skill.DifficultyMultiplier

	return skill.Difficulty
}

// CountDifficultStrains returns the number of strains weighted against the top strain.
// The result is scaled by clock rate as it affects the total number of strains.
func (skill *Skill) CountDifficultStrains() float64 {
	if skill.Difficulty == 0 {
		return 0
	}

	// What would the top strain be if all strain values were identical
	consistentTopStrain := skill.Difficulty / 10

	sum := 0.0

	for _, s := range skill.objectStrains {
		sum += 1.1 / (1 + math.Exp(-10*(s/consistentTopStrain-0.88)))
	}

	return sum
}

func DefaultDifficultyToPerformance(difficulty float64) float64 {
	return math.Pow(5.0*max(1.0, difficulty/0.0675)-4.0, 3.0) / 100000.0
}

func descending(a, b float64) int {
	switch {
	case a > b:
		return -1
	case a < b:
		return 1
	}

	return 0
}
