package api

type Attributes struct {
	// Total Star rating
	Total float64

	// Aim stars, needed for Performance Points (aka PP) calculations
	Aim float64

	// Tap stars, needed for Performance Points (aka PP) calculations
	Tap float64

	TapNoteCount float64

	AimDifficultStrainCount float64
	TapDifficultStrainCount float64

	// AimDifficultSliderCount is the weighted number of sliders near the top aim strain
	AimDifficultSliderCount float64

	// Flashlight stars, needed for Performance Points (aka PP) calculations
	Flashlight float64

	// SliderFactor is a ratio of Aim calculated without sliders to Aim with them
	SliderFactor float64

	// PossibleThreeFingeredSections are the tap-heavy stretches a three-finger check looks at
	PossibleThreeFingeredSections []HighStrainSection

	// DifficultSliders are sliders whose aim strain depends the most on being followed
	DifficultSliders []DifficultSlider

	ObjectCount int
	Circles     int
	Sliders     int
	Spinners    int
	MaxCombo    int
}

// HighStrainSection is an inclusive, contiguous range of object indices with elevated tap strain.
type HighStrainSection struct {
	FirstObjectIndex int
	LastObjectIndex  int
	SumStrain        float64
}

func (s HighStrainSection) ObjectCount() int {
	return s.LastObjectIndex - s.FirstObjectIndex + 1
}

type DifficultSlider struct {
	Index            int
	DifficultyRating float64
}

// StrainPeaks contains peaks of Aim, Tap and Flashlight skills, as well as peaks passed through star rating formula
type StrainPeaks struct {
	// Aim peaks
	Aim []float64

	// Tap peaks
	Tap []float64

	// Flashlight peaks
	Flashlight []float64

	// Total contains aim, tap and flashlight peaks passed through star rating formula
	Total []float64
}

type PPv2Results struct {
	Aim, Tap, Acc, Flashlight, Total float64
}

// AbuseAttributes is what the input abuse checks read from difficulty attributes.
type AbuseAttributes interface {
	GetPossibleThreeFingeredSections() []HighStrainSection
	GetDifficultSliders() []DifficultSlider
	GetSliderFactor() float64
	GetFlashlightSliderFactor() float64
	GetObjectCount() int
}

func (a *Attributes) GetPossibleThreeFingeredSections() []HighStrainSection {
	return a.PossibleThreeFingeredSections
}

func (a *Attributes) GetDifficultSliders() []DifficultSlider {
	return a.DifficultSliders
}

func (a *Attributes) GetSliderFactor() float64 {
	return a.SliderFactor
}

func (a *Attributes) GetObjectCount() int {
	return a.ObjectCount
}

// StableAttributes are the attributes of the live difficulty algorithm, which has no
// flashlight slider factor.
type StableAttributes struct {
	Attributes
}

func (a *StableAttributes) GetFlashlightSliderFactor() float64 {
	return 1
}

// RebalanceAttributes are the attributes of the in-development difficulty algorithm.
type RebalanceAttributes struct {
	Attributes

	// FlashlightSliderFactor is a ratio of Flashlight calculated without sliders to Flashlight with them
	FlashlightSliderFactor float64
}

func (a *RebalanceAttributes) GetFlashlightSliderFactor() float64 {
	return a.FlashlightSliderFactor
}

// Penalties are the abuse multipliers a performance calculation divides component values by.
type Penalties struct {
	ThreeFinger float64

	SliderCheeseAim        float64
	SliderCheeseFlashlight float64

	// TwoHandedObjects is the number of objects hit by a second hand
	TwoHandedObjects int
}

// NoPenalties leaves every component untouched.
func NoPenalties() Penalties {
	return Penalties{
		ThreeFinger:            1,
		SliderCheeseAim:        1,
		SliderCheeseFlashlight: 1,
	}
}
