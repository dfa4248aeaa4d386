package antiabuse

// Config holds the tuned constants of every check. The values are game balance decisions,
// so all of them can be overridden from settings.
type Config struct {
	// ThreeFingerRatio is the share of extra finger presses over legitimate ones above which a
	// section counts as three-fingered.
	ThreeFingerRatio float64 `koanf:"three_finger_ratio"`

	// LegitimateFingers is the number of fingers allowed to tap.
	LegitimateFingers int `koanf:"legitimate_fingers"`

	// AccidentalTapMinPresses and AccidentalTapRatio filter out slots that only registered
	// stray touches.
	AccidentalTapMinPresses int     `koanf:"accidental_tap_min_presses"`
	AccidentalTapRatio      float64 `koanf:"accidental_tap_ratio"`

	// A press this soon and this close to a release on another slot is the same finger
	// registered again.
	DistancingTime     float64 `koanf:"distancing_time"`
	DistancingDistance float64 `koanf:"distancing_distance"`

	// TimeTieEpsilon is how close two presses have to be in time to be ranked by distance instead.
	TimeTieEpsilon float64 `koanf:"time_tie_epsilon"`

	StableStrainScale    float64 `koanf:"stable_strain_scale"`
	RebalanceStrainScale float64 `koanf:"rebalance_strain_scale"`

	StableNerfWeight    float64 `koanf:"stable_nerf_weight"`
	RebalanceNerfWeight float64 `koanf:"rebalance_nerf_weight"`

	// DragThreshold is the drag likelihood from which an object inherits the previous slot
	// without searching.
	DragThreshold float64 `koanf:"drag_threshold"`

	// DragMaxVelocity is the normalized jump velocity at which a drag becomes implausible.
	DragMaxVelocity float64 `koanf:"drag_max_velocity"`

	// TwoHandMaxDistance is the farthest, in radii, a cursor may be from an object to hit it.
	TwoHandMaxDistance float64 `koanf:"two_hand_max_distance"`

	// MinOccurrence is the fewest objects a slot has to hit to be treated as a hand.
	MinOccurrence int `koanf:"min_occurrence"`

	// CheeseRadiusMultiplier scales the object radius into the distance a slider may be
	// followed from.
	CheeseRadiusMultiplier float64 `koanf:"cheese_radius_multiplier"`
}

func DefaultConfig() Config {
	return Config{
		ThreeFingerRatio:        0.01,
		LegitimateFingers:       2,
		AccidentalTapMinPresses: 3,
		AccidentalTapRatio:      0.01,
		DistancingTime:          1000,
		DistancingDistance:      60,
		TimeTieEpsilon:          1,
		StableStrainScale:       0.1,
		RebalanceStrainScale:    10,
		StableNerfWeight:        0.015,
		RebalanceNerfWeight:     0.0125,
		DragThreshold:           0.5,
		DragMaxVelocity:         0.5,
		TwoHandMaxDistance:      3,
		MinOccurrence:           5,
		CheeseRadiusMultiplier:  2,
	}
}
