package objects

type BreakPeriod struct {
	Start float64
	End   float64
}

// Beatmap is the decoded map consumed read-only by the analysers.
type Beatmap struct {
	Name string
	MD5  string

	HitObjects []IHitObject
	Breaks     []BreakPeriod
}

// IsNewCombo reports whether object i starts a new combo. The first object always does.
func (b *Beatmap) IsNewCombo(i int) bool {
	if i <= 0 {
		return true
	}

	if i >= len(b.HitObjects) {
		return false
	}

	return b.HitObjects[i].IsNewCombo()
}

// ApplyStacking refreshes the stack offsets of every object for the given radius.
func (b *Beatmap) ApplyStacking(radius float64) {
	for _, o := range b.HitObjects {
		o.SetStackOffset(radius)
	}
}

func (b *Beatmap) InBreak(time float64) bool {
	for _, br := range b.Breaks {
		if time >= br.Start && time <= br.End {
			return true
		}
	}

	return false
}
