package difficulty

import (
	"math"
)

const (
	HitFadeIn = 400.0
)

// Difficulty holds resolved map statistics. Hit windows and preempt are in map time (ms),
// CircleRadius is in osu!pixels.
type Difficulty struct {
	Mods Modifier

	baseCS, baseAR, baseOD, baseHP float64

	// forced values from the replay take precedence over mod-adjusted ones
	ForcedCS, ForcedAR, ForcedOD, ForcedHP *float64

	CircleRadius float64
	Preempt      float64
	TimeFadeIn   float64

	Hit300 float64
	Hit100 float64
	Hit50  float64

	ARReal float64
	ODReal float64

	Speed float64

	FlashlightFollowDelay float64
}

func NewDifficulty(hp, cs, od, ar float64) *Difficulty {
	diff := &Difficulty{
		baseHP: hp,
		baseCS: cs,
		baseOD: od,
		baseAR: ar,
		Speed:  1,

		FlashlightFollowDelay: 0.12,
	}

	diff.calculate()

	return diff
}

func (d *Difficulty) calculate() {
	cs, od, ar := d.baseCS, d.baseOD, d.baseAR

	if d.CheckModActive(HardRock) {
		ar = min(ar*1.4, 10)
		cs = min(cs*1.3, 10)
		od = min(od*1.4, 10)
	}

	if d.CheckModActive(Easy) {
		ar /= 2
		cs /= 2
		od /= 2
	}

	if d.ForcedCS != nil {
		cs = *d.ForcedCS
	}

	if d.ForcedAR != nil {
		ar = *d.ForcedAR
	}

	if d.ForcedOD != nil {
		od = *d.ForcedOD
	}

	d.CircleRadius = 54.4 - 4.48*cs

	if d.CheckModActive(SmallCircle) {
		d.CircleRadius = 54.4 - 4.48*(cs+4)
	}

	d.Preempt = DifficultyRate(ar, 1800, 1200, 450)
	d.TimeFadeIn = HitFadeIn * min(1, d.Preempt/450)

	d.Hit300 = 75 + 5*(5-od)
	d.Hit100 = 150 + 10*(5-od)
	d.Hit50 = 250 + 10*(5-od)

	if d.CheckModActive(Precise) {
		d.Hit300 = 55 + 6*(5-od)
		d.Hit100 = 120 + 8*(5-od)
		d.Hit50 = 180 + 10*(5-od)
	}

	d.ARReal = DiffFromRate(d.GetModifiedTime(d.Preempt), 1800, 1200, 450)
	// ODReal is the osu!standard OD with the same great window.
	d.ODReal = (80 - d.GetModifiedTime(d.Hit300)) / 6
}

// SetMods sets the active mods and recalculates the difficulty.
func (d *Difficulty) SetMods(mods Modifier) {
	d.Mods = mods

	d.Speed = 1.0
	if d.CheckModActive(DoubleTime) || d.CheckModActive(Nightcore) {
		d.Speed = 1.5
	} else if d.CheckModActive(HalfTime) {
		d.Speed = 0.75
	}

	d.calculate()
}

// SetCustomSpeed overrides the clock rate, as forced speed multipliers do on osu!droid.
func (d *Difficulty) SetCustomSpeed(speed float64) {
	if speed <= 0 {
		return
	}

	d.Speed = speed
	d.calculate()
}

func (d *Difficulty) SetForced(cs, ar, od, hp *float64) {
	d.ForcedCS, d.ForcedAR, d.ForcedOD, d.ForcedHP = cs, ar, od, hp
	d.calculate()
}

// SetHitWindows replaces computed hit windows with externally resolved ones.
func (d *Difficulty) SetHitWindows(great, good, meh float64) {
	d.Hit300, d.Hit100, d.Hit50 = great, good, meh
	d.ODReal = (80 - d.GetModifiedTime(d.Hit300)) / 6
}

func (d *Difficulty) SetRadius(radius float64) {
	d.CircleRadius = radius
}

func (d *Difficulty) CheckModActive(mods Modifier) bool {
	return d.Mods&mods > 0
}

func (d *Difficulty) GetModifiedTime(time float64) float64 {
	return time / d.Speed
}

func (d *Difficulty) GetBaseCS() float64 { return d.baseCS }
func (d *Difficulty) GetBaseAR() float64 { return d.baseAR }
func (d *Difficulty) GetBaseOD() float64 { return d.baseOD }

func (d *Difficulty) Clone() *Difficulty {
	c := *d
	return &c
}

func DifficultyRate(diff, min, mid, max float64) float64 {
	diff = float64(float32(diff))

	if diff > 5 {
		return mid + (max-mid)*(diff-5)/5
	}

	if diff < 5 {
		return mid - (mid-min)*(5-diff)/5
	}

	return mid
}

func DiffFromRate(rate, min, mid, max float64) float64 {
	rate = float64(float32(rate))

	minStep := (min - mid) / 5
	maxStep := (mid - max) / 5

	if rate > mid {
		return -(rate - min) / minStep
	}

	return 5.0 - (rate-mid)/maxStep
}

// SliderBreakOffset is the hit offset osu!droid records for a slider whose head was missed
// but whose body was still followed.
func (d *Difficulty) SliderBreakOffset() int {
	return int(math.Floor(d.Hit50)) + 13
}

func (d *Difficulty) GetBaseHP() float64 { return d.baseHP }
