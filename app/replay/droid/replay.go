package droid

import (
	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/framework/math/vector"
)

type MovementType uint8

const (
	Press MovementType = iota
	Drag
	Release
)

func (t MovementType) String() string {
	switch t {
	case Press:
		return "press"
	case Drag:
		return "drag"
	case Release:
		return "release"
	}

	return "unknown"
}

// Movement is one decoded cursor sample.
type Movement struct {
	Time     int32
	Position vector.Vector2f
	Type     MovementType

	// HasPosition is false for release samples; their Position is copied from the previous
	// sample of the same slot.
	HasPosition bool
}

type HitResult uint8

const (
	ResultNone  HitResult = 0
	ResultMiss  HitResult = 1
	ResultMeh   HitResult = 2
	ResultGood  HitResult = 3
	ResultGreat HitResult = 4
)

func (r HitResult) String() string {
	switch r {
	case ResultMiss:
		return "miss"
	case ResultMeh:
		return "50"
	case ResultGood:
		return "100"
	case ResultGreat:
		return "300"
	}

	return "none"
}

func (r HitResult) IsHit() bool {
	return r == ResultMeh || r == ResultGood || r == ResultGreat
}

// ObjectJudgement is the recorded outcome of one hit object.
type ObjectJudgement struct {
	HitOffset int16
	Tickset   []bool
	Result    HitResult
}

// TickHit reports whether nested object i (0-based, head excluded) was recorded as hit.
func (j ObjectJudgement) TickHit(i int) bool {
	return i >= 0 && i < len(j.Tickset) && j.Tickset[i]
}

type Statistics struct {
	Hit300k int
	Hit300  int
	Hit100k int
	Hit100  int
	Hit50   int
	Misses  int

	MaxCombo int
	Score    int
	Accuracy float64

	FullCombo bool
}

// ForcedStats are per-play difficulty overrides stored by newer replay versions.
type ForcedStats struct {
	Speed float64

	CS, AR, OD, HP *float64

	FlashlightFollowDelay *float64
}

// ReplayData is the decoded, immutable content of one replay.
type ReplayData struct {
	Version int
	Header  Header

	Objects         []ObjectJudgement
	CursorMovements [][]Movement

	Statistics Statistics
	Mods       difficulty.Modifier
	Forced     ForcedStats
}

// ActiveSlots returns the number of cursor slots with at least one press.
func (r *ReplayData) ActiveSlots() (count int) {
	for _, slot := range r.CursorMovements {
		for _, m := range slot {
			if m.Type == Press {
				count++
				break
			}
		}
	}

	return
}

// ApplyTo configures d with the mods and forced statistics recorded in the replay.
func (r *ReplayData) ApplyTo(d *difficulty.Difficulty) {
	d.SetMods(r.Mods)

	if r.Forced.Speed > 0 && r.Forced.Speed != 1 {
		d.SetCustomSpeed(r.Forced.Speed)
	}

	if r.Forced.CS != nil || r.Forced.AR != nil || r.Forced.OD != nil || r.Forced.HP != nil {
		d.SetForced(r.Forced.CS, r.Forced.AR, r.Forced.OD, r.Forced.HP)
	}

	if r.Forced.FlashlightFollowDelay != nil {
		d.FlashlightFollowDelay = *r.Forced.FlashlightFollowDelay
	}
}
