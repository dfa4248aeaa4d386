package difficulty

import (
	"strings"
)

type Modifier int64

const (
	None        Modifier = 0
	NoFail      Modifier = 1 << 0
	Easy        Modifier = 1 << 1
	TouchDevice Modifier = 1 << 2
	Hidden      Modifier = 1 << 3
	HardRock    Modifier = 1 << 4
	SuddenDeath Modifier = 1 << 5
	DoubleTime  Modifier = 1 << 6
	Relax       Modifier = 1 << 7
	HalfTime    Modifier = 1 << 8
	Nightcore   Modifier = 1 << 9
	Flashlight  Modifier = 1 << 10
	Autoplay    Modifier = 1 << 11
	SpunOut     Modifier = 1 << 12
	Relax2      Modifier = 1 << 13 // Autopilot
	Perfect     Modifier = 1 << 14
	ScoreV2     Modifier = 1 << 29

	// osu!droid only
	Precise     Modifier = 1 << 32
	SmallCircle Modifier = 1 << 33
	ReallyEasy  Modifier = 1 << 34
	Traceable   Modifier = 1 << 35

	// DifficultyAdjustMask contains mods that change map difficulty
	DifficultyAdjustMask = HardRock | Easy | DoubleTime | Nightcore | HalfTime | Flashlight | Hidden | TouchDevice | Relax | Relax2 | Precise | SmallCircle | ReallyEasy | Traceable
)

var modsString = [...]string{
	"NF",
	"EZ",
	"TD",
	"HD",
	"HR",
	"SD",
	"DT",
	"RX",
	"HT",
	"NC",
	"FL",
	"AT",
	"SO",
	"AP",
	"PF",
}

var droidModsString = map[Modifier]string{
	ScoreV2:     "V2",
	Precise:     "PR",
	SmallCircle: "SC",
	ReallyEasy:  "RE",
	Traceable:   "TC",
}

// droidModLetters maps the single-letter mod codes stored in osu!droid replays.
var droidModLetters = map[byte]Modifier{
	'a': Autoplay,
	'x': Relax,
	'p': Relax2,
	'e': Easy,
	'n': NoFail,
	'r': HardRock,
	'h': Hidden,
	'i': Flashlight,
	'd': DoubleTime,
	'c': Nightcore,
	't': HalfTime,
	's': Precise,
	'm': SmallCircle,
	'l': ReallyEasy,
	'f': Perfect,
	'u': SuddenDeath,
	'v': ScoreV2,
	'b': Traceable,
}

func (mods Modifier) Active(mod Modifier) bool {
	return mods&mod > 0
}

func (mods Modifier) String() (s string) {
	var sb strings.Builder

	for i, name := range modsString {
		if mods&(1<<uint(i)) > 0 {
			if i == 6 && mods.Active(Nightcore) {
				continue
			}

			if i == 5 && mods.Active(Perfect) {
				continue
			}

			sb.WriteString(name)
		}
	}

	for _, m := range []Modifier{ScoreV2, Precise, SmallCircle, ReallyEasy, Traceable} {
		if mods.Active(m) {
			sb.WriteString(droidModsString[m])
		}
	}

	return sb.String()
}

func GetDiffMaskedMods(mods Modifier) Modifier {
	return mods & DifficultyAdjustMask
}

// ParseDroidMods converts an osu!droid mod letter string (e.g. "hdr") into a Modifier.
// Unknown letters are ignored. Every droid play is a touch device play.
func ParseDroidMods(s string) Modifier {
	mods := TouchDevice

	for i := 0; i < len(s); i++ {
		if m, ok := droidModLetters[s[i]]; ok {
			mods |= m
		}
	}

	return mods
}
