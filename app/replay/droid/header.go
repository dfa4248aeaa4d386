package droid

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
)

// Header holds the fields stored ahead of the raw movement data. They are produced by an
// external deserializer of the replay's object stream.
type Header struct {
	Version int

	MapName string
	MapFile string
	MD5     string

	PlayerName string
	Time       int64

	// Statistics are only meaningful for Version >= 3.
	Statistics Statistics

	// ModString holds osu!droid mod letters, e.g. "hrd".
	ModString string

	// ExtraModString holds forced statistics for Version >= 4, e.g. "x1.25|AR9.5|CS4".
	ExtraModString string
}

// HeaderParser deserializes the header of a replay and returns the remaining raw binary.
type HeaderParser interface {
	ParseHeader(raw []byte) (Header, []byte, error)
}

type HeaderParserFunc func(raw []byte) (Header, []byte, error)

func (f HeaderParserFunc) ParseHeader(raw []byte) (Header, []byte, error) {
	return f(raw)
}

// RawHeaderParser is used when the header is already known and the raw movement data starts
// at Offset.
type RawHeaderParser struct {
	Header Header
	Offset int
}

func (p RawHeaderParser) ParseHeader(raw []byte) (Header, []byte, error) {
	if p.Offset < 0 || p.Offset > len(raw) {
		return Header{}, nil, fmt.Errorf("%w: header offset %d outside %d bytes", ErrHeader, p.Offset, len(raw))
	}

	return p.Header, raw[p.Offset:], nil
}

func parseForcedFloat(token, prefix string) (*float64, error) {
	v, err := strconv.ParseFloat(strings.TrimPrefix(token, prefix), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad %s value %q", ErrHeader, prefix, token)
	}

	return &v, nil
}

// ParseExtraMods decodes the "|"-separated forced statistic string. Unknown tokens are skipped.
func ParseExtraMods(s string) (ForcedStats, error) {
	forced := ForcedStats{Speed: 1}

	if s == "" {
		return forced, nil
	}

	for _, token := range strings.Split(s, "|") {
		token = strings.TrimSpace(token)

		var err error

		switch {
		case token == "":
			continue
		case strings.HasPrefix(token, "x"):
			var speed *float64
			if speed, err = parseForcedFloat(token, "x"); err == nil {
				forced.Speed = *speed
			}
		case strings.HasPrefix(token, "AR"):
			forced.AR, err = parseForcedFloat(token, "AR")
		case strings.HasPrefix(token, "OD"):
			forced.OD, err = parseForcedFloat(token, "OD")
		case strings.HasPrefix(token, "CS"):
			forced.CS, err = parseForcedFloat(token, "CS")
		case strings.HasPrefix(token, "HP"):
			forced.HP, err = parseForcedFloat(token, "HP")
		case strings.HasPrefix(token, "FLD"):
			forced.FlashlightFollowDelay, err = parseForcedFloat(token, "FLD")
		}

		if err != nil {
			return ForcedStats{}, err
		}
	}

	return forced, nil
}

func (h Header) mods() difficulty.Modifier {
	return difficulty.ParseDroidMods(h.ModString)
}
