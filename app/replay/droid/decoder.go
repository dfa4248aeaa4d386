package droid

import (
	"errors"
	"fmt"

	"github.com/Givikap120/droidguard/app/beatmap/objects"
)

// Decoder turns raw replay bytes into ReplayData.
type Decoder struct {
	header HeaderParser

	// Beatmap supplies new combo flags when statistics must be synthesized for old versions.
	// Optional.
	Beatmap *objects.Beatmap
}

func NewDecoder(header HeaderParser) *Decoder {
	return &Decoder{header: header}
}

// Decode decodes the whole replay. Any failure returns no data at all.
func (d *Decoder) Decode(raw []byte) (*ReplayData, error) {
	if d.header == nil {
		return nil, fmt.Errorf("%w: no header parser", ErrHeader)
	}

	header, body, err := d.header.ParseHeader(raw)
	if err != nil {
		if !errors.Is(err, ErrHeader) {
			err = fmt.Errorf("%w: %w", ErrHeader, err)
		}

		return nil, err
	}

	l, err := layoutFor(header.Version)
	if err != nil {
		return nil, err
	}

	r := NewReader(body)

	movements, err := l.readMovements(r)
	if err != nil {
		return nil, fmt.Errorf("replay v%d (%s layout): %w", header.Version, l.name, err)
	}

	judgements, err := l.readObjects(r)
	if err != nil {
		return nil, fmt.Errorf("replay v%d (%s layout): %w", header.Version, l.name, err)
	}

	data := &ReplayData{
		Version:         header.Version,
		Header:          header,
		Objects:         judgements,
		CursorMovements: movements,
		Mods:            header.mods(),
		Forced:          ForcedStats{Speed: 1},
	}

	if l.hasExtraMods {
		if data.Forced, err = ParseExtraMods(header.ExtraModString); err != nil {
			return nil, err
		}
	}

	if l.storesStatistics {
		data.Statistics = header.Statistics
	} else {
		isNewCombo := func(int) bool { return false }
		if d.Beatmap != nil {
			isNewCombo = d.Beatmap.IsNewCombo
		}

		data.Statistics = SynthesizeStatistics(judgements, isNewCombo)
	}

	return data, nil
}
