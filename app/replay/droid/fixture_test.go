package droid

import (
	"bytes"
	"encoding/binary"
	"math"
)

type fixtureMove struct {
	time int32
	kind MovementType
	x, y float32
}

type fixtureObject struct {
	offset  int16
	tickset []bool
	result  HitResult
}

// writeReplay encodes the raw binary section the same way the game writes it.
func writeReplay(version int, slots [][]fixtureMove, objs []fixtureObject) []byte {
	var buf bytes.Buffer

	w := func(v any) {
		_ = binary.Write(&buf, binary.BigEndian, v)
	}

	w(int32(len(slots)))

	for _, slot := range slots {
		w(int32(len(slot)))

		for _, m := range slot {
			w(m.time<<2 | int32(m.kind))

			if m.kind == Release {
				continue
			}

			if version >= 5 {
				w(math.Float32bits(m.x))
				w(math.Float32bits(m.y))
			} else {
				w(int16(m.x))
				w(int16(m.y))
			}
		}
	}

	w(int32(len(objs)))

	for _, o := range objs {
		w(o.offset)

		raw := EncodeTickset(o.tickset)
		w(int8(len(raw)))
		buf.Write(raw)

		if version >= 1 {
			w(int8(o.result))
		}
	}

	return buf.Bytes()
}

func headerFor(version int) RawHeaderParser {
	return RawHeaderParser{Header: Header{Version: version, ModString: "hr"}}
}
