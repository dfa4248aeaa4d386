package droid

import (
	"fmt"

	"github.com/Givikap120/droidguard/framework/math/vector"
)

// layout describes how one range of replay versions stores its raw binary section.
type layout struct {
	name string

	minVersion int
	maxVersion int

	// judgement byte after every object's tickset
	hasJudgement bool

	// hit counts stored in the header rather than synthesized from judgements
	storesStatistics bool

	// forced statistics stored in the header's extra mod string
	hasExtraMods bool

	readPosition func(r *Reader) (vector.Vector2f, error)
}

func readShortPosition(r *Reader) (vector.Vector2f, error) {
	x, err := r.ReadInt16()
	if err != nil {
		return vector.Vector2f{}, err
	}

	y, err := r.ReadInt16()
	if err != nil {
		return vector.Vector2f{}, err
	}

	return vector.NewVec2f(float32(x), float32(y)), nil
}

func readFloatPosition(r *Reader) (vector.Vector2f, error) {
	x, err := r.ReadFloat32()
	if err != nil {
		return vector.Vector2f{}, err
	}

	y, err := r.ReadFloat32()
	if err != nil {
		return vector.Vector2f{}, err
	}

	return vector.NewVec2f(x, y), nil
}

var layouts = [...]layout{
	{
		name:         "legacy",
		minVersion:   0,
		maxVersion:   0,
		readPosition: readShortPosition,
	},
	{
		name:         "judged",
		minVersion:   1,
		maxVersion:   2,
		hasJudgement: true,
		readPosition: readShortPosition,
	},
	{
		name:             "statistics",
		minVersion:       3,
		maxVersion:       3,
		hasJudgement:     true,
		storesStatistics: true,
		readPosition:     readShortPosition,
	},
	{
		name:             "forced",
		minVersion:       4,
		maxVersion:       4,
		hasJudgement:     true,
		storesStatistics: true,
		hasExtraMods:     true,
		readPosition:     readShortPosition,
	},
	{
		name:             "float",
		minVersion:       5,
		maxVersion:       5,
		hasJudgement:     true,
		storesStatistics: true,
		hasExtraMods:     true,
		readPosition:     readFloatPosition,
	},
}

func layoutFor(version int) (*layout, error) {
	for i := range layouts {
		if version >= layouts[i].minVersion && version <= layouts[i].maxVersion {
			return &layouts[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
}

func (l *layout) readMovements(r *Reader) ([][]Movement, error) {
	slotCount, err := r.ReadCount(4)
	if err != nil {
		return nil, fmt.Errorf("cursor slot count: %w", err)
	}

	slots := make([][]Movement, slotCount)

	for i := range slots {
		n, err := r.ReadCount(4)
		if err != nil {
			return nil, fmt.Errorf("slot %d sample count: %w", i, err)
		}

		moves := make([]Movement, n)

		var lastPosition vector.Vector2f

		for j := range moves {
			packed, err := r.ReadInt32()
			if err != nil {
				return nil, fmt.Errorf("slot %d sample %d: %w", i, j, err)
			}

			m := Movement{
				Type: MovementType(packed & 3),
				Time: packed >> 2,
			}

			if m.Type > Release {
				return nil, fmt.Errorf("%w: slot %d sample %d has type %d", ErrMalformedMovement, i, j, m.Type)
			}

			if j > 0 && m.Time < moves[j-1].Time {
				return nil, fmt.Errorf("%w: slot %d sample %d goes back in time (%d < %d)", ErrMalformedMovement, i, j, m.Time, moves[j-1].Time)
			}

			if m.Type != Release {
				if m.Position, err = l.readPosition(r); err != nil {
					return nil, fmt.Errorf("slot %d sample %d position: %w", i, j, err)
				}

				m.HasPosition = true
				lastPosition = m.Position
			} else {
				m.Position = lastPosition
			}

			moves[j] = m
		}

		slots[i] = moves
	}

	return slots, nil
}

func (l *layout) readObjects(r *Reader) ([]ObjectJudgement, error) {
	count, err := r.ReadCount(3)
	if err != nil {
		return nil, fmt.Errorf("object count: %w", err)
	}

	judgements := make([]ObjectJudgement, count)

	for i := range judgements {
		j := &judgements[i]

		if j.HitOffset, err = r.ReadInt16(); err != nil {
			return nil, fmt.Errorf("object %d offset: %w", i, err)
		}

		length, err := r.ReadInt8()
		if err != nil {
			return nil, fmt.Errorf("object %d tickset length: %w", i, err)
		}

		if length < 0 {
			return nil, fmt.Errorf("%w: object %d has tickset length %d", ErrMalformedMovement, i, length)
		}

		if length > 0 {
			raw, err := r.ReadBytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("object %d tickset: %w", i, err)
			}

			j.Tickset = DecodeTickset(raw)
		}

		j.Result = ResultGreat

		if l.hasJudgement {
			code, err := r.ReadInt8()
			if err != nil {
				return nil, fmt.Errorf("object %d judgement: %w", i, err)
			}

			if code < int8(ResultNone) || code > int8(ResultGreat) {
				return nil, fmt.Errorf("%w: object %d has judgement code %d", ErrMalformedMovement, i, code)
			}

			j.Result = HitResult(code)
		}
	}

	return judgements, nil
}

// DecodeTickset expands a tickset byte array. Bit j lives in byte len-1-j/8 at mask 1<<(j%8).
func DecodeTickset(raw []byte) []bool {
	bits := make([]bool, len(raw)*8)

	for j := range bits {
		bits[j] = raw[len(raw)-1-j/8]&(1<<(j%8)) != 0
	}

	return bits
}

// EncodeTickset is the inverse of DecodeTickset, padding to whole bytes.
func EncodeTickset(bits []bool) []byte {
	raw := make([]byte, (len(bits)+7)/8)

	for j, set := range bits {
		if set {
			raw[len(raw)-1-j/8] |= 1 << (j % 8)
		}
	}

	return raw
}
