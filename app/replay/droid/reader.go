package droid

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Reader is a forward-only big-endian cursor over a replay buffer.
type Reader struct {
	data   []byte
	offset int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) Remaining() int {
	return len(r.data) - r.offset
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, r.offset, r.Remaining())
	}

	b := r.data[r.offset : r.offset+n]
	r.offset += n

	return b, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return int8(b[0]), nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (r *Reader) ReadInt16() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}

	return int16(binary.BigEndian.Uint16(b)), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadBytes returns the next n bytes. The returned slice aliases the underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	return r.take(n)
}

// ReadCount reads a non-negative int32 length prefix, rejecting counts that cannot fit in the
// remaining buffer given the minimum encoded size of one element.
func (r *Reader) ReadCount(minElementSize int) (int, error) {
	n, err := r.ReadInt32()
	if err != nil {
		return 0, err
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d at offset %d", ErrUnexpectedEOF, n, r.offset-4)
	}

	if minElementSize > 0 && int64(n)*int64(minElementSize) > int64(r.Remaining()) {
		return 0, fmt.Errorf("%w: count %d exceeds remaining %d bytes", ErrUnexpectedEOF, n, r.Remaining())
	}

	return int(n), nil
}
