package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrOutOfBounds is returned when a read runs past the end of the data.
var ErrOutOfBounds = errors.New("read out of bounds")

// Reader provides random-access little-endian reads over an in-memory file.
// CGFX pointers are relative offsets, so reads jump around instead of streaming.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Len returns the total length of the underlying data.
func (r *Reader) Len() int {
	return len(r.data)
}

// Reset seeks to the given position.
func (r *Reader) Reset(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return r.wrapError(ErrOutOfBounds, pos)
	}
	r.pos = pos
	return nil
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, r.wrapError(ErrOutOfBounds, r.pos)
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the data.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.data) {
		return nil, r.wrapError(ErrOutOfBounds, r.pos+n)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadU16LE reads a little-endian uint16.
func (r *Reader) ReadU16LE() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadU32LE reads a little-endian uint32 (fixed 4 bytes).
func (r *Reader) ReadU32LE() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadS32LE reads a little-endian int32.
func (r *Reader) ReadS32LE() (int32, error) {
	v, err := r.ReadU32LE()
	return int32(v), err
}

// ReadF32LE reads a little-endian IEEE-754 float32.
func (r *Reader) ReadF32LE() (float32, error) {
	v, err := r.ReadU32LE()
	return math.Float32frombits(v), err
}

// CString returns the NUL-terminated string starting at pos without moving
// the read position.
func (r *Reader) CString(pos int) (string, error) {
	if pos < 0 || pos >= len(r.data) {
		return "", r.wrapError(ErrOutOfBounds, pos)
	}
	for end := pos; end < len(r.data); end++ {
		if r.data[end] == 0 {
			return string(r.data[pos:end]), nil
		}
	}
	return "", r.wrapError(errors.New("unterminated string"), pos)
}

func (r *Reader) wrapError(err error, pos int) error {
	return fmt.Errorf("at offset %d: %w", pos, err)
}
