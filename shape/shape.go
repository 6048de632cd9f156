package shape

import (
	"strings"

	"github.com/wippyai/cgfx/errors"
)

// Kind identifies a primitive slot type.
type Kind byte

const (
	Pad       Kind = 'x'
	Bool      Kind = '?'
	Int8      Kind = 'b'
	Uint8     Kind = 'B'
	Int16     Kind = 'h'
	Uint16    Kind = 'H'
	Int32     Kind = 'i'
	Uint32    Kind = 'I'
	Float32   Kind = 'f'
	Signature Kind = 's'
)

// Size returns the byte width of the kind.
func (k Kind) Size() int {
	switch k {
	case Pad, Bool, Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32, Signature:
		return 4
	default:
		return 0
	}
}

// Align returns the natural alignment of the kind.
func (k Kind) Align() int {
	switch k {
	case Pad, Bool, Int8, Uint8, Signature:
		return 1
	default:
		return k.Size()
	}
}

// String returns the format code of the kind.
func (k Kind) String() string {
	if k == Signature {
		return "4s"
	}
	return string(rune(k))
}

// Slot is a value-carrying position inside a shape.
type Slot struct {
	Kind   Kind
	Offset int
}

// Shape is an immutable record byte layout.
type Shape struct {
	kinds []Kind
	slots []Slot
	size  int
}

// Empty is the shape with no slots.
var Empty = &Shape{}

// Parse builds a shape from a format string.
func Parse(format string) (*Shape, error) {
	kinds := make([]Kind, 0, len(format))
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == ' ' || c == '\t':
			continue
		case c >= '0' && c <= '9':
			start := i
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
			if format[start:i] != "4" || i >= len(format) || format[i] != 's' {
				return nil, errors.MalformedShape(format, start, "repeat counts are only allowed as 4s")
			}
			kinds = append(kinds, Signature)
		case c == 's':
			return nil, errors.MalformedShape(format, i, "signature must be written 4s")
		default:
			k := Kind(c)
			if k.Size() == 0 {
				return nil, errors.MalformedShape(format, i, "unknown format character "+string(rune(c)))
			}
			kinds = append(kinds, k)
		}
	}
	return build(kinds), nil
}

// MustParse is like Parse but panics on a malformed format. It is intended
// for package-level shape tables.
func MustParse(format string) *Shape {
	s, err := Parse(format)
	if err != nil {
		panic(err)
	}
	return s
}

// Join concatenates shapes and re-lays the result out, so alignment is
// computed across part boundaries.
func Join(parts ...*Shape) *Shape {
	n := 0
	for _, p := range parts {
		n += len(p.kinds)
	}
	kinds := make([]Kind, 0, n)
	for _, p := range parts {
		kinds = append(kinds, p.kinds...)
	}
	return build(kinds)
}

// Repeat returns the shape concatenated with itself n times.
func (s *Shape) Repeat(n int) *Shape {
	if n <= 0 {
		return Empty
	}
	kinds := make([]Kind, 0, len(s.kinds)*n)
	for i := 0; i < n; i++ {
		kinds = append(kinds, s.kinds...)
	}
	return build(kinds)
}

// Size returns the total byte size.
func (s *Shape) Size() int {
	return s.size
}

// NumValues returns the number of value slots (pad bytes excluded).
func (s *Shape) NumValues() int {
	return len(s.slots)
}

// Slot returns the i-th value slot.
func (s *Shape) Slot(i int) Slot {
	return s.slots[i]
}

// Slots returns all value slots in order.
func (s *Shape) Slots() []Slot {
	return s.slots
}

// String returns the format string of the shape.
func (s *Shape) String() string {
	var b strings.Builder
	for _, k := range s.kinds {
		b.WriteString(k.String())
	}
	return b.String()
}

func build(kinds []Kind) *Shape {
	s := &Shape{kinds: kinds}
	offset := 0
	for _, k := range kinds {
		if k == Pad {
			offset++
			continue
		}
		offset = alignTo(offset, k.Align())
		s.slots = append(s.slots, Slot{Kind: k, Offset: offset})
		offset += k.Size()
	}
	s.size = offset
	return s
}

func alignTo(offset, align int) int {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
