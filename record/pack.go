package record

import (
	"math"

	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/internal/binary"
	"github.com/wippyai/cgfx/shape"
)

// pack writes patched values into s's byte layout. Pad bytes and alignment
// gaps are written as zeros.
func pack(w *binary.Writer, record string, s *shape.Shape, values []Value) error {
	if len(values) != s.NumValues() {
		return errors.ShapeMismatch(record, s.NumValues(), len(values))
	}
	start := w.Len()
	for i, slot := range s.Slots() {
		w.Pad(start + slot.Offset - w.Len())
		if err := packSlot(w, record, i, slot.Kind, values[i]); err != nil {
			return err
		}
	}
	w.Pad(start + s.Size() - w.Len())
	return nil
}

func packSlot(w *binary.Writer, record string, i int, k shape.Kind, v Value) error {
	switch k {
	case shape.Signature:
		if v.kind != KindSignature {
			return errors.TypeMismatch(errors.PhaseWrite, record, i, v.String(), k.String())
		}
		if len(v.s) != 4 {
			return errors.New(errors.PhaseWrite, errors.KindInvalidData).
				Record(record).
				Value(v.s).
				Detail("signature %q is not 4 bytes", v.s).
				Build()
		}
		w.WriteBytes([]byte(v.s))

	case shape.Float32:
		switch v.kind {
		case KindFloat:
			w.WriteF32LE(float32(v.f))
		case KindInt, KindBool:
			w.WriteF32LE(float32(v.i))
		default:
			return errors.TypeMismatch(errors.PhaseWrite, record, i, v.String(), k.String())
		}

	case shape.Bool:
		if v.kind != KindBool && v.kind != KindInt {
			return errors.TypeMismatch(errors.PhaseWrite, record, i, v.String(), k.String())
		}
		if v.i != 0 {
			w.Byte(1)
		} else {
			w.Byte(0)
		}

	default:
		if v.kind != KindInt && v.kind != KindBool {
			return errors.TypeMismatch(errors.PhaseWrite, record, i, v.String(), k.String())
		}
		lo, hi := intRange(k)
		if v.i < lo || v.i > hi {
			return errors.Overflow(errors.PhaseWrite, record, i, v.i, k.String())
		}
		switch k.Size() {
		case 1:
			w.Byte(byte(v.i))
		case 2:
			w.WriteU16LE(uint16(v.i))
		default:
			w.WriteU32LE(uint32(v.i))
		}
	}
	return nil
}

func intRange(k shape.Kind) (int64, int64) {
	switch k {
	case shape.Int8:
		return math.MinInt8, math.MaxInt8
	case shape.Uint8:
		return 0, math.MaxUint8
	case shape.Int16:
		return math.MinInt16, math.MaxInt16
	case shape.Uint16:
		return 0, math.MaxUint16
	case shape.Uint32:
		return 0, math.MaxUint32
	default:
		return math.MinInt32, math.MaxInt32
	}
}
