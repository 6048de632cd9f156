package record

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/internal/binary"
	"github.com/wippyai/cgfx/pool"
	"github.com/wippyai/cgfx/shape"
)

// PointerBase selects the position record pointers are measured from.
type PointerBase int

const (
	// FieldRelative measures from the pointer slot itself.
	FieldRelative PointerBase = iota
	// RecordRelative measures from the start of the record holding the slot.
	RecordRelative
)

func (b PointerBase) String() string {
	if b == RecordRelative {
		return "record"
	}
	return "field"
}

// BlobBase selects the slot a blob pointer is measured from.
type BlobBase int

const (
	// BlobFromPointer measures from the blob's pointer slot.
	BlobFromPointer BlobBase = iota
	// BlobFromLength measures from the blob's length slot.
	BlobFromLength
)

// Option configures a Layout.
type Option func(*Layout)

// WithPointerBase sets how record, reference and string pointers are
// measured.
func WithPointerBase(b PointerBase) Option {
	return func(l *Layout) {
		l.pointerBase = b
	}
}

// WithBlobBase sets how blob pointers are measured.
func WithBlobBase(b BlobBase) Option {
	return func(l *Layout) {
		l.blobBase = b
	}
}

// WithArena sets the arena weak references resolve through.
func WithArena(a *Arena) Option {
	return func(l *Layout) {
		l.arena = a
	}
}

// Layout assigns offsets to a record graph and writes it out.
type Layout struct {
	strings     *pool.Pool
	blobs       *pool.Pool
	arena       *Arena
	offsets     map[Record]int
	order       []Record
	pointerBase PointerBase
	blobBase    BlobBase
}

// NewLayout creates a layout registering strings and blobs with the given
// pools.
func NewLayout(strings, blobs *pool.Pool, opts ...Option) *Layout {
	l := &Layout{
		strings: strings,
		blobs:   blobs,
		offsets: make(map[Record]int),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Place assigns r the absolute offset start, then places its owned records
// depth-first in field order directly after its fixed region. It returns the
// first offset after r and everything it owns.
func (l *Layout) Place(r Record, start int) (int, error) {
	if isNil(r) {
		return start, nil
	}
	if prev, ok := l.offsets[r]; ok {
		return 0, errors.Layout(typeName(r), fmt.Sprintf("already placed at %#x", prev))
	}
	s := r.Shape()
	if s == nil {
		return 0, errors.Layout(typeName(r), "record has no shape")
	}
	values, err := flatten(r.Values())
	if err != nil {
		return 0, err
	}

	l.offsets[r] = start
	l.order = append(l.order, r)

	offset := start + s.Size()
	for _, v := range values {
		switch v.kind {
		case KindOwned:
			offset, err = l.Place(v.rec, offset)
			if err != nil {
				return 0, err
			}
		case KindString:
			if v.s != "" {
				l.strings.AddString(v.s)
			}
		case KindBlob:
			if len(v.b) > 0 {
				l.blobs.Add(v.b)
			}
		}
	}

	Logger().Debug("placed record",
		zap.String("type", typeName(r)),
		zap.Int("offset", start),
		zap.Int("size", s.Size()),
		zap.Int("end", offset))
	return offset, nil
}

// Offset returns the absolute offset assigned to r.
func (l *Layout) Offset(r Record) (int, bool) {
	off, ok := l.offsets[r]
	return off, ok
}

// Placed returns every placed record in placement order.
func (l *Layout) Placed() []Record {
	return l.order
}

// Patch returns r's flattened values with every pointer replaced by its
// relative offset. The result holds only int, float, bool and signature
// values and lines up with r.Shape() slot for slot.
func (l *Layout) Patch(r Record) ([]Value, error) {
	base, ok := l.offsets[r]
	if !ok {
		return nil, errors.New(errors.PhasePatch, errors.KindNotFound).
			Record(typeName(r)).
			Detail("record was never placed").
			Build()
	}
	s := r.Shape()
	values, err := flatten(r.Values())
	if err != nil {
		return nil, err
	}
	if n := countSlots(values); n != s.NumValues() {
		return nil, errors.ShapeMismatch(typeName(r), s.NumValues(), n)
	}

	out := make([]Value, 0, s.NumValues())
	slot := 0
	for _, v := range values {
		field := base + s.Slot(slot).Offset
		from := field
		if l.pointerBase == RecordRelative {
			from = base
		}

		switch v.kind {
		case KindOwned:
			target, ok := l.offsets[v.rec]
			if !ok {
				return nil, l.unresolved(r, slot, typeName(v.rec))
			}
			out = append(out, Int(target-from))
		case KindRef:
			target, err := l.resolve(r, slot, v.RefID())
			if err != nil {
				return nil, err
			}
			out = append(out, Int(target-from))
		case KindString:
			if v.s == "" {
				out = append(out, Int(0))
				break
			}
			target, err := l.strings.OffsetString(v.s)
			if err != nil {
				return nil, wrapSlot(r, slot, err)
			}
			out = append(out, Int(target-from))
		case KindBlob:
			out = append(out, Int(len(v.b)))
			if len(v.b) == 0 {
				out = append(out, Int(0))
				break
			}
			target, err := l.blobs.Offset(v.b)
			if err != nil {
				return nil, wrapSlot(r, slot+1, err)
			}
			if l.blobBase == BlobFromPointer {
				field = base + s.Slot(slot+1).Offset
			}
			out = append(out, Int(target-field))
		case KindNull:
			out = append(out, Int(0))
		default:
			out = append(out, v)
		}
		slot += v.slots()
	}
	return out, nil
}

// Write packs r at the writer's current position, which must equal r's
// placed offset, and then writes its owned records in field order.
func (l *Layout) Write(w *binary.Writer, r Record) error {
	off, ok := l.offsets[r]
	if !ok {
		return errors.New(errors.PhaseWrite, errors.KindNotFound).
			Record(typeName(r)).
			Detail("record was never placed").
			Build()
	}
	if w.Len() != off {
		return errors.Layout(typeName(r), fmt.Sprintf("placed at %#x but written at %#x", off, w.Len()))
	}

	patched, err := l.Patch(r)
	if err != nil {
		return err
	}
	if err := pack(w, typeName(r), r.Shape(), patched); err != nil {
		return err
	}

	values, err := flatten(r.Values())
	if err != nil {
		return err
	}
	for _, v := range values {
		if v.kind == KindOwned {
			if err := l.Write(w, v.rec); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *Layout) resolve(r Record, slot int, id ID) (int, error) {
	if l.arena == nil {
		return 0, errors.New(errors.PhasePatch, errors.KindNotInitialized).
			Record(typeName(r)).
			Path(fmt.Sprintf("slot[%d]", slot)).
			Detail("reference %d used without an arena", id).
			Build()
	}
	target, ok := l.arena.Get(id)
	if !ok {
		return 0, l.unresolved(r, slot, fmt.Sprintf("arena id %d", id))
	}
	off, ok := l.offsets[target]
	if !ok {
		return 0, l.unresolved(r, slot, typeName(target))
	}
	return off, nil
}

func (l *Layout) unresolved(r Record, slot int, target string) error {
	return errors.New(errors.PhasePatch, errors.KindNotFound).
		Record(typeName(r)).
		Path(fmt.Sprintf("slot[%d]", slot)).
		Value(target).
		Detail("pointer target %s was never placed", target).
		Build()
}

func wrapSlot(r Record, slot int, err error) error {
	kind := errors.KindNotFound
	if errors.IsKind(err, errors.KindNotInitialized) {
		kind = errors.KindNotInitialized
	}
	return errors.New(errors.PhasePatch, kind).
		Record(typeName(r)).
		Path(fmt.Sprintf("slot[%d]", slot)).
		Cause(err).
		Build()
}

// flatten splices inlined fragments recursively. Each fragment's own value
// count is checked against its shape.
func flatten(values []Value) ([]Value, error) {
	out := make([]Value, 0, len(values))
	for _, v := range values {
		if v.kind != KindInlined {
			out = append(out, v)
			continue
		}
		inner, err := flatten(v.frag.Values())
		if err != nil {
			return nil, err
		}
		if s := v.frag.Shape(); s != nil {
			if n := countSlots(inner); n != s.NumValues() {
				return nil, errors.ShapeMismatch(typeName(v.frag), s.NumValues(), n)
			}
		}
		out = append(out, inner...)
	}
	return out, nil
}

func countSlots(values []Value) int {
	n := 0
	for _, v := range values {
		n += v.slots()
	}
	return n
}

// ShapeOf returns the concatenation of a base shape and the shapes of the
// given fragments, for records whose layout embeds fragments.
func ShapeOf(base *shape.Shape, frags ...Fragment) *shape.Shape {
	parts := make([]*shape.Shape, 0, len(frags)+1)
	parts = append(parts, base)
	for _, f := range frags {
		parts = append(parts, f.Shape())
	}
	return shape.Join(parts...)
}
