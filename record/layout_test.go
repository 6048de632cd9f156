package record

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/wippyai/cgfx/errors"
	cbinary "github.com/wippyai/cgfx/internal/binary"
	"github.com/wippyai/cgfx/pool"
	"github.com/wippyai/cgfx/shape"
)

type testRecord struct {
	format string
	values []Value
}

func (r *testRecord) Shape() *shape.Shape { return shape.MustParse(r.format) }
func (r *testRecord) Values() []Value     { return r.values }

type vec3 struct{ x, y, z float32 }

func (v vec3) Shape() *shape.Shape { return shape.MustParse("fff") }
func (v vec3) Values() []Value     { return []Value{Float(v.x), Float(v.y), Float(v.z)} }

func newLayout(opts ...Option) *Layout {
	return NewLayout(pool.New(pool.Text), pool.New(pool.Binary), opts...)
}

func encode(t *testing.T, l *Layout, root Record) []byte {
	t.Helper()
	end, err := l.Place(root, 0)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	end = l.strings.Finalize(end)
	l.blobs.Finalize(end)
	w := cbinary.NewWriter()
	if err := l.Write(w, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return w.Bytes()
}

func i32(b []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(b[off:]))
}

func f32(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func sampleGraph() (*testRecord, *testRecord) {
	child := &testRecord{format: "fffi", values: []Value{Inlined(vec3{1, 2, 3}), Int(7)}}
	root := &testRecord{format: "4sii", values: []Value{Signature("ROOT"), Owned(child), String("name")}}
	return root, child
}

func TestPlaceOffsets(t *testing.T) {
	root, child := sampleGraph()
	l := newLayout()
	end, err := l.Place(root, 0)
	if err != nil {
		t.Fatal(err)
	}
	if end != 28 {
		t.Errorf("end: got %d, want 28", end)
	}
	if off, _ := l.Offset(child); off != 12 {
		t.Errorf("child offset: got %d, want 12", off)
	}
	if l.strings.Len() != 1 {
		t.Errorf("strings: got %d, want 1", l.strings.Len())
	}
	if len(l.Placed()) != 2 || l.Placed()[0] != root {
		t.Errorf("Placed: got %v", l.Placed())
	}
}

func TestPointerBases(t *testing.T) {
	tests := []struct {
		name      string
		base      PointerBase
		childPtr  int32
		stringPtr int32
	}{
		{"field relative", FieldRelative, 12 - 4, 28 - 8},
		{"record relative", RecordRelative, 12, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, child := sampleGraph()
			l := newLayout(WithPointerBase(tt.base))
			data := encode(t, l, root)

			if len(data) != 28 {
				t.Fatalf("len: got %d, want 28", len(data))
			}
			if !bytes.Equal(data[:4], []byte("ROOT")) {
				t.Errorf("signature: got %q", data[:4])
			}
			if got := i32(data, 4); got != tt.childPtr {
				t.Errorf("child pointer: got %d, want %d", got, tt.childPtr)
			}
			if got := i32(data, 8); got != tt.stringPtr {
				t.Errorf("string pointer: got %d, want %d", got, tt.stringPtr)
			}

			childOff, _ := l.Offset(child)
			for i, want := range []float32{1, 2, 3} {
				if got := f32(data, childOff+4*i); got != want {
					t.Errorf("vec[%d]: got %v, want %v", i, got, want)
				}
			}
			if got := i32(data, childOff+12); got != 7 {
				t.Errorf("child int: got %d, want 7", got)
			}
		})
	}
}

func TestBlobBases(t *testing.T) {
	tests := []struct {
		name string
		base BlobBase
		from int
	}{
		{"pointer slot", BlobFromPointer, 8},
		{"length slot", BlobFromLength, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &testRecord{format: "iii", values: []Value{Int(1), Blob([]byte{9, 8, 7})}}
			l := newLayout(WithBlobBase(tt.base))
			data := encode(t, l, r)
			if got := i32(data, 4); got != 3 {
				t.Errorf("length: got %d, want 3", got)
			}
			want := int32(l.blobs.Base() - tt.from)
			if got := i32(data, 8); got != want {
				t.Errorf("pointer: got %d, want %d", got, want)
			}
		})
	}
}

func TestNullAndEmpty(t *testing.T) {
	r := &testRecord{
		format: "iiiiii",
		values: []Value{String(""), Null(), Owned(nil), Blob(nil), Ref(0)},
	}
	l := newLayout()
	data := encode(t, l, r)
	if !bytes.Equal(data, make([]byte, 24)) {
		t.Errorf("got %x, want zeros", data)
	}
	if !l.strings.Empty() || !l.blobs.Empty() {
		t.Error("empty values should not be pooled")
	}
}

func TestPaddingAndNarrowSlots(t *testing.T) {
	r := &testRecord{
		format: "B?xxhHbi",
		values: []Value{Int(0xAB), Bool(true), Int(-2), Int(0xBEEF), Int(-1), Int(5)},
	}
	data := encode(t, newLayout(), r)
	want := []byte{
		0xAB, 0x01, 0x00, 0x00,
		0xFE, 0xFF, 0xEF, 0xBE,
		0xFF, 0x00, 0x00, 0x00,
		0x05, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(data, want) {
		t.Errorf("got % x, want % x", data, want)
	}
}

func TestWeakReference(t *testing.T) {
	arena := NewArena()
	model := &testRecord{format: "i"}
	id := arena.Add(model)
	mesh := &testRecord{format: "ii", values: []Value{Int(1), Ref(id)}}
	model.values = []Value{Owned(mesh)}

	l := newLayout(WithArena(arena), WithPointerBase(RecordRelative))
	data := encode(t, l, model)

	meshOff, _ := l.Offset(mesh)
	if got := i32(data, meshOff+4); got != int32(-meshOff) {
		t.Errorf("owner pointer: got %d, want %d", got, -meshOff)
	}
	if again := arena.Add(model); again != id {
		t.Errorf("Add twice: got %d, want %d", again, id)
	}
}

func TestUnresolvedReference(t *testing.T) {
	arena := NewArena()
	orphan := &testRecord{format: "i", values: []Value{Int(0)}}
	r := &testRecord{format: "i", values: []Value{Ref(arena.Add(orphan))}}

	l := newLayout(WithArena(arena))
	if _, err := l.Place(r, 0); err != nil {
		t.Fatal(err)
	}
	l.strings.Finalize(4)
	l.blobs.Finalize(4)
	if _, err := l.Patch(r); !errors.IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestShapeMismatch(t *testing.T) {
	tests := []struct {
		name string
		r    *testRecord
	}{
		{"too few values", &testRecord{format: "iii", values: []Value{Int(1), Int(2)}}},
		{"too many values", &testRecord{format: "i", values: []Value{Int(1), Int(2)}}},
		{"blob takes two slots", &testRecord{format: "i", values: []Value{Blob([]byte{1})}}},
		{"fragment out of sync", &testRecord{format: "ffff", values: []Value{Inlined(badFragment{})}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLayout()
			end, err := l.Place(tt.r, 0)
			if err != nil {
				if !errors.IsShapeMismatch(err) {
					t.Fatalf("Place: got %v, want shape mismatch", err)
				}
				return
			}
			l.strings.Finalize(end)
			l.blobs.Finalize(end)
			if err := l.Write(cbinary.NewWriter(), tt.r); !errors.IsShapeMismatch(err) {
				t.Errorf("Write: got %v, want shape mismatch", err)
			}
		})
	}
}

type badFragment struct{}

func (badFragment) Shape() *shape.Shape { return shape.MustParse("ffff") }
func (badFragment) Values() []Value     { return []Value{Float(1.0)} }

func TestPlaceTwice(t *testing.T) {
	shared := &testRecord{format: "i", values: []Value{Int(1)}}
	root := &testRecord{format: "ii", values: []Value{Owned(shared), Owned(shared)}}
	_, err := newLayout().Place(root, 0)
	if !errors.IsKind(err, errors.KindLayout) {
		t.Errorf("got %v, want layout error", err)
	}
}

func TestWritePositionCheck(t *testing.T) {
	r := &testRecord{format: "i", values: []Value{Int(1)}}
	l := newLayout()
	if _, err := l.Place(r, 8); err != nil {
		t.Fatal(err)
	}
	l.strings.Finalize(12)
	l.blobs.Finalize(12)
	if err := l.Write(cbinary.NewWriter(), r); !errors.IsKind(err, errors.KindLayout) {
		t.Errorf("got %v, want layout error", err)
	}
}

func TestPackErrors(t *testing.T) {
	tests := []struct {
		name   string
		format string
		value  Value
		kind   errors.Kind
	}{
		{"uint8 overflow", "B", Int(256), errors.KindOverflow},
		{"int16 underflow", "h", Int(-40000), errors.KindOverflow},
		{"uint32 negative", "I", Int(-1), errors.KindOverflow},
		{"float into int", "i", Float(1.5), errors.KindTypeMismatch},
		{"int into signature", "4s", Int(1), errors.KindTypeMismatch},
		{"short signature", "4s", Signature("AB"), errors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &testRecord{format: tt.format, values: []Value{tt.value}}
			l := newLayout()
			if _, err := l.Place(r, 0); err != nil {
				t.Fatal(err)
			}
			l.strings.Finalize(4)
			l.blobs.Finalize(4)
			if err := l.Write(cbinary.NewWriter(), r); !errors.IsKind(err, tt.kind) {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestDeterministic(t *testing.T) {
	build := func() []byte {
		root, _ := sampleGraph()
		return encode(t, newLayout(), root)
	}
	if a, b := build(), build(); !bytes.Equal(a, b) {
		t.Error("two runs produced different bytes")
	}
}
