package schema

import (
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

var listShape = shape.MustParse("ii")

// ListData is the out-of-line element array of a List.
type ListData struct {
	Items []record.Value
	Kind  shape.Kind
}

func (d *ListData) Shape() *shape.Shape {
	return shape.MustParse(d.Kind.String()).Repeat(len(d.Items))
}

func (d *ListData) Values() []record.Value {
	return d.Items
}

// List is an inline (count, pointer) reference to a ListData. The pointer is
// null when the list is empty.
type List struct {
	Data *ListData
}

// NewList creates an empty list whose elements use the given slot kind.
// Record lists use shape.Int32.
func NewList(kind shape.Kind) List {
	return List{Data: &ListData{Kind: kind}}
}

// Records creates a pointer list over the given records.
func Records[T record.Record](items ...T) List {
	l := NewList(shape.Int32)
	for _, it := range items {
		l.Add(record.Owned(it))
	}
	return l
}

// Ints creates a list of int32 values.
func Ints(items ...int32) List {
	l := NewList(shape.Int32)
	for _, it := range items {
		l.Add(record.Int(it))
	}
	return l
}

// Floats creates a list of float32 values.
func Floats(items ...float32) List {
	l := NewList(shape.Float32)
	for _, it := range items {
		l.Add(record.Float(it))
	}
	return l
}

// Add appends an element. A zero List becomes a record list.
func (l *List) Add(v record.Value) {
	if l.Data == nil {
		l.Data = &ListData{Kind: shape.Int32}
	}
	l.Data.Items = append(l.Data.Items, v)
}

// Len returns the element count.
func (l List) Len() int {
	if l.Data == nil {
		return 0
	}
	return len(l.Data.Items)
}

func (l List) Shape() *shape.Shape { return listShape }

func (l List) Values() []record.Value {
	if l.Len() == 0 {
		return []record.Value{record.Int(0), record.Null()}
	}
	return []record.Value{record.Int(l.Len()), record.Owned(l.Data)}
}
