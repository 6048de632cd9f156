package dict

import (
	"iter"

	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

var infoShape = shape.MustParse("ii")

// Info is the inline reference an owner holds to a dictionary.
type Info[T record.Record] struct {
	Dict *Dict[T]
}

// NewInfo creates an Info over a new empty dictionary.
func NewInfo[T record.Record](opts ...Option) *Info[T] {
	return &Info[T]{Dict: New[T](opts...)}
}

// Shape implements record.Fragment.
func (i *Info[T]) Shape() *shape.Shape {
	return infoShape
}

// Values implements record.Fragment. An empty dictionary is not written.
func (i *Info[T]) Values() []record.Value {
	if i.Dict.Len() == 0 {
		return []record.Value{record.Int(0), record.Null()}
	}
	return []record.Value{record.Int(i.Dict.Len()), record.Owned(i.Dict)}
}

// Add adds an entry to the underlying dictionary.
func (i *Info[T]) Add(name string, content T) error {
	return i.Dict.Add(name, content)
}

// Get returns the content stored under name.
func (i *Info[T]) Get(name string) (T, bool) {
	return i.Dict.Get(name)
}

// Len returns the number of entries.
func (i *Info[T]) Len() int {
	return i.Dict.Len()
}

// All iterates entries in insertion order.
func (i *Info[T]) All() iter.Seq2[string, T] {
	return i.Dict.All()
}
