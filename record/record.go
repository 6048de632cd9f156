package record

import (
	"fmt"
	"reflect"

	"github.com/wippyai/cgfx/shape"
)

// Record is a graph node placed at its own absolute offset.
// Implementations must be pointer types; the layout keys on identity.
type Record interface {
	// Shape returns the byte layout for the record's current state. It must
	// be a pure function of the record's fields.
	Shape() *shape.Shape
	// Values returns the field values matching Shape slot for slot.
	Values() []Value
}

// Fragment is a value embedded directly in its owner's byte range.
type Fragment interface {
	Shape() *shape.Shape
	Values() []Value
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}
