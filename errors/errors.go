package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in the serialization pipeline the error occurred
type Phase string

const (
	PhaseShape    Phase = "shape"    // byte-shape construction
	PhaseTrie     Phase = "trie"     // PATRICIA trie construction and lookup
	PhaseDict     Phase = "dict"     // dictionary maintenance
	PhasePool     Phase = "pool"     // string/blob pooling
	PhaseLayout   Phase = "layout"   // offset assignment
	PhasePatch    Phase = "patch"    // pointer patching
	PhaseWrite    Phase = "write"    // packing values into bytes
	PhaseValidate Phase = "validate" // whole-file validation
	PhaseParse    Phase = "parse"    // reading a file back
)

// Kind categorizes the error
type Kind string

const (
	KindShapeMismatch  Kind = "shape_mismatch"
	KindMalformedShape Kind = "malformed_shape"
	KindNotFound       Kind = "not_found"
	KindOversize       Kind = "oversize"
	KindDuplicateName  Kind = "duplicate_name"
	KindInvalidName    Kind = "invalid_name"
	KindTypeMismatch   Kind = "type_mismatch"
	KindOverflow       Kind = "overflow"
	KindNotInitialized Kind = "not_initialized"
	KindInvalidData    Kind = "invalid_data"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindLayout         Kind = "layout"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Record string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Record != "" {
		b.WriteString(": record ")
		b.WriteString(e.Record)
	}

	if e.Detail != "" {
		if e.Record != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Record sets the Go type name of the record involved
func (b *Builder) Record(name string) *Builder {
	b.err.Record = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ShapeMismatch reports a byte shape whose value slot count differs from the
// number of flattened values a record produced.
func ShapeMismatch(record string, slots, values int) *Error {
	return &Error{
		Phase:  PhasePatch,
		Kind:   KindShapeMismatch,
		Record: record,
		Detail: fmt.Sprintf("shape declares %d value slots, record produced %d values", slots, values),
		Value:  values,
	}
}

// MalformedShape reports an unusable format string.
func MalformedShape(format string, pos int, detail string) *Error {
	return &Error{
		Phase:  PhaseShape,
		Kind:   KindMalformedShape,
		Detail: fmt.Sprintf("format %q at %d: %s", format, pos, detail),
		Value:  format,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
		Value:  name,
	}
}

// Oversize reports an encoded file larger than the platform allows.
func Oversize(size, limit int) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindOversize,
		Detail: fmt.Sprintf("file is %d bytes, maximum is %d bytes", size, limit),
		Value:  size,
	}
}

// DuplicateName creates a duplicate name error
func DuplicateName(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDuplicateName,
		Detail: fmt.Sprintf("name %q already present", name),
		Value:  name,
	}
}

// InvalidName creates an invalid name error
func InvalidName(phase Phase, name, reason string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidName,
		Detail: fmt.Sprintf("name %q: %s", name, reason),
		Value:  name,
	}
}

// TypeMismatch reports a value that cannot be packed into its slot.
func TypeMismatch(phase Phase, record string, slot int, value any, slotKind string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Record: record,
		Path:   []string{fmt.Sprintf("slot[%d]", slot)},
		Detail: fmt.Sprintf("cannot pack %v into %s slot", value, slotKind),
		Value:  value,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, record string, slot int, value any, slotKind string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Record: record,
		Path:   []string{fmt.Sprintf("slot[%d]", slot)},
		Detail: fmt.Sprintf("value %v overflows %s", value, slotKind),
		Value:  value,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, offset, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("offset %d out of bounds (length %d)", offset, length),
		Value:  offset,
	}
}

// Layout reports a record placement inconsistency.
func Layout(record string, detail string) *Error {
	return &Error{
		Phase:  PhaseLayout,
		Kind:   KindLayout,
		Record: record,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// IsKind reports whether any error in err's chain is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if errors.As(err, &e) {
			if e.Kind == kind {
				return true
			}
			err = e.Cause
			continue
		}
		return false
	}
	return false
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsOversize reports whether err is an oversize validation error.
func IsOversize(err error) bool { return IsKind(err, KindOversize) }

// IsShapeMismatch reports whether err is a shape/value desynchronization.
func IsShapeMismatch(err error) bool { return IsKind(err, KindShapeMismatch) }
