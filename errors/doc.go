// Package errors provides structured error types for the cgfx module.
//
// Errors are categorized by Phase (which pipeline stage failed) and Kind (error
// category). The Error type carries the field path, the record type involved,
// the offending value and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseWrite, errors.KindOverflow).
//		Path("mesh", "slot[9]").
//		Record("*schema.Mesh").
//		Detail("value %d overflows uint8", 300).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ShapeMismatch("*dict.Dict", 8, 7)
//	err := errors.NotFound(errors.PhaseDict, "entry", "bone_c")
//
// Shape/value desynchronization and malformed shapes indicate a bug in the code
// producing records and abort the run. Oversize is reported alongside the encoded
// bytes so callers can decide what to do with them.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
