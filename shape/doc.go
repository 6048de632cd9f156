// Package shape describes the byte layout of a record ("struct shape").
//
// A Shape is an ordered list of fixed-width primitive slots written with the
// same single-character codes the format has always been described with:
//
//	x  pad byte (no value)
//	?  bool, 1 byte
//	b  int8         B  uint8
//	h  int16        H  uint16
//	i  int32        I  uint32
//	f  float32
//	4s 4-byte signature tag (raw ASCII)
//
// Every primitive is placed at its natural alignment; pad bytes are never
// aligned. There is no trailing padding. Repeat counts are rejected except for
// the 4s signature, so a pointer slot is always exactly 4 bytes wide:
//
//	s := shape.MustParse("i4siiii")
//	s.Size()      // 24
//	s.NumValues() // 6
//
// Shapes are immutable. Join and Repeat return new shapes, which is how records
// with data-dependent layouts build their shape from current state.
package shape
