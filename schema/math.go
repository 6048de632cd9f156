package schema

import (
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

var (
	vector3Shape     = shape.MustParse("fff")
	vector4Shape     = shape.MustParse("ffff")
	matrixShape      = shape.MustParse("ffffffffffff")
	orientationShape = shape.MustParse("fffffffff")
	colorFloatShape  = shape.MustParse("ffff")
	colorByteShape   = shape.MustParse("BBBB")
)

// Vector3 is an inline 3-float vector.
type Vector3 struct {
	X, Y, Z float32
}

func (v Vector3) Shape() *shape.Shape { return vector3Shape }

func (v Vector3) Values() []record.Value {
	return []record.Value{record.Float(v.X), record.Float(v.Y), record.Float(v.Z)}
}

// Vector4 is an inline 4-float vector.
type Vector4 struct {
	X, Y, Z, W float32
}

func (v Vector4) Shape() *shape.Shape { return vector4Shape }

func (v Vector4) Values() []record.Value {
	return []record.Value{record.Float(v.X), record.Float(v.Y), record.Float(v.Z), record.Float(v.W)}
}

// Matrix is a 3x4 row-major transform.
type Matrix [3]Vector4

// Identity is the identity transform.
var Identity = Matrix{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}}

func (m Matrix) Shape() *shape.Shape { return matrixShape }

func (m Matrix) Values() []record.Value {
	return []record.Value{record.Inlined(m[0]), record.Inlined(m[1]), record.Inlined(m[2])}
}

// OrientationMatrix is a 3x3 rotation.
type OrientationMatrix [3]Vector3

func (m OrientationMatrix) Shape() *shape.Shape { return orientationShape }

func (m OrientationMatrix) Values() []record.Value {
	return []record.Value{record.Inlined(m[0]), record.Inlined(m[1]), record.Inlined(m[2])}
}

// ColorFloat is an RGBA color with float channels in [0, 1].
type ColorFloat struct {
	R, G, B, A float32
}

// White is opaque white.
var White = ColorFloat{1, 1, 1, 1}

func (c ColorFloat) Shape() *shape.Shape { return colorFloatShape }

func (c ColorFloat) Values() []record.Value {
	return []record.Value{record.Float(c.R), record.Float(c.G), record.Float(c.B), record.Float(c.A)}
}

// Byte converts the color to 8-bit channels, truncating.
func (c ColorFloat) Byte() ColorByte {
	return ColorByte{toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)}
}

func toByte(v float32) uint8 {
	return uint8(min(max(v, 0), 1) * 255)
}

// ColorByte is an RGBA color with 8-bit channels.
type ColorByte struct {
	R, G, B, A uint8
}

func (c ColorByte) Shape() *shape.Shape { return colorByteShape }

func (c ColorByte) Values() []record.Value {
	return []record.Value{record.Int(c.R), record.Int(c.G), record.Int(c.B), record.Int(c.A)}
}
