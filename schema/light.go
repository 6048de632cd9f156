package schema

import (
	"math"

	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Light type code.
const LightType = 0x400000a2

var lightTail = shape.Join(
	shape.MustParse("ii"),
	shape.MustParse("f").Repeat(16),
	shape.MustParse("B").Repeat(16),
	shape.MustParse("fffiixxxxxxxxiixxxx"),
)

// Light is a CFLT fragment light. The lookup tables are weak references to
// tables stored in the lookup table section.
type Light struct {
	Object
	Transform
	Specular         [2]ColorFloat
	Ambient          ColorFloat
	Diffuse          ColorFloat
	Direction        Vector3
	AttenuationLUT   record.ID
	SpotlightLUT     record.ID
	LightType        int32
	AttenuationScale float32
	AttenuationBias  float32
	Enabled          bool
}

// NewLight creates an enabled white light pointing down -Z.
func NewLight(name string) *Light {
	return &Light{
		Object:           newObject(LightType, "CFLT", 0x06000000, name),
		Transform:        newTransform(),
		Enabled:          true,
		Ambient:          White,
		Diffuse:          White,
		Specular:         [2]ColorFloat{White, White},
		Direction:        Vector3{0, 0, -1},
		AttenuationScale: 1,
		AttenuationBias:  float32(math.Copysign(0, -1)),
	}
}

func (l *Light) Shape() *shape.Shape {
	return shape.Join(objectShape, transformShape, lightTail)
}

func (l *Light) Values() []record.Value {
	return concat(l.Object.values(), l.Transform.values(), []record.Value{
		record.Bool(l.Enabled),
		record.Int(l.LightType),
		record.Inlined(l.Ambient),
		record.Inlined(l.Diffuse),
		record.Inlined(l.Specular[0]),
		record.Inlined(l.Specular[1]),
		record.Inlined(l.Ambient.Byte()),
		record.Inlined(l.Diffuse.Byte()),
		record.Inlined(l.Specular[0].Byte()),
		record.Inlined(l.Specular[1].Byte()),
		record.Inlined(l.Direction),
		record.Ref(l.AttenuationLUT),
		record.Ref(l.SpotlightLUT),
		record.Int(Float20(l.AttenuationScale)),
		record.Int(Float20(l.AttenuationBias)),
	})
}

// Float20 converts f to the GPU's 20-bit float: 1 sign bit, 7 exponent bits
// biased by 63 and 12 mantissa bits. The exponent is clamped to [-63, 64].
func Float20(f float32) uint32 {
	bits := math.Float32bits(f)
	mantissa := bits & 0x7fffff
	exponent := min(max(int32((bits>>23)&0xff)-0x7f, -0x3f), 0x40)
	sign := bits >> 31
	return sign<<19 | uint32((exponent+0x3f)&0x7f)<<12 | mantissa>>13
}
