package schema

import (
	"github.com/wippyai/cgfx/dict"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// PrimitiveType identifies the value type a bone animates.
type PrimitiveType int32

const (
	PrimitiveFloat PrimitiveType = iota
	PrimitiveInt
	PrimitiveBoolean
	PrimitiveVector2
	PrimitiveVector3
	PrimitiveTransform
	PrimitiveRgbaColor
	PrimitiveTexture
	PrimitiveBakedTransform
	PrimitiveTransformMatrix
)

// RepeatMethod controls curve evaluation outside its frame range.
type RepeatMethod int8

const (
	RepeatClamp RepeatMethod = iota
	RepeatRepeat
	RepeatMirrored
)

// Interpolation selects how keys are blended.
type Interpolation int32

const (
	InterpolationNearest Interpolation = iota
	InterpolationLinear
	InterpolationCubicSpline
)

// Quantization selects the key encoding of a segment.
type Quantization int32

const (
	QuantHermite128 Quantization = iota
	QuantHermite64
	QuantHermite48
	QuantUnifiedHermite96
	QuantUnifiedHermite48
	QuantUnifiedHermite32
	QuantStepLinear64
	QuantStepLinear32
)

// quantized reports whether keys are stored scaled, which adds a scale,
// offset and frame scale to the segment header.
func (q Quantization) quantized() bool {
	switch q {
	case QuantHermite128, QuantUnifiedHermite96, QuantStepLinear64:
		return false
	}
	return true
}

var (
	animationShape = shape.MustParse("4siiiifiiii")
	boneShape      = shape.MustParse("iiiii")
	curveShape     = shape.MustParse("ffbbxxii")
	segmentHeader  = shape.MustParse("ffi")
	segmentSingle  = shape.MustParse("f")
	segmentKeyed   = shape.MustParse("if")
	segmentQuant   = shape.MustParse("fff")
	slotFloat      = shape.MustParse("f")
	slotPointer    = shape.MustParse("i")
	slotPad        = shape.MustParse("xxxx")
	hermite128     = shape.MustParse("ffff")
	unified96      = shape.MustParse("fff")
	stepLinear64   = shape.MustParse("ff")
)

// Animation is a CANM record: a set of bone animations applied to an
// animation group.
type Animation struct {
	Members     *dict.Info[record.Record]
	UserData    *dict.Info[record.Record]
	Name        string
	TargetGroup string
	FrameSize   float32
	Looping     bool
}

// NewAnimation creates an empty looping animation.
func NewAnimation(name, targetGroup string) *Animation {
	return &Animation{
		Name:        name,
		TargetGroup: targetGroup,
		Looping:     true,
		FrameSize:   600,
		Members:     dict.NewInfo[record.Record](),
		UserData:    dict.NewInfo[record.Record](),
	}
}

func (a *Animation) Shape() *shape.Shape { return animationShape }

func (a *Animation) Values() []record.Value {
	return []record.Value{
		record.Signature("CANM"),
		record.Int(0x05000000),
		record.String(a.Name),
		record.String(a.TargetGroup),
		record.Bool(a.Looping),
		record.Float(a.FrameSize),
		record.Inlined(a.Members),
		record.Inlined(a.UserData),
	}
}

// ChannelKind discriminates Channel.
type ChannelKind uint8

const (
	ChannelIgnored ChannelKind = iota
	ChannelConstant
	ChannelCurve
)

// Channel is one animated component: ignored, a constant, or a curve.
type Channel struct {
	Curve *FloatCurve
	Value float32
	Kind  ChannelKind
}

// Ignored returns a channel the runtime leaves untouched.
func Ignored() Channel { return Channel{} }

// Constant returns a channel held at v.
func Constant(v float32) Channel { return Channel{Kind: ChannelConstant, Value: v} }

// Curve returns a channel driven by c. A nil curve is ignored.
func Curve(c *FloatCurve) Channel {
	if c == nil {
		return Ignored()
	}
	return Channel{Kind: ChannelCurve, Curve: c}
}

func (c Channel) shape() *shape.Shape {
	if c.Kind == ChannelConstant {
		return slotFloat
	}
	return slotPointer
}

func (c Channel) value() record.Value {
	switch c.Kind {
	case ChannelConstant:
		return record.Float(c.Value)
	case ChannelCurve:
		return record.Owned(c.Curve)
	}
	return record.Null()
}

// channelFlags returns the flag bits for channels given per-channel constant
// and ignore bits.
func channelFlags(channels []Channel, constant, ignore []uint32) uint32 {
	var flags uint32
	for i, c := range channels {
		switch c.Kind {
		case ChannelConstant:
			flags |= constant[i]
		case ChannelIgnored:
			flags |= ignore[i]
		}
	}
	return flags
}

// Bone is the header shared by bone animations.
type Bone struct {
	Path     string
	Unknown1 string
	Unknown2 string
}

func (b *Bone) values(flags uint32, typ PrimitiveType) []record.Value {
	return []record.Value{
		record.Int(flags),
		record.String(b.Path),
		record.String(b.Unknown1),
		record.String(b.Unknown2),
		record.Int(typ),
	}
}

var (
	vector2Const  = []uint32{0x1, 0x2}
	vector2Ignore = []uint32{0x4, 0x8}
)

// BoneVector2 animates a two component value.
type BoneVector2 struct {
	Bone
	X, Y Channel
}

func (b *BoneVector2) channels() []Channel { return []Channel{b.X, b.Y} }

// Flags returns the constant and ignore bits of the channels.
func (b *BoneVector2) Flags() uint32 {
	return channelFlags(b.channels(), vector2Const, vector2Ignore)
}

func (b *BoneVector2) Shape() *shape.Shape {
	return shape.Join(boneShape, b.X.shape(), b.Y.shape())
}

func (b *BoneVector2) Values() []record.Value {
	return append(b.Bone.values(b.Flags(), PrimitiveVector2), b.X.value(), b.Y.value())
}

var (
	transformConst = []uint32{
		0x40, 0x80, 0x100,
		0x200, 0x400, 0x800,
		0x2000, 0x4000, 0x8000,
	}
	transformIgnore = []uint32{
		0x10000, 0x20000, 0x40000,
		0x80000, 0x100000, 0x200000,
		0x800000, 0x1000000, 0x2000000,
	}
)

// BoneTransform animates scale, rotation and translation per axis.
type BoneTransform struct {
	Bone
	Scale       [3]Channel
	Rotation    [3]Channel
	Translation [3]Channel
}

func (b *BoneTransform) channels() []Channel {
	out := make([]Channel, 0, 9)
	out = append(out, b.Scale[:]...)
	out = append(out, b.Rotation[:]...)
	return append(out, b.Translation[:]...)
}

// Flags returns the constant and ignore bits of the channels.
func (b *BoneTransform) Flags() uint32 {
	return channelFlags(b.channels(), transformConst, transformIgnore)
}

func (b *BoneTransform) Shape() *shape.Shape {
	parts := []*shape.Shape{boneShape}
	for i, c := range b.channels() {
		parts = append(parts, c.shape())
		// rotation is followed by an unused fourth component
		if i == 5 {
			parts = append(parts, slotPad)
		}
	}
	return shape.Join(parts...)
}

func (b *BoneTransform) Values() []record.Value {
	values := b.Bone.values(b.Flags(), PrimitiveTransform)
	for _, c := range b.channels() {
		values = append(values, c.value())
	}
	return values
}

var (
	rgbaConst  = []uint32{0x1, 0x4, 0x2, 0x8}
	rgbaIgnore = []uint32{0x10, 0x20, 0x40, 0x80}
)

// BoneRgbaColor animates a color.
type BoneRgbaColor struct {
	Bone
	R, G, B, A Channel
}

func (b *BoneRgbaColor) channels() []Channel { return []Channel{b.R, b.G, b.B, b.A} }

// Flags returns the constant and ignore bits of the channels.
func (b *BoneRgbaColor) Flags() uint32 {
	return channelFlags(b.channels(), rgbaConst, rgbaIgnore)
}

func (b *BoneRgbaColor) Shape() *shape.Shape {
	parts := []*shape.Shape{boneShape}
	for _, c := range b.channels() {
		parts = append(parts, c.shape())
	}
	return shape.Join(parts...)
}

func (b *BoneRgbaColor) Values() []record.Value {
	values := b.Bone.values(b.Flags(), PrimitiveRgbaColor)
	for _, c := range b.channels() {
		values = append(values, c.value())
	}
	return values
}

// FloatCurve is a float animation curve made of segments.
type FloatCurve struct {
	Segments   []*FloatSegment
	Start      float32
	End        float32
	Flags      int32
	PreRepeat  RepeatMethod
	PostRepeat RepeatMethod
}

// NewFloatCurve creates a curve over [start, end] with the given segments.
func NewFloatCurve(start, end float32, segments ...*FloatSegment) *FloatCurve {
	return &FloatCurve{Start: start, End: end, Segments: segments}
}

func (c *FloatCurve) Shape() *shape.Shape {
	return shape.Join(curveShape, slotPointer.Repeat(len(c.Segments)))
}

func (c *FloatCurve) Values() []record.Value {
	values := []record.Value{
		record.Float(c.Start),
		record.Float(c.End),
		record.Int(c.PreRepeat),
		record.Int(c.PostRepeat),
		record.Int(c.Flags),
		record.Int(len(c.Segments)),
	}
	for _, s := range c.Segments {
		values = append(values, record.Owned(s))
	}
	return values
}

// Key is an interpolation key fragment.
type Key interface {
	record.Fragment
}

// Hermite128Key stores a key with separate in and out slopes.
type Hermite128Key struct {
	Frame, Value, InSlope, OutSlope float32
}

func (k Hermite128Key) Shape() *shape.Shape { return hermite128 }

func (k Hermite128Key) Values() []record.Value {
	return []record.Value{record.Float(k.Frame), record.Float(k.Value), record.Float(k.InSlope), record.Float(k.OutSlope)}
}

// UnifiedHermite96Key stores a key with one shared slope.
type UnifiedHermite96Key struct {
	Frame, Value, Slope float32
}

func (k UnifiedHermite96Key) Shape() *shape.Shape { return unified96 }

func (k UnifiedHermite96Key) Values() []record.Value {
	return []record.Value{record.Float(k.Frame), record.Float(k.Value), record.Float(k.Slope)}
}

// StepLinear64Key stores a key without slopes.
type StepLinear64Key struct {
	Frame, Value float32
}

func (k StepLinear64Key) Shape() *shape.Shape { return stepLinear64 }

func (k StepLinear64Key) Values() []record.Value {
	return []record.Value{record.Float(k.Frame), record.Float(k.Value)}
}

// FloatSegment is one span of a float curve: either a single held value or
// a list of keys.
type FloatSegment struct {
	Keys          []Key
	Start         float32
	End           float32
	Value         float32
	Scale         float32
	Offset        float32
	FrameScale    float32
	Interpolation Interpolation
	Quantization  Quantization
	Single        bool
}

// SingleSegment holds v over [start, end].
func SingleSegment(start, end, v float32) *FloatSegment {
	return &FloatSegment{
		Start:         start,
		End:           end,
		Value:         v,
		Single:        true,
		Interpolation: InterpolationLinear,
		Scale:         1,
		FrameScale:    1,
	}
}

// KeyedSegment interpolates keys over [start, end].
func KeyedSegment(start, end float32, interp Interpolation, quant Quantization, keys ...Key) *FloatSegment {
	return &FloatSegment{
		Start:         start,
		End:           end,
		Keys:          keys,
		Interpolation: interp,
		Quantization:  quant,
		Scale:         1,
		FrameScale:    1,
	}
}

// SegmentFlags returns the packed single/interpolation/quantization bits.
func (s *FloatSegment) SegmentFlags() int32 {
	var flags int32
	if s.Single {
		flags = 1
	}
	return flags | int32(s.Interpolation)<<2 | int32(s.Quantization)<<5
}

// Speed is the reciprocal of the segment length. The runtime uses it to
// find keys; a zero length segment has speed 0.
func (s *FloatSegment) Speed() float32 {
	if s.End == s.Start {
		return 0
	}
	return 1 / (s.End - s.Start)
}

func (s *FloatSegment) Shape() *shape.Shape {
	if s.Single {
		return shape.Join(segmentHeader, segmentSingle)
	}
	parts := []*shape.Shape{segmentHeader, segmentKeyed}
	if s.Quantization.quantized() {
		parts = append(parts, segmentQuant)
	}
	for _, k := range s.Keys {
		parts = append(parts, k.Shape())
	}
	return shape.Join(parts...)
}

func (s *FloatSegment) Values() []record.Value {
	values := []record.Value{
		record.Float(s.Start),
		record.Float(s.End),
		record.Int(s.SegmentFlags()),
	}
	if s.Single {
		return append(values, record.Float(s.Value))
	}
	values = append(values, record.Int(len(s.Keys)), record.Float(s.Speed()))
	if s.Quantization.quantized() {
		values = append(values, record.Float(s.Scale), record.Float(s.Offset), record.Float(s.FrameScale))
	}
	for _, k := range s.Keys {
		values = append(values, record.Inlined(k))
	}
	return values
}
