package schema

import (
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Vertex attribute type codes.
const (
	VertexStreamType            = 0x40000001
	InterleavedVertexStreamType = 0x40000002
	VertexParamAttributeType    = 0x80000000
)

// GL data types used by index and vertex streams.
const (
	DataByte          = 0x1400
	DataUnsignedByte  = 0x1401
	DataShort         = 0x1402
	DataUnsignedShort = 0x1403
	DataFloat         = 0x1406
)

var (
	primitiveSetShape = shape.MustParse("iiiii")
	primitiveShape    = shape.MustParse("iiiiii")
	indexStreamShape  = shape.MustParse("ib?xxiiiiiiiii")
	vertexStreamShape = shape.MustParse("iiiiiiiiiiifi")
	interleavedShape  = shape.MustParse("iiiiiiiiiiii")
	vertexParamShape  = shape.MustParse("Iiiiifii")
)

// PrimitiveSet groups primitives skinned by the same bones.
type PrimitiveSet struct {
	RelatedBones List
	Primitives   List
	SkinningMode int32
}

// NewPrimitiveSet creates an empty primitive set.
func NewPrimitiveSet() *PrimitiveSet {
	return &PrimitiveSet{RelatedBones: NewList(shape.Int32), Primitives: NewList(shape.Int32)}
}

func (p *PrimitiveSet) Shape() *shape.Shape { return primitiveSetShape }

func (p *PrimitiveSet) Values() []record.Value {
	return []record.Value{
		record.Inlined(p.RelatedBones),
		record.Int(p.SkinningMode),
		record.Inlined(p.Primitives),
	}
}

// Primitive holds the index streams drawn together.
type Primitive struct {
	IndexStreams     List
	BufferObjects    List
	Flags            int32
	CommandAllocator int32
}

// NewPrimitive creates an empty primitive.
func NewPrimitive() *Primitive {
	return &Primitive{IndexStreams: NewList(shape.Int32), BufferObjects: NewList(shape.Int32)}
}

func (p *Primitive) Shape() *shape.Shape { return primitiveShape }

func (p *Primitive) Values() []record.Value {
	return []record.Value{
		record.Inlined(p.IndexStreams),
		record.Inlined(p.BufferObjects),
		record.Int(p.Flags),
		record.Int(p.CommandAllocator),
	}
}

// IndexStream holds triangle indices. Faces goes to the blob pool.
type IndexStream struct {
	Faces             []byte
	DataType          int32
	BufferObject      int32
	LocationFlag      int32
	CommandCache      int32
	CommandCacheSize  int32
	LocationAddress   int32
	MemoryArea        int32
	BoundingBoxOffset int32
	PrimitiveMode     int8
	Invisible         bool
}

// NewIndexStream creates a stream of unsigned byte indices.
func NewIndexStream(faces []byte) *IndexStream {
	return &IndexStream{Faces: faces, DataType: DataUnsignedByte}
}

func (s *IndexStream) Shape() *shape.Shape { return indexStreamShape }

func (s *IndexStream) Values() []record.Value {
	return []record.Value{
		record.Int(s.DataType),
		record.Int(s.PrimitiveMode),
		record.Bool(s.Invisible),
		record.Blob(s.Faces),
		record.Int(s.BufferObject),
		record.Int(s.LocationFlag),
		record.Int(s.CommandCache),
		record.Int(s.CommandCacheSize),
		record.Int(s.LocationAddress),
		record.Int(s.MemoryArea),
		record.Int(s.BoundingBoxOffset),
	}
}

// VertexAttribute is the header shared by vertex attribute records.
type VertexAttribute struct {
	Type  uint32
	Usage int32
	Flags int32
}

func (a *VertexAttribute) values() []record.Value {
	return []record.Value{record.Int(a.Type), record.Int(a.Usage), record.Int(a.Flags)}
}

// VertexStream is a single non-interleaved attribute. Data goes to the blob
// pool.
type VertexStream struct {
	VertexAttribute
	Data            []byte
	BufferObject    int32
	LocationFlag    int32
	LocationAddress int32
	MemoryArea      int32
	FormatType      int32
	Components      int32
	Offset          int32
	Scale           float32
}

// NewVertexStream creates a stream for the given attribute usage.
func NewVertexStream(usage int32, format int32, components int32, data []byte) *VertexStream {
	return &VertexStream{
		VertexAttribute: VertexAttribute{Type: VertexStreamType, Usage: usage},
		Data:            data,
		FormatType:      format,
		Components:      components,
		Scale:           1,
	}
}

func (s *VertexStream) Shape() *shape.Shape { return vertexStreamShape }

func (s *VertexStream) Values() []record.Value {
	return concat(s.VertexAttribute.values(), []record.Value{
		record.Int(s.BufferObject),
		record.Int(s.LocationFlag),
		record.Blob(s.Data),
		record.Int(s.LocationAddress),
		record.Int(s.MemoryArea),
		record.Int(s.FormatType),
		record.Int(s.Components),
		record.Float(s.Scale),
		record.Int(s.Offset),
	})
}

// InterleavedVertexStream stores several attributes in one buffer.
type InterleavedVertexStream struct {
	VertexAttribute
	Data            []byte
	Streams         List
	BufferObject    int32
	LocationFlag    int32
	LocationAddress int32
	MemoryArea      int32
	EntrySize       int32
}

// NewInterleavedVertexStream creates an interleaved stream over data.
func NewInterleavedVertexStream(data []byte, entrySize int32) *InterleavedVertexStream {
	return &InterleavedVertexStream{
		VertexAttribute: VertexAttribute{Type: InterleavedVertexStreamType},
		Data:            data,
		EntrySize:       entrySize,
		Streams:         NewList(shape.Int32),
	}
}

func (s *InterleavedVertexStream) Shape() *shape.Shape { return interleavedShape }

func (s *InterleavedVertexStream) Values() []record.Value {
	return concat(s.VertexAttribute.values(), []record.Value{
		record.Int(s.BufferObject),
		record.Int(s.LocationFlag),
		record.Blob(s.Data),
		record.Int(s.LocationAddress),
		record.Int(s.MemoryArea),
		record.Int(s.EntrySize),
		record.Inlined(s.Streams),
	})
}

// VertexParamAttribute is a constant attribute shared by all vertices.
type VertexParamAttribute struct {
	VertexAttribute
	Attributes List
	FormatType int32
	Components int32
	Scale      float32
}

// NewVertexParamAttribute creates a constant attribute.
func NewVertexParamAttribute(usage int32, values ...float32) *VertexParamAttribute {
	return &VertexParamAttribute{
		VertexAttribute: VertexAttribute{Type: VertexParamAttributeType, Usage: usage},
		FormatType:      DataFloat,
		Components:      int32(len(values)),
		Scale:           1,
		Attributes:      Floats(values...),
	}
}

func (a *VertexParamAttribute) Shape() *shape.Shape { return vertexParamShape }

func (a *VertexParamAttribute) Values() []record.Value {
	return concat(a.VertexAttribute.values(), []record.Value{
		record.Int(a.FormatType),
		record.Int(a.Components),
		record.Float(a.Scale),
		record.Inlined(a.Attributes),
	})
}
