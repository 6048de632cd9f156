package schema

import (
	"github.com/wippyai/cgfx/dict"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Model type flags.
const (
	ModelType        = 0x40000012
	ModelHasSkeleton = 0x80
)

var modelTail = shape.MustParse("iiiiiiiiiii")

// Model is a CMDL record.
type Model struct {
	Object
	Transform
	Materials *dict.Info[record.Record]
	MeshNodes *dict.Info[record.Record]
	// Skeleton makes this the skeletal variant when set.
	Skeleton record.Record
	Meshes   List
	Shapes   List
	Flags2   int32
	CullMode int32
	LayerID  int32
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{
		Object:    newObject(ModelType, "CMDL", 0x09000000, name),
		Transform: newTransform(),
		Materials: dict.NewInfo[record.Record](),
		MeshNodes: dict.NewInfo[record.Record](),
		Meshes:    NewList(shape.Int32),
		Shapes:    NewList(shape.Int32),
	}
}

// AddMesh appends a mesh.
func (m *Model) AddMesh(mesh *Mesh) {
	m.Meshes.Add(record.Owned(mesh))
}

// AddShape appends a shape and returns its index.
func (m *Model) AddShape(s *Shape) int {
	m.Shapes.Add(record.Owned(s))
	return m.Shapes.Len() - 1
}

func (m *Model) Shape() *shape.Shape {
	parts := []*shape.Shape{objectShape, transformShape, modelTail}
	if m.Skeleton != nil {
		parts = append(parts, shape.MustParse("i"))
	}
	return shape.Join(parts...)
}

func (m *Model) Values() []record.Value {
	o := m.Object
	if m.Skeleton != nil {
		o.Type |= ModelHasSkeleton
	}
	values := concat(o.values(), m.Transform.values(), []record.Value{
		record.Inlined(m.Meshes),
		record.Inlined(m.Materials),
		record.Inlined(m.Shapes),
		record.Inlined(m.MeshNodes),
		record.Int(m.Flags2),
		record.Int(m.CullMode),
		record.Int(m.LayerID),
	})
	if m.Skeleton != nil {
		values = append(values, record.Owned(m.Skeleton))
	}
	return values
}

// Mesh type code.
const MeshType = 0x01000000

var meshShape = shape.Join(
	objectShape,
	shape.MustParse("iii?BH"),
	shape.MustParse("x").Repeat(72),
	shape.MustParse("i"),
)

// Mesh is a SOBJ mesh. Owner is a weak reference to the model holding the
// mesh.
type Mesh struct {
	Object
	NodeName       string
	ShapeIndex     int32
	MaterialIndex  int32
	Owner          record.ID
	NodeVisibility uint16
	Priority       uint8
	Visible        bool
}

// NewMesh creates a visible mesh owned by the model with the given arena ID.
func NewMesh(owner record.ID) *Mesh {
	return &Mesh{
		Object:  newObject(MeshType, "SOBJ", 0, ""),
		Owner:   owner,
		Visible: true,
	}
}

func (m *Mesh) Shape() *shape.Shape {
	return meshShape
}

func (m *Mesh) Values() []record.Value {
	return concat(m.Object.values(), []record.Value{
		record.Int(m.ShapeIndex),
		record.Int(m.MaterialIndex),
		record.Ref(m.Owner),
		record.Bool(m.Visible),
		record.Int(m.Priority),
		record.Int(m.NodeVisibility),
		record.String(m.NodeName),
	})
}

// Shape type code.
const ShapeType = 0x10000001

var shapeTail = shape.MustParse("iifffiiiiii")

// Shape is a SOBJ shape: geometry split into primitive sets and the vertex
// attributes they read.
type Shape struct {
	Object
	BoundingBox      *OrientedBoundingBox
	PrimitiveSets    List
	VertexAttributes List
	PositionOffset   Vector3
	Flags            int32
	BaseAddress      int32
	BlendShape       int32
}

// NewShape creates an empty shape.
func NewShape() *Shape {
	return &Shape{
		Object:           newObject(ShapeType, "SOBJ", 0, "shape"),
		PrimitiveSets:    NewList(shape.Int32),
		VertexAttributes: NewList(shape.Int32),
	}
}

func (s *Shape) Shape() *shape.Shape {
	return shape.Join(objectShape, shapeTail)
}

func (s *Shape) Values() []record.Value {
	return concat(s.Object.values(), []record.Value{
		record.Int(s.Flags),
		record.Owned(s.BoundingBox),
		record.Inlined(s.PositionOffset),
		record.Inlined(s.PrimitiveSets),
		record.Int(s.BaseAddress),
		record.Inlined(s.VertexAttributes),
		record.Int(s.BlendShape),
	})
}

var boundingBoxShape = shape.MustParse("I" + "fff" + "fffffffff" + "fff")

// OrientedBoundingBox bounds a shape.
type OrientedBoundingBox struct {
	Orientation OrientationMatrix
	Center      Vector3
	Size        Vector3
}

// NewOrientedBoundingBox creates a unit box at the origin.
func NewOrientedBoundingBox() *OrientedBoundingBox {
	return &OrientedBoundingBox{
		Orientation: OrientationMatrix{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Size:        Vector3{1, 1, 1},
	}
}

func (b *OrientedBoundingBox) Shape() *shape.Shape {
	return boundingBoxShape
}

func (b *OrientedBoundingBox) Values() []record.Value {
	return []record.Value{
		record.Int(uint32(0x80000000)),
		record.Inlined(b.Center),
		record.Inlined(b.Orientation),
		record.Inlined(b.Size),
	}
}
