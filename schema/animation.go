package schema

import (
	"github.com/wippyai/cgfx/dict"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// MemberType identifies what an animation group member animates.
type MemberType uint32

const (
	MemberMeshNodeVisibility MemberType = 0x00080000
	MemberMesh               MemberType = 0x01000000
	MemberTextureSampler     MemberType = 0x02000000
	MemberBlendOperation     MemberType = 0x04000000
	MemberMaterialColor      MemberType = 0x08000000
	MemberModel              MemberType = 0x10000000
	MemberTextureMapper      MemberType = 0x20000000
	MemberBone               MemberType = 0x40000000
	MemberTextureCoordinator MemberType = 0x80000000
)

var (
	animationGroupShape = shape.MustParse("Iiiiiiiii")
	memberBaseShape     = shape.MustParse("Iiiiiiiiixxxxi")
	memberFieldShape    = shape.MustParse("i")
)

// AnimationGroup describes which members of an object can be animated.
type AnimationGroup struct {
	Members          *dict.Info[*AnimationGroupMember]
	Name             string
	BlendOperations  List
	Flags            int32
	MemberType       int32
	EvaluationTiming int32
}

// NewAnimationGroup creates an empty group.
func NewAnimationGroup(name string) *AnimationGroup {
	return &AnimationGroup{
		Name:            name,
		Members:         dict.NewInfo[*AnimationGroupMember](),
		BlendOperations: NewList(shape.Int32),
	}
}

func (g *AnimationGroup) Shape() *shape.Shape { return animationGroupShape }

func (g *AnimationGroup) Values() []record.Value {
	return []record.Value{
		record.Int(uint32(0x80000000)),
		record.Int(g.Flags),
		record.String(g.Name),
		record.Int(g.MemberType),
		record.Inlined(g.Members),
		record.Inlined(g.BlendOperations),
		record.Int(g.EvaluationTiming),
	}
}

// AnimationGroupMember is one animatable field. Members whose FieldType is
// at most 5 carry a parent name and field index; the others carry a parent
// index.
type AnimationGroupMember struct {
	Path           string
	Member         string
	BlendOperation string
	ParentName     string
	ObjectType     MemberType
	ValueOffset    int32
	ValueSize      int32
	Unknown        int32
	FieldType      int32
	ValueIndex     int32
	FieldIndex     int32
	ParentIndex    int32
}

func (m *AnimationGroupMember) named() bool {
	return m.FieldType <= 5
}

func (m *AnimationGroupMember) Shape() *shape.Shape {
	if m.named() {
		return shape.Join(memberBaseShape, memberFieldShape)
	}
	return memberBaseShape
}

func (m *AnimationGroupMember) Values() []record.Value {
	values := []record.Value{
		record.Int(m.ObjectType),
		record.String(m.Path),
		record.String(m.Member),
		record.String(m.BlendOperation),
		record.Int(m.ValueOffset),
		record.Int(m.ValueSize),
		record.Int(m.Unknown),
		record.Int(m.FieldType),
		record.Int(m.ValueIndex),
	}
	if m.named() {
		return append(values, record.String(m.ParentName), record.Int(m.FieldIndex))
	}
	return append(values, record.Int(m.ParentIndex))
}
