package schema

import (
	"github.com/wippyai/cgfx/dict"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Object is the header shared by most named records.
type Object struct {
	UserData  *dict.Info[record.Record]
	Signature string
	Name      string
	Type      uint32
	Revision  uint32
}

func newObject(typ uint32, sig string, revision uint32, name string) Object {
	return Object{
		Type:      typ,
		Signature: sig,
		Revision:  revision,
		Name:      name,
		UserData:  dict.NewInfo[record.Record](),
	}
}

var (
	objectShape         = shape.MustParse("i4siiii")
	objectShapeUnsigned = shape.MustParse("I4siiii")
)

func (o *Object) values() []record.Value {
	return []record.Value{
		record.Int(o.Type),
		record.Signature(o.Signature),
		record.Int(o.Revision),
		record.String(o.Name),
		record.Inlined(o.UserData),
	}
}

// Transform is the scene-node block shared by models and lights.
type Transform struct {
	AnimationGroups *dict.Info[*AnimationGroup]
	Scale           Vector3
	Rotation        Vector3
	Translation     Vector3
	Local           Matrix
	World           Matrix
	Flags           int32
	Children        int32
	BranchVisible   bool
}

func newTransform() Transform {
	return Transform{
		AnimationGroups: dict.NewInfo[*AnimationGroup](),
		Flags:           1,
		Scale:           Vector3{1, 1, 1},
		Local:           Identity,
		World:           Identity,
	}
}

var transformShape = shape.MustParse("iiixxxxii" + "fffffffff" + "ffffffffffff" + "ffffffffffff")

func (t *Transform) values() []record.Value {
	return []record.Value{
		record.Int(t.Flags),
		record.Bool(t.BranchVisible),
		record.Int(t.Children),
		record.Inlined(t.AnimationGroups),
		record.Inlined(t.Scale),
		record.Inlined(t.Rotation),
		record.Inlined(t.Translation),
		record.Inlined(t.Local),
		record.Inlined(t.World),
	}
}

func concat(parts ...[]record.Value) []record.Value {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	out := make([]record.Value, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
