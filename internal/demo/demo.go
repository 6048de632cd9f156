// Package demo builds a small scene exercising every record type in the
// schema package.
package demo

import (
	"github.com/wippyai/cgfx"
	"github.com/wippyai/cgfx/internal/binary"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/schema"
)

// Names of the records the demo scene stores at the top level.
const (
	ModelName     = "cube"
	TextureName   = "checker"
	ReferenceName = "checker_ref"
	LUTSetName    = "LutSet"
	LUTName       = "phong"
	LightName     = "key"
	SceneName     = "main"
	AnimationName = "spin"
)

// cube is an 8 vertex unit cube, 12 triangles.
var (
	cubePositions = []float32{
		-0.5, -0.5, -0.5, 0.5, -0.5, -0.5, 0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
		-0.5, -0.5, 0.5, 0.5, -0.5, 0.5, 0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	}
	cubeFaces = []byte{
		0, 2, 1, 0, 3, 2,
		4, 5, 6, 4, 6, 7,
		0, 1, 5, 0, 5, 4,
		2, 3, 7, 2, 7, 6,
		1, 2, 6, 1, 6, 5,
		0, 4, 7, 0, 7, 3,
	}
)

// Build returns a file holding a textured cube, a lit scene and a spin
// animation.
func Build(opts ...cgfx.Option) (*cgfx.File, error) {
	f := cgfx.NewFile(opts...)

	model := schema.NewModel(ModelName)
	if err := f.Add(cgfx.Models, ModelName, model); err != nil {
		return nil, err
	}
	buildGeometry(model, f.Arena().Add(model))
	if err := buildAnimationGroup(model); err != nil {
		return nil, err
	}

	texture := schema.NewImageTexture(TextureName, 8, 8, 0, 32, checker(8, 8))
	if err := f.Add(cgfx.Textures, TextureName, texture); err != nil {
		return nil, err
	}
	ref := schema.NewReferenceTexture(ReferenceName, TextureName, f.Arena().Add(texture))
	if err := f.Add(cgfx.Textures, ReferenceName, ref); err != nil {
		return nil, err
	}

	luts := schema.NewLookupTables(LUTSetName)
	phong := schema.PhongTable(10)
	phong.Name = LUTName
	if err := luts.Tables.Add(LUTName, phong); err != nil {
		return nil, err
	}
	if err := f.Add(cgfx.LookupTables, LUTSetName, luts); err != nil {
		return nil, err
	}

	light := schema.NewLight(LightName)
	light.SpotlightLUT = f.Arena().Add(phong)
	if err := f.Add(cgfx.Lights, LightName, light); err != nil {
		return nil, err
	}

	scene := schema.NewScene(SceneName)
	scene.AddCamera("camera")
	scene.AddLightSet(0).AddLight(LightName)
	if err := f.Add(cgfx.Scenes, SceneName, scene); err != nil {
		return nil, err
	}

	anim, err := buildAnimation()
	if err != nil {
		return nil, err
	}
	if err := f.Add(cgfx.SkeletalAnimations, AnimationName, anim); err != nil {
		return nil, err
	}
	return f, nil
}

func buildGeometry(model *schema.Model, owner record.ID) {
	positions := schema.NewVertexStream(0, schema.DataFloat, 3, floatBytes(cubePositions))
	color := schema.NewVertexParamAttribute(3, 1, 1, 1, 1)

	indices := schema.NewIndexStream(cubeFaces)
	primitive := schema.NewPrimitive()
	primitive.IndexStreams.Add(record.Owned(indices))
	primitive.BufferObjects.Add(record.Int(0))

	set := schema.NewPrimitiveSet()
	set.RelatedBones.Add(record.Int(0))
	set.Primitives.Add(record.Owned(primitive))

	s := schema.NewShape()
	s.BoundingBox = schema.NewOrientedBoundingBox()
	s.PrimitiveSets.Add(record.Owned(set))
	s.VertexAttributes.Add(record.Owned(positions))
	s.VertexAttributes.Add(record.Owned(color))

	mesh := schema.NewMesh(owner)
	mesh.ShapeIndex = int32(model.AddShape(s))
	model.AddMesh(mesh)
}

func buildAnimationGroup(model *schema.Model) error {
	group := schema.NewAnimationGroup("VisibilityAnimation")
	group.MemberType = 1
	member := &schema.AnimationGroupMember{
		ObjectType:  schema.MemberModel,
		Path:        "IsBranchVisible",
		Member:      "IsBranchVisible",
		ValueOffset: 4,
		ValueSize:   1,
		FieldType:   6,
	}
	if err := group.Members.Add(member.Path, member); err != nil {
		return err
	}
	return model.AnimationGroups.Add(group.Name, group)
}

func buildAnimation() (*schema.Animation, error) {
	anim := schema.NewAnimation(AnimationName, "SkeletalAnimation")
	anim.FrameSize = 60

	spin := schema.NewFloatCurve(0, 60,
		schema.KeyedSegment(0, 60, schema.InterpolationLinear, schema.QuantStepLinear64,
			schema.StepLinear64Key{Frame: 0, Value: 0},
			schema.StepLinear64Key{Frame: 60, Value: 6.2831855},
		))
	bone := &schema.BoneTransform{
		Bone: schema.Bone{Path: ModelName},
		Scale: [3]schema.Channel{
			schema.Constant(1), schema.Constant(1), schema.Constant(1),
		},
		Rotation: [3]schema.Channel{
			schema.Constant(0), schema.Curve(spin), schema.Constant(0),
		},
		Translation: [3]schema.Channel{
			schema.Ignored(), schema.Ignored(), schema.Ignored(),
		},
	}
	if err := anim.Members.Add(bone.Path, bone); err != nil {
		return nil, err
	}
	return anim, nil
}

func checker(w, h int) []byte {
	out := make([]byte, 0, w*h*4)
	for y := range h {
		for x := range w {
			v := byte(0x20)
			if (x+y)%2 == 0 {
				v = 0xe0
			}
			out = append(out, v, v, v, 0xff)
		}
	}
	return out
}

func floatBytes(values []float32) []byte {
	w := binary.NewWriter()
	for _, v := range values {
		w.WriteF32LE(v)
	}
	return w.Bytes()
}
