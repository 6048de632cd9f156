package schema

import (
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Scene type code.
const SceneType = 0x00800000

var (
	sceneTail      = shape.MustParse("iiiiii")
	sceneItemShape = shape.MustParse("iii")
)

// Scene is a CENV environment: the cameras and light sets used together.
type Scene struct {
	Object
	Cameras   List
	LightSets List
	Other     List
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{
		Object:    newObject(SceneType, "CENV", 0x06000000, name),
		Cameras:   NewList(shape.Int32),
		LightSets: NewList(shape.Int32),
		Other:     NewList(shape.Int32),
	}
}

// AddCamera references a camera by name.
func (s *Scene) AddCamera(name string) {
	s.Cameras.Add(record.Owned(&SceneCamera{Name: name}))
}

// AddLightSet appends a light set and returns it.
func (s *Scene) AddLightSet(index int32) *SceneLightSet {
	set := &SceneLightSet{Index: index, Lights: NewList(shape.Int32)}
	s.LightSets.Add(record.Owned(set))
	return set
}

func (s *Scene) Shape() *shape.Shape {
	return shape.Join(objectShape, sceneTail)
}

func (s *Scene) Values() []record.Value {
	return concat(s.Object.values(), []record.Value{
		record.Inlined(s.Cameras),
		record.Inlined(s.LightSets),
		record.Inlined(s.Other),
	})
}

// SceneCamera names a camera used by a scene.
type SceneCamera struct {
	Name    string
	Index   int32
	Unknown int32
}

func (c *SceneCamera) Shape() *shape.Shape { return sceneItemShape }

func (c *SceneCamera) Values() []record.Value {
	return []record.Value{record.Int(c.Index), record.String(c.Name), record.Int(c.Unknown)}
}

// SceneLight names a light within a light set.
type SceneLight struct {
	Name    string
	Index   int32
	Unknown int32
}

func (l *SceneLight) Shape() *shape.Shape { return sceneItemShape }

func (l *SceneLight) Values() []record.Value {
	return []record.Value{record.Int(l.Index), record.String(l.Name), record.Int(l.Unknown)}
}

// SceneLightSet groups lights.
type SceneLightSet struct {
	Lights List
	Index  int32
}

// AddLight references a light by name.
func (s *SceneLightSet) AddLight(name string) {
	s.Lights.Add(record.Owned(&SceneLight{Name: name}))
}

func (s *SceneLightSet) Shape() *shape.Shape { return sceneItemShape }

func (s *SceneLightSet) Values() []record.Value {
	return []record.Value{record.Int(s.Index), record.Inlined(s.Lights)}
}
