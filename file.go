package cgfx

import (
	"strings"

	"github.com/wippyai/cgfx/dict"
	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Header field constants.
const (
	ByteOrderMark = 0xFEFF
	HeaderSize    = 0x14
	Version       = 0x05000000
)

// Section names one of the fifteen top-level dictionaries of the DATA block.
type Section int

const (
	Models Section = iota
	Textures
	LookupTables
	Materials
	Shaders
	Cameras
	Lights
	Fogs
	Scenes
	SkeletalAnimations
	MaterialAnimations
	VisibilityAnimations
	CameraAnimations
	LightAnimations
	Emitters

	NumSections = int(Emitters) + 1
)

var sectionNames = [NumSections]string{
	"models",
	"textures",
	"lookup_tables",
	"materials",
	"shaders",
	"cameras",
	"lights",
	"fogs",
	"scenes",
	"skeletal_animations",
	"material_animations",
	"visibility_animations",
	"camera_animations",
	"light_animations",
	"emitters",
}

func (s Section) String() string {
	if s < 0 || int(s) >= NumSections {
		return "unknown"
	}
	return sectionNames[s]
}

// ParseSection returns the section with the given name.
func ParseSection(name string) (Section, bool) {
	for i, n := range sectionNames {
		if n == name {
			return Section(i), true
		}
	}
	return 0, false
}

var (
	headerShape = shape.MustParse("4sHhiii")
	dataShape   = shape.MustParse("4si" + strings.Repeat("ii", NumSections))
)

// Header is the fixed file header.
type Header struct {
	FileSize int
	Blocks   int
}

// Shape implements record.Fragment.
func (h *Header) Shape() *shape.Shape {
	return headerShape
}

// Values implements record.Fragment.
func (h *Header) Values() []record.Value {
	return []record.Value{
		record.Signature("CGFX"),
		record.Int(ByteOrderMark),
		record.Int(HeaderSize),
		record.Int(Version),
		record.Int(h.FileSize),
		record.Int(h.Blocks),
	}
}

// Data is the DATA block header: its size and the fifteen dictionary
// references.
type Data struct {
	SectionSize int
	Dicts       [NumSections]*dict.Info[record.Record]
}

// Shape implements record.Fragment.
func (d *Data) Shape() *shape.Shape {
	return dataShape
}

// Values implements record.Fragment.
func (d *Data) Values() []record.Value {
	values := make([]record.Value, 0, 2+NumSections)
	values = append(values, record.Signature("DATA"), record.Int(d.SectionSize))
	for _, info := range d.Dicts {
		values = append(values, record.Inlined(info))
	}
	return values
}

// File is the root record of a CGFX file.
type File struct {
	arena  *record.Arena
	Header Header
	Data   Data
	cfg    config
}

// NewFile creates an empty file. Only WithProfile affects the file itself;
// the remaining options become the file's encode defaults.
func NewFile(opts ...Option) *File {
	f := &File{
		arena: record.NewArena(),
		cfg:   defaultConfig(),
	}
	for _, opt := range opts {
		opt(&f.cfg)
	}
	for i := range f.Data.Dicts {
		f.Data.Dicts[i] = dict.NewInfo[record.Record](f.cfg.profile.DictOptions()...)
	}
	return f
}

// Profile returns the profile the file's dictionaries are built with.
func (f *File) Profile() Profile {
	return f.cfg.profile
}

// Arena returns the arena weak references in this file resolve through.
func (f *File) Arena() *record.Arena {
	return f.arena
}

// Section returns the dictionary reference for s.
func (f *File) Section(s Section) *dict.Info[record.Record] {
	return f.Data.Dicts[s]
}

// Add stores r under name in section s and registers it with the arena.
func (f *File) Add(s Section, name string, r record.Record) error {
	if s < 0 || int(s) >= NumSections {
		return errors.New(errors.PhaseDict, errors.KindNotFound).
			Value(int(s)).
			Detail("section %d does not exist", int(s)).
			Build()
	}
	if err := f.Data.Dicts[s].Add(name, r); err != nil {
		return err
	}
	f.arena.Add(r)
	return nil
}

// Shape implements record.Record.
func (f *File) Shape() *shape.Shape {
	return record.ShapeOf(shape.Empty, &f.Header, &f.Data)
}

// Values implements record.Record.
func (f *File) Values() []record.Value {
	return []record.Value{record.Inlined(&f.Header), record.Inlined(&f.Data)}
}

func (f *File) reconfigure(p Profile) error {
	if p == f.cfg.profile {
		return nil
	}
	for i, info := range f.Data.Dicts {
		if err := info.Dict.Configure(p.DictOptions()...); err != nil {
			return errors.Wrap(errors.PhaseDict, errors.KindInvalidName, err, "reconfigure "+Section(i).String())
		}
	}
	f.cfg.profile = p
	return nil
}
