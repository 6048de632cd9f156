package schema

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/cgfx/dict"
	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// LUTSize is the number of samples in a lookup table.
const LUTSize = 256

// lutCommand is the register write header inserted before each half table.
var lutCommand = []byte{0xc8, 0x01, 0xff, 0x07}

var (
	lookupTablesTail = shape.MustParse("ii")
	lookupTableShape = shape.MustParse("Iiiii")
)

// LookupTables is a LUTS record: a named set of lookup tables.
type LookupTables struct {
	Object
	Tables *dict.Info[*LookupTable]
}

// NewLookupTables creates an empty table set.
func NewLookupTables(name string) *LookupTables {
	return &LookupTables{
		Object: newObject(0x04000000, "LUTS", 0x04000000, name),
		Tables: dict.NewInfo[*LookupTable](),
	}
}

func (l *LookupTables) Shape() *shape.Shape {
	return shape.Join(objectShapeUnsigned, lookupTablesTail)
}

func (l *LookupTables) Values() []record.Value {
	return concat(l.Object.values(), []record.Value{record.Inlined(l.Tables)})
}

// LookupTable is one sampled function. Its command stream goes to the blob
// pool.
type LookupTable struct {
	Name    string
	Samples []float64
	Enabled bool
}

// NewLookupTable creates a table over exactly LUTSize samples.
func NewLookupTable(samples []float64) (*LookupTable, error) {
	if len(samples) != LUTSize {
		return nil, errors.New(errors.PhaseValidate, errors.KindInvalidData).
			Record("*schema.LookupTable").
			Value(len(samples)).
			Detail("lookup table needs %d samples, got %d", LUTSize, len(samples)).
			Build()
	}
	return &LookupTable{Samples: samples, Enabled: true}, nil
}

// TriangleTable is the default table: 1 - |i/128| for i in [-128, 128).
func TriangleTable() *LookupTable {
	samples := make([]float64, LUTSize)
	for i := range samples {
		samples[i] = 1 - math.Abs(float64(i-128)/128)
	}
	return &LookupTable{Samples: samples, Enabled: true}
}

// PhongTable samples (i/256)^shininess.
func PhongTable(shininess float64) *LookupTable {
	samples := make([]float64, LUTSize)
	for i := range samples {
		samples[i] = math.Pow(float64(i)/LUTSize, shininess)
	}
	return &LookupTable{Samples: samples, Enabled: true}
}

func (t *LookupTable) Shape() *shape.Shape { return lookupTableShape }

func (t *LookupTable) Values() []record.Value {
	return []record.Value{
		record.Int(uint32(0x80000000)),
		record.String(t.Name),
		record.Bool(t.Enabled),
		record.Blob(LUTCommands(t.Samples)),
	}
}

// LUTCommands encodes samples as GPU register writes. Each word holds a 12
// bit value and the 11 bit delta to the next sample; the two 128 entry
// halves are each preceded by the command header and followed by a zero
// word. Samples beyond LUTSize are ignored and missing ones are zero.
func LUTCommands(samples []float64) []byte {
	words := make([]uint32, LUTSize)
	for i := range words {
		v := min(int(sample(samples, i)*0x1000), 0xfff)
		d := 0
		if i+1 < LUTSize {
			d = min(int(math.Abs(sample(samples, i+1)-sample(samples, i))*0x800), 0x7ff)
		}
		words[i] = uint32(d)<<12 | uint32(v)
	}

	out := make([]byte, 0, (LUTSize+6)*4)
	for half := 0; half < 2; half++ {
		first := half * LUTSize / 2
		out = binary.LittleEndian.AppendUint32(out, words[first])
		out = append(out, lutCommand...)
		for _, w := range words[first+1 : first+LUTSize/2] {
			out = binary.LittleEndian.AppendUint32(out, w)
		}
		out = binary.LittleEndian.AppendUint32(out, 0)
	}
	return out
}

func sample(samples []float64, i int) float64 {
	if i < len(samples) {
		return samples[i]
	}
	return 0
}
