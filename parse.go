package cgfx

import (
	"fmt"

	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/internal/binary"
	"github.com/wippyai/cgfx/patricia"
	"github.com/wippyai/cgfx/record"
)

const (
	dictHeaderSize = 12
	dictNodeSize   = 16
)

// ParsedHeader is the decoded file header.
type ParsedHeader struct {
	Signature  string
	ByteOrder  uint16
	HeaderSize uint16
	Version    uint32
	FileSize   uint32
	Blocks     uint32
}

// ParsedEntry is one decoded dictionary node. Offsets are absolute; a zero
// ContentOffset means the node has no content.
type ParsedEntry struct {
	patricia.Entry
	NameOffset    int
	ContentOffset int
}

// ParsedDict is a decoded DICT record.
type ParsedDict struct {
	Entries     []ParsedEntry
	Offset      int
	SectionSize int
	Count       int
}

// Lookup walks the dictionary's trie for name.
func (d *ParsedDict) Lookup(name string) (ParsedEntry, bool) {
	table := make([]patricia.Entry, len(d.Entries))
	for i, e := range d.Entries {
		table[i] = e.Entry
	}
	idx, ok := patricia.Find(table, name)
	if !ok {
		return ParsedEntry{}, false
	}
	return d.Entries[idx], true
}

// Names returns entry names in stored order, sentinel excluded.
func (d *ParsedDict) Names() []string {
	names := make([]string, 0, d.Count)
	for _, e := range d.Entries[1:] {
		names = append(names, e.Name)
	}
	return names
}

// Parsed is a decoded CGFX file.
type Parsed struct {
	Header      ParsedHeader
	Sections    [NumSections]*ParsedDict
	DataOffset  int
	DataSize    int
	ImagOffset  int
	ImagSize    int
	pointerBase record.PointerBase
}

// Dict returns the decoded dictionary of s, or nil when it is empty.
func (p *Parsed) Dict(s Section) *ParsedDict {
	if s < 0 || int(s) >= NumSections {
		return nil
	}
	return p.Sections[s]
}

// Lookup finds name in section s.
func (p *Parsed) Lookup(s Section, name string) (ParsedEntry, error) {
	d := p.Dict(s)
	if d == nil {
		return ParsedEntry{}, errors.NotFound(errors.PhaseParse, s.String()+" entry", name)
	}
	e, ok := d.Lookup(name)
	if !ok {
		return ParsedEntry{}, errors.NotFound(errors.PhaseParse, s.String()+" entry", name)
	}
	return e, nil
}

// Parse decodes the header, the DATA block and every dictionary of a CGFX
// file. Only WithPointerBase is honoured.
func Parse(data []byte, opts ...Option) (*Parsed, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Parsed{pointerBase: cfg.pointerBase}
	r := binary.NewReader(data)

	if err := p.parseHeader(r); err != nil {
		return nil, err
	}
	if int(p.Header.FileSize) != len(data) {
		return nil, errors.InvalidData(errors.PhaseParse, []string{"header", "file_size"},
			fmt.Sprintf("header declares %d bytes, got %d", p.Header.FileSize, len(data)))
	}
	if err := p.parseData(r); err != nil {
		return nil, err
	}
	if p.Header.Blocks > 1 {
		if err := p.parseImag(r); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Parsed) parseHeader(r *binary.Reader) error {
	sig, err := r.ReadBytes(4)
	if err != nil {
		return readErr(err, "header")
	}
	if string(sig) != "CGFX" {
		return errors.InvalidData(errors.PhaseParse, []string{"header", "signature"},
			fmt.Sprintf("bad signature %q", sig))
	}
	h := ParsedHeader{Signature: string(sig)}
	if h.ByteOrder, err = r.ReadU16LE(); err != nil {
		return readErr(err, "header")
	}
	if h.HeaderSize, err = r.ReadU16LE(); err != nil {
		return readErr(err, "header")
	}
	if h.Version, err = r.ReadU32LE(); err != nil {
		return readErr(err, "header")
	}
	if h.FileSize, err = r.ReadU32LE(); err != nil {
		return readErr(err, "header")
	}
	if h.Blocks, err = r.ReadU32LE(); err != nil {
		return readErr(err, "header")
	}
	if h.ByteOrder != ByteOrderMark {
		return errors.InvalidData(errors.PhaseParse, []string{"header", "byte_order"},
			fmt.Sprintf("unsupported byte order mark %#x", h.ByteOrder))
	}
	p.Header = h
	p.DataOffset = int(h.HeaderSize)
	return nil
}

func (p *Parsed) parseData(r *binary.Reader) error {
	if err := r.Reset(p.DataOffset); err != nil {
		return readErr(err, "data")
	}
	sig, err := r.ReadBytes(4)
	if err != nil {
		return readErr(err, "data")
	}
	if string(sig) != "DATA" {
		return errors.InvalidData(errors.PhaseParse, []string{"data", "signature"},
			fmt.Sprintf("bad signature %q", sig))
	}
	size, err := r.ReadS32LE()
	if err != nil {
		return readErr(err, "data")
	}
	p.DataSize = int(size)

	for i := range NumSections {
		field := p.DataOffset + 8 + 8*i
		if err := r.Reset(field); err != nil {
			return readErr(err, Section(i).String())
		}
		count, err := r.ReadS32LE()
		if err != nil {
			return readErr(err, Section(i).String())
		}
		ptr, err := r.ReadS32LE()
		if err != nil {
			return readErr(err, Section(i).String())
		}
		if count == 0 || ptr == 0 {
			continue
		}
		// The DATA block is inlined into the root record at offset 0.
		off := p.resolve(0, field+4, ptr)
		d, err := p.parseDict(r, off)
		if err != nil {
			return errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err, "dictionary "+Section(i).String())
		}
		if d.Count != int(count) {
			return errors.InvalidData(errors.PhaseParse, []string{Section(i).String()},
				fmt.Sprintf("info declares %d entries, dictionary holds %d", count, d.Count))
		}
		p.Sections[i] = d
	}
	return nil
}

func (p *Parsed) parseDict(r *binary.Reader, off int) (*ParsedDict, error) {
	if err := r.Reset(off); err != nil {
		return nil, readErr(err, "dict")
	}
	sig, err := r.ReadBytes(4)
	if err != nil {
		return nil, readErr(err, "dict")
	}
	if string(sig) != "DICT" {
		return nil, errors.InvalidData(errors.PhaseParse, []string{"dict", "signature"},
			fmt.Sprintf("bad signature %q at %#x", sig, off))
	}
	size, err := r.ReadS32LE()
	if err != nil {
		return nil, readErr(err, "dict")
	}
	count, err := r.ReadS32LE()
	if err != nil {
		return nil, readErr(err, "dict")
	}
	if count < 0 || int(count)*dictNodeSize > r.Len() {
		return nil, errors.InvalidData(errors.PhaseParse, []string{"dict", "count"},
			fmt.Sprintf("implausible entry count %d", count))
	}

	d := &ParsedDict{Offset: off, SectionSize: int(size), Count: int(count)}
	for i := 0; i <= int(count); i++ {
		node := off + dictHeaderSize + dictNodeSize*i
		e, err := p.parseNode(r, off, node)
		if err != nil {
			return nil, err
		}
		d.Entries = append(d.Entries, e)
	}
	return d, nil
}

func (p *Parsed) parseNode(r *binary.Reader, dictOff, node int) (ParsedEntry, error) {
	path := fmt.Sprintf("node@%#x", node)
	if err := r.Reset(node); err != nil {
		return ParsedEntry{}, readErr(err, path)
	}
	refbit, err := r.ReadS32LE()
	if err != nil {
		return ParsedEntry{}, readErr(err, path)
	}
	left, err := r.ReadU16LE()
	if err != nil {
		return ParsedEntry{}, readErr(err, path)
	}
	right, err := r.ReadU16LE()
	if err != nil {
		return ParsedEntry{}, readErr(err, path)
	}
	namePtr, err := r.ReadS32LE()
	if err != nil {
		return ParsedEntry{}, readErr(err, path)
	}
	contentPtr, err := r.ReadS32LE()
	if err != nil {
		return ParsedEntry{}, readErr(err, path)
	}

	e := ParsedEntry{Entry: patricia.Entry{
		RefBit: refbit,
		Left:   int(int16(left)),
		Right:  int(int16(right)),
	}}
	if namePtr != 0 {
		e.NameOffset = p.resolve(dictOff, node+8, namePtr)
		if e.Name, err = r.CString(e.NameOffset); err != nil {
			return ParsedEntry{}, readErr(err, path+".name")
		}
	}
	if contentPtr != 0 {
		e.ContentOffset = p.resolve(dictOff, node+12, contentPtr)
		if e.ContentOffset < 0 || e.ContentOffset >= r.Len() {
			return ParsedEntry{}, errors.OutOfBounds(errors.PhaseParse, []string{path, "content"}, e.ContentOffset, r.Len())
		}
	}
	return e, nil
}

func (p *Parsed) parseImag(r *binary.Reader) error {
	off := p.DataOffset + p.DataSize
	if err := r.Reset(off); err != nil {
		return readErr(err, "imag")
	}
	sig, err := r.ReadBytes(4)
	if err != nil {
		return readErr(err, "imag")
	}
	if string(sig) != "IMAG" {
		return errors.InvalidData(errors.PhaseParse, []string{"imag", "signature"},
			fmt.Sprintf("bad signature %q at %#x", sig, off))
	}
	size, err := r.ReadU32LE()
	if err != nil {
		return readErr(err, "imag")
	}
	if off+imagHeaderSize+int(size) > r.Len() {
		return errors.OutOfBounds(errors.PhaseParse, []string{"imag"}, off+imagHeaderSize+int(size), r.Len())
	}
	p.ImagOffset = off
	p.ImagSize = int(size)
	return nil
}

// resolve turns a stored pointer into an absolute offset.
func (p *Parsed) resolve(recordOff, fieldOff int, ptr int32) int {
	if p.pointerBase == record.RecordRelative {
		return recordOff + int(ptr)
	}
	return fieldOff + int(ptr)
}

func readErr(err error, path string) error {
	return errors.New(errors.PhaseParse, errors.KindOutOfBounds).
		Path(path).
		Cause(err).
		Build()
}
