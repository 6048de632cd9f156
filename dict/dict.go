package dict

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"strings"

	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/patricia"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

// Order selects how entries are arranged before the trie is built.
type Order int

const (
	// OrderInsertion keeps entries in the order they were added.
	OrderInsertion Order = iota
	// OrderLengthDesc sorts entries by descending name length, then name.
	OrderLengthDesc
)

// MaxEntries is the largest entry count whose node links fit the int16
// link fields.
const MaxEntries = math.MaxInt16

// Option configures a Dict.
type Option func(*config)

type config struct {
	order       Order
	sectionSize bool
}

// WithOrder sets the entry ordering policy.
func WithOrder(o Order) Option {
	return func(c *config) {
		c.order = o
	}
}

// WithSectionSize controls whether the DICT header reports its own size. When
// disabled the field is written as 0.
func WithSectionSize(report bool) Option {
	return func(c *config) {
		c.sectionSize = report
	}
}

var (
	headerShape = shape.MustParse("4sii")
	nodeShape   = shape.MustParse("ihhii")
)

// Node is one dictionary entry.
type Node[T record.Record] struct {
	Content T
	Name    string
	RefBit  int32
	Left    int16
	Right   int16
	// sentinel marks node 0, whose content is always null.
	sentinel bool
}

// Shape implements record.Fragment.
func (n *Node[T]) Shape() *shape.Shape {
	return nodeShape
}

// Values implements record.Fragment.
func (n *Node[T]) Values() []record.Value {
	content := record.Null()
	if !n.sentinel {
		content = record.Owned(n.Content)
	}
	return []record.Value{
		record.Int(n.RefBit),
		record.Int(n.Left),
		record.Int(n.Right),
		record.String(n.Name),
		content,
	}
}

// Dict is a named collection of records backed by a PATRICIA trie.
type Dict[T record.Record] struct {
	nodes []*Node[T]
	added []string
	cfg   config
}

// New creates an empty dictionary holding only the sentinel node.
func New[T record.Record](opts ...Option) *Dict[T] {
	d := &Dict[T]{
		nodes: []*Node[T]{{RefBit: -1, sentinel: true}},
		cfg:   config{sectionSize: true},
	}
	for _, opt := range opts {
		opt(&d.cfg)
	}
	return d
}

// Configure applies options to an existing dictionary and rebuilds the trie.
func (d *Dict[T]) Configure(opts ...Option) error {
	for _, opt := range opts {
		opt(&d.cfg)
	}
	return d.regenerate()
}

// Add appends a named entry and rebuilds the trie over all entries.
func (d *Dict[T]) Add(name string, content T) error {
	if name == "" {
		return errors.InvalidName(errors.PhaseDict, name, "entry names cannot be empty")
	}
	if strings.IndexByte(name, 0) >= 0 {
		return errors.InvalidName(errors.PhaseDict, name, "entry names cannot contain NUL bytes")
	}
	if _, ok := d.Index(name); ok {
		return errors.DuplicateName(errors.PhaseDict, name)
	}

	d.nodes = append(d.nodes, &Node[T]{Name: name, Content: content})
	d.added = append(d.added, name)
	if err := d.regenerate(); err != nil {
		d.remove(name)
		return err
	}
	return nil
}

// Get returns the content stored under name.
func (d *Dict[T]) Get(name string) (T, bool) {
	for _, n := range d.nodes[1:] {
		if n.Name == name {
			return n.Content, true
		}
	}
	var zero T
	return zero, false
}

// Index returns the zero-based stored position of name, sentinel excluded.
func (d *Dict[T]) Index(name string) (int, bool) {
	for i, n := range d.nodes[1:] {
		if n.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of entries, sentinel excluded.
func (d *Dict[T]) Len() int {
	return len(d.nodes) - 1
}

// Names returns entry names in insertion order.
func (d *Dict[T]) Names() []string {
	return slices.Clone(d.added)
}

// All iterates entries in insertion order.
func (d *Dict[T]) All() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, name := range d.added {
			content, _ := d.Get(name)
			if !yield(name, content) {
				return
			}
		}
	}
}

// Nodes returns the stored nodes, sentinel first.
func (d *Dict[T]) Nodes() []*Node[T] {
	return d.nodes
}

// Entries returns the trie table as it is serialized.
func (d *Dict[T]) Entries() []patricia.Entry {
	out := make([]patricia.Entry, len(d.nodes))
	for i, n := range d.nodes {
		out[i] = patricia.Entry{
			Name:   n.Name,
			RefBit: n.RefBit,
			Left:   int(n.Left),
			Right:  int(n.Right),
		}
	}
	return out
}

// Lookup finds name by walking the trie table the way a runtime loader does.
func (d *Dict[T]) Lookup(name string) (T, bool) {
	idx, ok := patricia.Find(d.Entries(), name)
	if !ok {
		var zero T
		return zero, false
	}
	return d.nodes[idx].Content, true
}

// Shape implements record.Record.
func (d *Dict[T]) Shape() *shape.Shape {
	return shape.Join(headerShape, nodeShape.Repeat(len(d.nodes)))
}

// Values implements record.Record.
func (d *Dict[T]) Values() []record.Value {
	size := 0
	if d.cfg.sectionSize {
		size = d.Shape().Size()
	}
	values := []record.Value{
		record.Signature("DICT"),
		record.Int(size),
		record.Int(d.Len()),
	}
	for _, n := range d.nodes {
		values = append(values, record.Inlined(n))
	}
	return values
}

func (d *Dict[T]) regenerate() error {
	if d.Len() > MaxEntries {
		return errors.New(errors.PhaseDict, errors.KindOverflow).
			Value(d.Len()).
			Detail("%d entries exceed the %d addressable by node links", d.Len(), MaxEntries).
			Build()
	}
	if d.cfg.order == OrderLengthDesc {
		slices.SortStableFunc(d.nodes[1:], func(a, b *Node[T]) int {
			if c := cmp.Compare(len(b.Name), len(a.Name)); c != 0 {
				return c
			}
			return strings.Compare(a.Name, b.Name)
		})
	} else {
		d.restoreInsertionOrder()
	}
	if d.Len() == 0 {
		d.nodes[0].Left, d.nodes[0].Right = 0, 0
		return nil
	}

	names := make([]string, 0, d.Len())
	for _, n := range d.nodes[1:] {
		names = append(names, n.Name)
	}
	tree, err := patricia.Generate(names)
	if err != nil {
		return errors.Wrap(errors.PhaseDict, errors.KindInvalidName, err, "rebuild trie")
	}

	for i, n := range d.nodes {
		p, ok := tree.Get(n.Name)
		if !ok {
			return errors.NotFound(errors.PhaseDict, "trie node", n.Name)
		}
		if i > 0 {
			n.RefBit = int32(p.RefBit)
		}
		n.Left = int16(p.Left.Index + 1)
		n.Right = int16(p.Right.Index + 1)
	}
	return nil
}

func (d *Dict[T]) restoreInsertionOrder() {
	pos := make(map[string]int, len(d.added))
	for i, name := range d.added {
		pos[name] = i
	}
	slices.SortStableFunc(d.nodes[1:], func(a, b *Node[T]) int {
		return cmp.Compare(pos[a.Name], pos[b.Name])
	})
}

func (d *Dict[T]) remove(name string) {
	d.nodes = slices.DeleteFunc(d.nodes, func(n *Node[T]) bool {
		return !n.sentinel && n.Name == name
	})
	d.added = slices.DeleteFunc(d.added, func(s string) bool { return s == name })
}
