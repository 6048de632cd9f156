package dict

import (
	"fmt"
	"slices"
	"testing"

	"github.com/wippyai/cgfx/errors"
	"github.com/wippyai/cgfx/record"
	"github.com/wippyai/cgfx/shape"
)

type leaf struct {
	id int32
}

func (l *leaf) Shape() *shape.Shape    { return shape.MustParse("i") }
func (l *leaf) Values() []record.Value { return []record.Value{record.Int(l.id)} }

func permutations(names []string) [][]string {
	if len(names) <= 1 {
		return [][]string{slices.Clone(names)}
	}
	var out [][]string
	for i := range names {
		rest := slices.Concat(names[:i:i], names[i+1:])
		for _, p := range permutations(rest) {
			out = append(out, append([]string{names[i]}, p...))
		}
	}
	return out
}

func TestLookupAllOrders(t *testing.T) {
	for _, order := range []Order{OrderInsertion, OrderLengthDesc} {
		for _, names := range permutations([]string{"bone_a", "bone_b", "bone_ab"}) {
			d := New[*leaf](WithOrder(order))
			contents := map[string]*leaf{}
			for i, name := range names {
				contents[name] = &leaf{id: int32(i)}
				if err := d.Add(name, contents[name]); err != nil {
					t.Fatalf("Add(%q): %v", name, err)
				}
			}
			for _, name := range names {
				got, ok := d.Lookup(name)
				if !ok || got != contents[name] {
					t.Errorf("order %d %v: Lookup(%q): got %v/%v, want %v", order, names, name, got, ok, contents[name])
				}
			}
			if got, ok := d.Lookup("bone_c"); ok {
				t.Errorf("order %d %v: Lookup(bone_c) matched %v", order, names, got)
			}
		}
	}
}

func TestSentinel(t *testing.T) {
	d := New[*leaf]()
	if d.Len() != 0 || len(d.Nodes()) != 1 {
		t.Fatalf("empty dict: Len %d, nodes %d", d.Len(), len(d.Nodes()))
	}
	for _, name := range []string{"a", "b", "c"} {
		if err := d.Add(name, &leaf{}); err != nil {
			t.Fatal(err)
		}
	}
	s := d.Nodes()[0]
	if s.RefBit != -1 || s.Name != "" {
		t.Errorf("sentinel: refbit %d name %q, want -1 and empty", s.RefBit, s.Name)
	}
	values := s.Values()
	if !values[4].IsNull() {
		t.Errorf("sentinel content: got %v, want null", values[4])
	}
}

func TestKnownLinks(t *testing.T) {
	d := New[*leaf]()
	for _, name := range []string{"bone_a", "bone_b", "bone_ab"} {
		if err := d.Add(name, &leaf{}); err != nil {
			t.Fatal(err)
		}
	}
	want := []struct {
		refbit      int32
		left, right int16
	}{
		{-1, 3, 0},
		{46, 0, 2},
		{41, 1, 2},
		{54, 1, 3},
	}
	for i, n := range d.Nodes() {
		if n.RefBit != want[i].refbit || n.Left != want[i].left || n.Right != want[i].right {
			t.Errorf("node %d: got (%d, %d, %d), want %+v", i, n.RefBit, n.Left, n.Right, want[i])
		}
	}
}

func TestGetIndexNames(t *testing.T) {
	d := New[*leaf]()
	a, b := &leaf{id: 1}, &leaf{id: 2}
	if err := d.Add("first", a); err != nil {
		t.Fatal(err)
	}
	if err := d.Add("second", b); err != nil {
		t.Fatal(err)
	}

	if got, ok := d.Get("second"); !ok || got != b {
		t.Errorf("Get(second): got %v/%v", got, ok)
	}
	if _, ok := d.Get("third"); ok {
		t.Error("Get(third) should miss")
	}
	if idx, ok := d.Index("second"); !ok || idx != 1 {
		t.Errorf("Index(second): got %d/%v, want 1", idx, ok)
	}
	if _, ok := d.Index(""); ok {
		t.Error("Index should not report the sentinel")
	}
	if got := d.Names(); !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("Names: got %v", got)
	}

	var seen []string
	for name := range d.All() {
		seen = append(seen, name)
	}
	if !slices.Equal(seen, []string{"first", "second"}) {
		t.Errorf("All: got %v", seen)
	}
}

func TestLengthDescOrder(t *testing.T) {
	d := New[*leaf](WithOrder(OrderLengthDesc))
	for _, name := range []string{"b", "ccc", "aa", "a"} {
		if err := d.Add(name, &leaf{}); err != nil {
			t.Fatal(err)
		}
	}
	var stored []string
	for _, n := range d.Nodes()[1:] {
		stored = append(stored, n.Name)
	}
	if !slices.Equal(stored, []string{"ccc", "aa", "a", "b"}) {
		t.Errorf("stored order: got %v", stored)
	}
	if got := d.Names(); !slices.Equal(got, []string{"b", "ccc", "aa", "a"}) {
		t.Errorf("Names should keep insertion order: got %v", got)
	}
	if idx, _ := d.Index("ccc"); idx != 0 {
		t.Errorf("Index(ccc): got %d, want 0", idx)
	}

	if err := d.Configure(WithOrder(OrderInsertion)); err != nil {
		t.Fatal(err)
	}
	if idx, _ := d.Index("ccc"); idx != 1 {
		t.Errorf("after Configure, Index(ccc): got %d, want 1", idx)
	}
}

func TestAddRejects(t *testing.T) {
	d := New[*leaf]()
	if err := d.Add("a", &leaf{}); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		kind errors.Kind
	}{
		{"a", errors.KindDuplicateName},
		{"", errors.KindInvalidName},
		{"x\x00y", errors.KindInvalidName},
	}
	for _, tt := range tests {
		if err := d.Add(tt.name, &leaf{}); !errors.IsKind(err, tt.kind) {
			t.Errorf("Add(%q): got %v, want %s", tt.name, err, tt.kind)
		}
	}
	if d.Len() != 1 {
		t.Errorf("rejected adds changed Len to %d", d.Len())
	}
}

func TestShapeAndValues(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option
		sectionSize int64
	}{
		{"reported", nil, 12 + 16*3},
		{"zero", []Option{WithSectionSize(false)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New[*leaf](tt.opts...)
			_ = d.Add("x", &leaf{})
			_ = d.Add("y", &leaf{})

			if got := d.Shape().Size(); got != 12+16*3 {
				t.Errorf("size: got %d, want %d", got, 12+16*3)
			}
			values := d.Values()
			if values[0].AsString() != "DICT" {
				t.Errorf("signature: got %q", values[0].AsString())
			}
			if values[1].AsInt() != tt.sectionSize {
				t.Errorf("section size: got %d, want %d", values[1].AsInt(), tt.sectionSize)
			}
			if values[2].AsInt() != 2 {
				t.Errorf("count: got %d, want 2", values[2].AsInt())
			}
			if len(values) != 3+3 {
				t.Errorf("values: got %d, want 6", len(values))
			}
		})
	}
}

func TestInfo(t *testing.T) {
	info := NewInfo[*leaf]()
	values := info.Values()
	if values[0].AsInt() != 0 || !values[1].IsNull() {
		t.Errorf("empty info: got %v", values)
	}
	if err := info.Add("m", &leaf{}); err != nil {
		t.Fatal(err)
	}
	values = info.Values()
	if values[0].AsInt() != 1 || values[1].Kind() != record.KindOwned {
		t.Errorf("info: got %v", values)
	}
	if info.Len() != 1 {
		t.Errorf("Len: got %d", info.Len())
	}
}

func TestLookupHighBitNames(t *testing.T) {
	sets := [][]string{
		{"é", "e"},
		{"bone_é", "bone_a"},
		{"a\x80", "ab"},
		{"bone_é", "bone_a", "bone_b", "ñ"},
	}
	for _, order := range []Order{OrderInsertion, OrderLengthDesc} {
		for _, set := range sets {
			for _, names := range permutations(set) {
				d := New[*leaf](WithOrder(order))
				for i, n := range names {
					if err := d.Add(n, &leaf{id: int32(i)}); err != nil {
						t.Fatalf("order %d %q: Add(%q): %v", order, names, n, err)
					}
				}
				for i, n := range names {
					got, ok := d.Lookup(n)
					if !ok || got.id != int32(i) {
						t.Errorf("order %d %q: Lookup(%q): got %v, %v", order, names, n, got, ok)
					}
				}
				if _, ok := d.Lookup("zz"); ok {
					t.Errorf("order %d %q: Lookup(zz) should miss", order, names)
				}
			}
		}
	}
}

func TestEntryLimit(t *testing.T) {
	fill := func(n int) *Dict[*leaf] {
		d := New[*leaf]()
		for i := range n {
			name := fmt.Sprintf("n%05d", i)
			d.nodes = append(d.nodes, &Node[*leaf]{Name: name, Content: &leaf{}})
			d.added = append(d.added, name)
		}
		return d
	}

	d := fill(MaxEntries - 1)
	if err := d.Add("last", &leaf{}); err != nil {
		t.Fatalf("Add at the limit: %v", err)
	}
	if _, ok := d.Lookup("last"); !ok {
		t.Error("Lookup(last) should hit")
	}
	for _, n := range d.Nodes() {
		if n.Left < 0 || n.Right < 0 {
			t.Fatalf("node %q: negative link %d/%d", n.Name, n.Left, n.Right)
		}
	}

	if err := d.Add("over", &leaf{}); !errors.IsKind(err, errors.KindOverflow) {
		t.Errorf("Add past the limit: got %v, want overflow", err)
	}
	if d.Len() != MaxEntries {
		t.Errorf("rejected add changed Len to %d", d.Len())
	}
	if _, ok := d.Get("over"); ok {
		t.Error("rejected entry is still stored")
	}
}
