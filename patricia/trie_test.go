package patricia

import (
	"testing"

	"github.com/wippyai/cgfx/errors"
)

func permutations(names []string) [][]string {
	if len(names) <= 1 {
		return [][]string{append([]string(nil), names...)}
	}
	var out [][]string
	for i := range names {
		rest := make([]string, 0, len(names)-1)
		rest = append(rest, names[:i]...)
		rest = append(rest, names[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{names[i]}, p...))
		}
	}
	return out
}

// table serializes a tree the way a dictionary does: sentinel first, then
// one entry per name with links stored as Index+1.
func table(t *testing.T, names []string) []Entry {
	t.Helper()
	tree, err := Generate(names)
	if err != nil {
		t.Fatalf("Generate(%v): %v", names, err)
	}
	entries := make([]Entry, 0, len(names)+1)
	for _, name := range append([]string{""}, names...) {
		n, ok := tree.Get(name)
		if !ok {
			t.Fatalf("Get(%q) reported missing", name)
		}
		refbit := int32(n.RefBit)
		if name == "" {
			refbit = -1
		}
		entries = append(entries, Entry{
			Name:   name,
			RefBit: refbit,
			Left:   n.Left.Index + 1,
			Right:  n.Right.Index + 1,
		})
	}
	return entries
}

func TestNew(t *testing.T) {
	tree := New(6)
	if tree.Root.RefBit != 47 {
		t.Errorf("root refbit: got %d, want 47", tree.Root.RefBit)
	}
	if tree.Root.Left != tree.Root || tree.Root.Right != tree.Root {
		t.Error("root should link to itself")
	}
	if tree.Root.Index != RootIndex {
		t.Errorf("root index: got %d, want %d", tree.Root.Index, RootIndex)
	}
	for i, b := range tree.Root.Name {
		if b != 0 {
			t.Errorf("root name byte %d: got %d, want 0", i, b)
		}
	}
}

func TestGetAllOrders(t *testing.T) {
	sets := [][]string{
		{"a", "b"},
		{"bone_a", "bone_b", "bone_ab"},
		{"root", "mesh", "mesh_0", "m"},
		{"COLOR_0", "TEXCOORD_0", "POSITION", "NORMAL"},
		{"é", "e"},
		{"bone_é", "bone_a"},
		{"a\x80", "ab"},
	}
	for _, names := range sets {
		for _, order := range permutations(names) {
			tree, err := Generate(order)
			if err != nil {
				t.Fatalf("Generate(%v): %v", order, err)
			}
			for i, name := range order {
				n, ok := tree.Get(name)
				if !ok {
					t.Errorf("order %v: Get(%q) not found", order, name)
					continue
				}
				if n.Index != i {
					t.Errorf("order %v: Get(%q) index: got %d, want %d", order, name, n.Index, i)
				}
			}
		}
	}
}

func TestGetMissing(t *testing.T) {
	for _, order := range permutations([]string{"bone_a", "bone_b", "bone_ab"}) {
		tree, err := Generate(order)
		if err != nil {
			t.Fatal(err)
		}
		for _, name := range []string{"bone_c", "bone", "bone_abc_too_long", "x"} {
			if n, ok := tree.Get(name); ok {
				t.Errorf("order %v: Get(%q) matched %q", order, name, n.Name)
			}
		}
	}
}

func TestGetEmptyReturnsRoot(t *testing.T) {
	tree, err := Generate([]string{"a", "bc"})
	if err != nil {
		t.Fatal(err)
	}
	n, ok := tree.Get("")
	if !ok || n != tree.Root {
		t.Errorf("Get(\"\"): got %v/%v, want root", n, ok)
	}
}

func TestKnownLayout(t *testing.T) {
	entries := table(t, []string{"bone_a", "bone_b", "bone_ab"})
	want := []Entry{
		{Name: "", RefBit: -1, Left: 3, Right: 0},
		{Name: "bone_a", RefBit: 46, Left: 0, Right: 2},
		{Name: "bone_b", RefBit: 41, Left: 1, Right: 2},
		{Name: "bone_ab", RefBit: 54, Left: 1, Right: 3},
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestFind(t *testing.T) {
	for _, order := range permutations([]string{"bone_a", "bone_b", "bone_ab"}) {
		entries := table(t, order)
		for i, name := range order {
			idx, ok := Find(entries, name)
			if !ok || idx != i+1 {
				t.Errorf("order %v: Find(%q): got %d/%v, want %d", order, name, idx, ok, i+1)
			}
		}
		if idx, ok := Find(entries, "bone_c"); ok {
			t.Errorf("order %v: Find(bone_c) matched entry %d", order, idx)
		}
		if _, ok := Find(entries, ""); ok {
			t.Errorf("order %v: Find(\"\") should not match the sentinel", order)
		}
	}
}

func TestFindHighBitNames(t *testing.T) {
	for _, set := range [][]string{{"é", "e"}, {"bone_é", "bone_a"}, {"a\x80", "ab"}} {
		for _, order := range permutations(set) {
			entries := table(t, order)
			for i, name := range order {
				idx, ok := Find(entries, name)
				if !ok || idx != i+1 {
					t.Errorf("order %q: Find(%q): got %d/%v, want %d", order, name, idx, ok, i+1)
				}
			}
		}
	}
}

func TestFindMalformed(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{"empty", nil},
		{"sentinel only", []Entry{{RefBit: -1}}},
		{"link out of range", []Entry{{RefBit: -1, Left: 7}, {Name: "a", RefBit: 0}}},
		{"cycle", []Entry{{RefBit: -1, Left: 1}, {Name: "a", RefBit: 3, Left: 2, Right: 2}, {Name: "b", RefBit: 2, Left: 1, Right: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Find(tt.entries, "zz"); ok {
				t.Error("malformed table should not match")
			}
		})
	}
}

func TestAddRejects(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		kind  errors.Kind
	}{
		{"duplicate", []string{"a", "a"}, errors.KindDuplicateName},
		{"empty", []string{"a", ""}, errors.KindInvalidName},
		{"nul", []string{"a\x00b"}, errors.KindInvalidName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.names)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsKind(err, tt.kind) {
				t.Errorf("got %v, want kind %s", err, tt.kind)
			}
		})
	}
}

func TestAddTooLong(t *testing.T) {
	tree := New(2)
	if _, err := tree.Add("abc", 0); !errors.IsKind(err, errors.KindInvalidName) {
		t.Errorf("got %v, want invalid name", err)
	}
}
