package patricia

import (
	"bytes"
	"strings"

	"github.com/wippyai/cgfx/errors"
)

// RootIndex is the entry index of the root sentinel. Dictionary links are
// stored as Index+1, so links to the root become 0.
const RootIndex = -1

// Node is a branch/leaf of the trie.
type Node struct {
	Left   *Node
	Right  *Node
	Name   []byte
	RefBit int
	Index  int
}

// Tree is a PATRICIA trie over fixed-width padded names.
type Tree struct {
	Root  *Node
	Width int
}

// New creates an empty tree for names of at most width bytes.
func New(width int) *Tree {
	root := &Node{
		RefBit: width*8 - 1,
		Index:  RootIndex,
		Name:   make([]byte, width),
	}
	root.Left = root
	root.Right = root
	return &Tree{Root: root, Width: width}
}

// Generate builds a tree from names, assigning each its position as Index.
func Generate(names []string) (*Tree, error) {
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}
	t := New(width)
	for i, n := range names {
		if _, err := t.Add(n, i); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add inserts name with the given entry index.
func (t *Tree) Add(name string, index int) (*Node, error) {
	if err := t.checkName(name); err != nil {
		return nil, err
	}
	key := t.pad(name)

	current := t.Root
	next := current.Left
	for t.descends(current, next) {
		current = next
		next = current.child(key)
	}

	bit := t.Width*8 - 1
	for bit >= 0 && getBit(next.Name, bit) == getBit(key, bit) {
		bit--
	}
	if bit < 0 {
		return nil, errors.DuplicateName(errors.PhaseTrie, name)
	}

	current = t.Root
	next = current.Left
	for t.descends(current, next) && next.RefBit > bit {
		current = next
		next = current.child(key)
	}

	n := &Node{Name: key, Index: index, RefBit: bit}
	if getBit(key, bit) {
		n.Left = next
		n.Right = n
	} else {
		n.Left = n
		n.Right = next
	}
	// the root only ever links downward through Left
	if current != t.Root && getBit(key, current.RefBit) {
		current.Right = n
	} else {
		current.Left = n
	}
	return n, nil
}

// Get returns the node holding name. The root sentinel is returned for the
// empty name. A name that was never inserted reports false.
func (t *Tree) Get(name string) (*Node, bool) {
	if len(name) > t.Width {
		return nil, false
	}
	key := t.pad(name)
	if bytes.Equal(t.Root.Name, key) {
		return t.Root, true
	}

	current := t.Root
	next := current.Left
	for t.descends(current, next) {
		current = next
		next = current.child(key)
	}
	if !bytes.Equal(next.Name, key) {
		return nil, false
	}
	return next, true
}

// descends reports whether the walk from current continues to next. The root
// ranks above every node, including ones that share its reference bit.
func (t *Tree) descends(current, next *Node) bool {
	if current == t.Root {
		return next != t.Root
	}
	return current.RefBit > next.RefBit
}

func (t *Tree) checkName(name string) error {
	if name == "" {
		return errors.InvalidName(errors.PhaseTrie, name, "empty names collide with the root sentinel")
	}
	if strings.IndexByte(name, 0) >= 0 {
		return errors.InvalidName(errors.PhaseTrie, name, "names cannot contain NUL bytes")
	}
	if len(name) > t.Width {
		return errors.InvalidName(errors.PhaseTrie, name, "longer than the tree width")
	}
	return nil
}

func (t *Tree) pad(name string) []byte {
	key := make([]byte, t.Width)
	copy(key, name)
	return key
}

func (n *Node) child(key []byte) *Node {
	if getBit(key, n.RefBit) {
		return n.Right
	}
	return n.Left
}

func getBit(name []byte, bit int) bool {
	if bit < 0 || bit/8 >= len(name) {
		return false
	}
	return (name[bit/8]>>(bit&7))&1 != 0
}
