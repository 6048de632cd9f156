// Package patricia builds the binary radix (PATRICIA) trie that backs CGFX
// dictionaries.
//
// Names are compared as bit strings after right-padding every name with NUL
// bytes to the length of the longest one. Bit b of a padded name is
//
//	(name[b/8] >> (b&7)) & 1
//
// and the trie is rooted at a sentinel whose reference bit is the highest
// addressable bit (width*8 - 1) and whose links point back to itself.
//
// Each inserted node stores the bit that separates its two subtrees. A link
// to a node with an equal or higher reference bit is an "upward" link and
// terminates a descent; the node reached that way is the only candidate match.
//
// Generate builds a tree from a name list; Find walks a serialized node table
// the way a runtime loader does.
package patricia
