// Package dict implements CGFX dictionaries: named, trie-indexed collections
// of records.
//
// A Dict serializes as a DICT record:
//
//	"DICT"  signature
//	int32   section size
//	int32   entry count
//	node*   one 16 byte node per entry, sentinel first
//
// Each node holds a reference bit, left and right node indices, a pointer to
// its name and a pointer to its content. Node 0 is a sentinel with an empty
// name and no content. Every insertion rebuilds the trie over all names and
// copies the resulting bits and links back onto the nodes.
//
// Info is the inline (count, pointer) pair that owners embed to reference a
// dictionary; the pointer is null when the dictionary is empty.
package dict
