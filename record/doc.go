// Package record implements the CGFX layout engine.
//
// A Record is a graph node with its own placed byte region. A Fragment is
// embedded in its owner's byte range. Both describe themselves through two
// separate methods:
//
//	Shape()   the byte layout, computed from current state
//	Values()  the field values, in slot order
//
// The engine flattens inlined fragments, checks that the flattened value
// count matches the shape's slot count, and reports a shape mismatch
// otherwise.
//
// Serialization is two-pass. Place assigns absolute offsets depth-first in
// field order and registers strings and blobs with their pools. After the
// pools are finalized, Write packs every record with its pointers patched to
// relative offsets and recurses into owned records in the same order.
//
// Weak references (a mesh pointing back at its model) go through an Arena:
// the referring record stores an ID and the engine resolves it from the
// placement table at write time.
package record
