// Package schema defines the CGFX record types: models, meshes, shapes,
// primitives, textures, lookup tables, lights, scene environments and
// animations.
//
// Every type implements record.Record or record.Fragment. Types that share a
// header embed it as a struct and concatenate its values explicitly:
//
//	Object      type, signature, revision, name, user data
//	Transform   node flags, animation groups, scale/rotation/translation,
//	            local and world matrices
//
// Shapes that depend on content (lists, optional channels, curve segments)
// are recomputed from current state on every Shape call.
package schema
