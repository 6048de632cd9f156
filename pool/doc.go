// Package pool implements the deduplicated string and blob pools that follow
// the record data in a CGFX file.
//
// Values are accumulated during layout with Add, placed once with Finalize and
// dumped with Bytes. A Text pool stores NUL-terminated strings; a Binary pool
// stores blobs padded to the configured alignment. Deduplication happens after
// padding, so two values that pad to the same bytes share one copy.
//
// Two tail rules exist:
//
//	TailHalfBlock  pad so the pool ends 8 bytes past a 16-byte boundary
//	TailWord       pad with 4 - total%4 bytes (1 to 4)
//
// Offset reports an absolute file offset and is only valid after Finalize.
package pool
