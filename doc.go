// Package cgfx writes CGFX scene-graph files.
//
// A CGFX file is one contiguous little-endian buffer:
//
//	[file header][DATA section: header + 15 dictionaries + record data]
//	[string pool][optional "IMAG" block: tag + size + blob pool]
//
// Every internal pointer is a signed 32-bit offset relative to the
// structure holding it. Records are laid out depth-first in field order,
// strings and blobs are deduplicated into pools that follow the record
// data, and every named collection is a DICT record indexed by a PATRICIA
// trie so the runtime can look entries up by name.
//
// # Architecture Overview
//
//	cgfx/              File model, Encode pipeline, Parse read-back
//	├── record/        Record/Fragment contracts and the layout engine
//	├── dict/          DICT records and their inline Info references
//	├── patricia/      PATRICIA trie builder and table walk
//	├── pool/          deduplicated string and blob pools
//	├── shape/         byte layouts of records
//	├── schema/        model, mesh, texture, lookup table and animation records
//	└── errors/        structured error types
//
// # Quick Start
//
//	f := cgfx.NewFile()
//	model := schema.NewModel("box")
//	if err := f.Add(cgfx.Models, "box", model); err != nil {
//	    log.Fatal(err)
//	}
//
//	data, err := cgfx.Encode(f)
//	if errors.IsOversize(err) {
//	    log.Printf("warning: %v", err) // data is still usable
//	} else if err != nil {
//	    log.Fatal(err)
//	}
//
// # Profiles
//
// Two variants of the format quirks exist. ProfileStandard keeps dictionary
// entries in insertion order, reports DICT section sizes, pads blobs to 16
// bytes and ends pools 8 bytes past a 16 byte boundary. ProfileLegacy sorts
// dictionary entries by descending name length, writes zero section sizes,
// pads blobs to 128 bytes and pads pools to a 4 byte boundary.
package cgfx
