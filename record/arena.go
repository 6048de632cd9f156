package record

// ID identifies a record in an Arena. The zero ID is the null reference.
type ID uint32

// Arena stores records so others can refer to them by ID instead of by
// pointer.
type Arena struct {
	ids     map[Record]ID
	records []Record
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{ids: make(map[Record]ID)}
}

// Add stores r and returns its ID. Adding the same record again returns the
// existing ID; a nil record returns 0.
func (a *Arena) Add(r Record) ID {
	if isNil(r) {
		return 0
	}
	if id, ok := a.ids[r]; ok {
		return id
	}
	a.records = append(a.records, r)
	id := ID(len(a.records))
	a.ids[r] = id
	return id
}

// Get returns the record with the given ID.
func (a *Arena) Get(id ID) (Record, bool) {
	if id == 0 || int(id) > len(a.records) {
		return nil, false
	}
	return a.records[id-1], true
}

// Len returns the number of stored records.
func (a *Arena) Len() int {
	return len(a.records)
}
