package patricia

// Entry is one serialized trie node as stored in a dictionary table. Entry 0 is
// the sentinel; Left and Right index into the same table.
type Entry struct {
	Name   string
	RefBit int32
	Left   int
	Right  int
}

// Find walks a stored node table the way the runtime loader does and returns
// the table index of name. Reference bits are compared unsigned, which makes
// the sentinel's -1 the largest value.
func Find(entries []Entry, name string) (int, bool) {
	if len(entries) < 2 || name == "" {
		return 0, false
	}
	key := []byte(name)

	current := 0
	next := entries[0].Left
	for steps := 0; steps <= len(entries); steps++ {
		if next < 0 || next >= len(entries) {
			return 0, false
		}
		if uint32(entries[current].RefBit) <= uint32(entries[next].RefBit) {
			break
		}
		current = next
		e := entries[current]
		if getBit(key, int(e.RefBit)) {
			next = e.Right
		} else {
			next = e.Left
		}
	}
	if next == 0 || entries[next].Name != name {
		return 0, false
	}
	return next, true
}
