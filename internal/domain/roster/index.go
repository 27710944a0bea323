package roster

import "sync/atomic"

// Index is the in-memory lookup from participant display name to participant
// ID. Load replaces the whole index in a single pointer swap, so readers
// always observe either the previous roster or the new one, never a mix.
// Name comparison is exact: case- and whitespace-sensitive.
type Index struct {
	byName atomic.Pointer[map[string]int]
}

// NewIndex creates an empty Index. Lookups miss until Load is called.
func NewIndex() *Index {
	idx := &Index{}
	empty := map[string]int{}
	idx.byName.Store(&empty)
	return idx
}

// Load replaces the index with the given participants.
// PRE: participants is the full roster for the selected class
// POST: Lookup resolves exactly the given participants; prior entries are gone
// INVARIANT: readers never observe a partially built index
func (i *Index) Load(participants []Participant) {
	m := make(map[string]int, len(participants))
	for _, p := range participants {
		m[p.FullName] = p.ID
	}
	i.byName.Store(&m)
}

// Lookup resolves a display name to a participant ID.
// POST: ok is false when the name is not in the loaded roster
func (i *Index) Lookup(name string) (int, bool) {
	m := i.byName.Load()
	id, ok := (*m)[name]
	return id, ok
}

// Size returns the number of participants currently loaded.
func (i *Index) Size() int {
	return len(*i.byName.Load())
}
