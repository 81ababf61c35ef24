package project

// Index is a keyed lookup of projects by ID, built once per run for the
// workload join.
type Index map[int64]Project

// NewIndex builds an index in one pass. Duplicate IDs should not occur, but
// if they do the last one wins rather than failing.
func NewIndex(projects []Project) Index {
	idx := make(Index, len(projects))
	for _, p := range projects {
		idx[p.ID] = p
	}
	return idx
}

// Get returns the project for id, if present.
func (idx Index) Get(id int64) (Project, bool) {
	p, ok := idx[id]
	return p, ok
}
