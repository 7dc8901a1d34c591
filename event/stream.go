package event

// Stream presents the ordered commit history of a single aggregate instance,
// ascending by revision. It's produced fresh on every load and not cached.
type Stream []Commit

// Empty returns true if the stream has no commits.
// An empty stream is the valid result of loading an aggregate with no history.
func (stm Stream) Empty() bool {
	return len(stm) == 0
}

// Revisions returns the commits revisions in stream order.
func (stm Stream) Revisions() []uint64 {
	revs := make([]uint64, len(stm))
	for i, c := range stm {
		revs[i] = c.Revision
	}
	return revs
}

// Events unwraps the commits and returns the flattened domain events of the stream.
func (stm Stream) Events() []interface{} {
	evts := make([]interface{}, 0, len(stm))
	for _, c := range stm {
		evts = append(evts, c.Events...)
	}
	return evts
}

// Validate makes sure the stream revisions are strictly ascending
// and all commits belong to the same aggregate.
func (stm Stream) Validate() error {
	if stm.Empty() {
		return nil
	}
	id := stm[0].AggregateID
	last := uint64(0)
	for _, c := range stm {
		if !c.AggregateID.Equal(id) {
			return Err(ErrInvalidStream, id.String(), "foreign aggregate ID: "+c.AggregateID.String())
		}
		if c.Revision <= last {
			return Err(ErrInvalidStream, id.String(), "revision out of order", last, c.Revision)
		}
		last = c.Revision
	}
	return nil
}
