package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/eventura/casstore/event"
)

// store is an in-memory commit store, mainly used in tests.
// Rows are keyed like the column store: one partition per
// (bounded context, aggregate ID), one row per revision.
// A re-append of an existing revision overwrites the row, last writer wins.
type store struct {
	mu sync.RWMutex
	// bounded context -> aggregate partition key -> revision -> commit
	db map[string]map[string]map[uint64]event.Commit
}

type EventStore interface {
	event.Store
}

var _ EventStore = &store{}

// NewEventStore returns an in-memory commit store.
//
// Unlike the column store it's not scoped to a single bounded context: Load
// merges the aggregate's rows from every bounded context. Aggregate IDs must
// not be reused across bounded contexts, otherwise the merged stream holds
// duplicate revisions and fails Stream.Validate.
func NewEventStore() EventStore {
	return &store{
		db: make(map[string]map[string]map[uint64]event.Commit),
	}
}

func (s *store) Append(ctx context.Context, c event.Commit) error {
	if err := c.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	part, ok := s.db[c.BoundedContext]
	if !ok {
		part = make(map[string]map[uint64]event.Commit)
		s.db[c.BoundedContext] = part
	}
	rows, ok := part[c.AggregateID.String()]
	if !ok {
		rows = make(map[uint64]event.Commit)
		part[c.AggregateID.String()] = rows
	}
	rows[c.Revision] = c

	return nil
}

// Load returns the aggregate's commit history ascending by revision,
// merged from the partitions of all bounded contexts.
func (s *store) Load(ctx context.Context, id event.AggregateID) (event.Stream, error) {
	if id.Empty() {
		return nil, event.Err(event.ErrLoadCommitFailed, id.String(), "empty aggregate ID")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stm := event.Stream{}
	for _, part := range s.db {
		rows, ok := part[id.String()]
		if !ok {
			continue
		}
		for _, c := range rows {
			stm = append(stm, c)
		}
	}
	sort.Slice(stm, func(a, b int) bool {
		return stm[a].Revision < stm[b].Revision
	})
	return stm, nil
}
