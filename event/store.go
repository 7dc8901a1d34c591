package event

import (
	"context"
)

// Store presents the aggregate commit store.
// Implementations must be safe for concurrent use, ordering of appends for
// the same aggregate remains the caller's responsibility: the store performs
// no optimistic revision check, concurrent writes of the same
// (aggregate, revision) race and the last writer wins.
type Store interface {
	// Append records the given commit.
	// Durability of the write depends on the implementation's timeout policy.
	Append(ctx context.Context, c Commit) error

	// Load returns the full, revision-ordered commit history of the aggregate.
	// An aggregate with no recorded history yields an empty stream, not an error.
	Load(ctx context.Context, id AggregateID) (Stream, error)
}

// ContextResolver resolves the bounded context owning the given aggregate.
// It only serves the transitional load path of stores that predate
// per-bounded-context wiring.
type ContextResolver func(id AggregateID) string
