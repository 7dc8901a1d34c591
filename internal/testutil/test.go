package testutil

import (
	"context"
	"testing"

	"github.com/eventura/casstore/event"
)

// StoreTest runs the commit store conformance suite against the given store.
func StoreTest(t *testing.T, ctx context.Context, store event.Store) {
	RegisterEvents("")

	t.Run("test commit store", func(t *testing.T) {
		id := GenAggregateID()

		// test load of an aggregate with no history
		stm, err := store.Load(ctx, id)
		if err != nil {
			t.Fatalf("expect to load empty history, got err: %v", err)
		}
		if !stm.Empty() {
			t.Fatalf("expect empty stream, got: %d commits", len(stm))
		}

		// test append commits
		commits := GenCommits(id, BoundedContext, 10)
		for _, c := range commits {
			if err := store.Append(ctx, c); err != nil {
				t.Fatalf("expect to append commit rev %d, got err: %v", c.Revision, err)
			}
		}

		// test load appended commits
		stm, err = store.Load(ctx, id)
		if err != nil {
			t.Fatalf("expect to load commits, got err: %v", err)
		}
		if l := len(stm); l != 10 {
			t.Fatalf("invalid loaded stream length, must be %d got: %d", 10, l)
		}
		if err := stm.Validate(); err != nil {
			t.Fatalf("expect loaded stream be ordered, got err: %v", err)
		}

		// test data integrity
		for i, c := range commits {
			if !CmpCommit(c, stm[i]) {
				t.Fatalf("commit %d data altered %v %v", i, FormatCommit(c), FormatCommit(stm[i]))
			}
		}

		// test idempotent re-append: last writer wins, no duplication
		over := commits[4]
		over.Events = GenEvts(1)
		if err := store.Append(ctx, over); err != nil {
			t.Fatalf("expect to re-append commit, got err: %v", err)
		}
		stm, err = store.Load(ctx, id)
		if err != nil {
			t.Fatalf("expect to load commits, got err: %v", err)
		}
		if l := len(stm); l != 10 {
			t.Fatalf("invalid loaded stream length, must be %d got: %d", 10, l)
		}
		if !CmpCommit(over, stm[4]) {
			t.Fatalf("expect rev %d hold the overwritten commit %v %v",
				over.Revision, FormatCommit(over), FormatCommit(stm[4]))
		}

		// test append of an invalid commit
		if err := store.Append(ctx, event.Commit{}); err == nil {
			t.Fatal("expect invalid commit err, got nil")
		}
	})
}
