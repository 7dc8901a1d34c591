package event

import (
	"bytes"
	"encoding/base64"
	"time"
)

// AggregateID presents the opaque byte identity of an aggregate instance.
// Its text form, used as the store partition key, is a reversible base64 encoding.
type AggregateID []byte

// String returns the base64 text form of the aggregate ID.
func (id AggregateID) String() string {
	return base64.StdEncoding.EncodeToString(id)
}

// Empty returns true if the aggregate ID has no bytes.
func (id AggregateID) Empty() bool {
	return len(id) == 0
}

// Equal compares two aggregate IDs byte-wise.
func (id AggregateID) Equal(other AggregateID) bool {
	return bytes.Equal(id, other)
}

// ParseAggregateID restores an aggregate ID from its base64 text form,
// e.g. a partition key value read back from the store.
func ParseAggregateID(str string) (AggregateID, error) {
	b, err := base64.StdEncoding.DecodeString(str)
	if err != nil {
		return nil, Err(ErrInvalidAggregateID, str, err)
	}
	return AggregateID(b), nil
}

// Commit presents a single durable unit of change of an aggregate instance:
// the batch of domain events recorded at a given revision.
// (BoundedContext, AggregateID, Revision) uniquely identifies a commit.
// Commits are immutable once appended, re-appending the same key silently
// overwrites the previous row.
type Commit struct {
	// AggregateID identifies the aggregate instance, it's the partition key source.
	AggregateID AggregateID

	// BoundedContext names the logical domain the commit belongs to.
	// It determines the physical table the commit is stored in.
	BoundedContext string

	// Revision is the caller-assigned, per-aggregate ascending sequence number.
	// It's the clustering key of the commit row.
	Revision uint64

	// At is the commit creation time. Informational, not used for ordering.
	At time.Time

	// Events holds the domain events recorded by the commit.
	// They are opaque to the storage layer.
	Events []interface{}
}

// Validate makes sure the commit is well-formed enough to be appended.
func (c Commit) Validate() error {
	if c.AggregateID.Empty() {
		return Err(ErrInvalidCommit, "", "empty aggregate ID")
	}
	if c.BoundedContext == "" {
		return Err(ErrInvalidCommit, c.AggregateID.String(), "empty bounded context")
	}
	if c.Revision == 0 {
		return Err(ErrInvalidCommit, c.AggregateID.String(), "zero revision")
	}
	return nil
}
