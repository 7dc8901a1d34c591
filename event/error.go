package event

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCommit      = errors.New("invalid commit")
	ErrInvalidStream      = errors.New("invalid commit stream")
	ErrInvalidAggregateID = errors.New("invalid aggregate ID")

	// ErrAppendCommitFailed presents any store failure of the append path
	// other than a write timeout.
	ErrAppendCommitFailed = errors.New("append commit failure")

	// ErrAppendTimeout occurs when the store fails to satisfy the write
	// consistency level in time. The write may or may not be durable.
	ErrAppendTimeout = errors.New("append commit timeout")

	// ErrLoadCommitFailed presents any store failure of the load path.
	// Load failures are never swallowed, an empty stream is not an error.
	ErrLoadCommitFailed = errors.New("load commits failure")
)

func Err(err error, aggregateID string, extra ...interface{}) error {
	return fmt.Errorf("%w: aggregate=%s extra=%v", err, aggregateID, extra)
}
