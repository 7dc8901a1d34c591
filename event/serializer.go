package event

import "errors"

type CommitFormat string

const (
	CommitFormatJSON = CommitFormat("JSON")
)

var (
	ErrMarshalCommitFailed   = errors.New("marshal commit failed")
	ErrMarshalEmptyCommit    = errors.New("commit to marshal is empty")
	ErrUnmarshalCommitFailed = errors.New("unmarshal commit failed")
)

// Serializer provides a standard encoding/decoding interface for commits.
// The commit payload written to the store is exactly the serializer output,
// the storage layer treats it as opaque bytes.
type Serializer interface {
	// CommitFormat returns the serializer supported format.
	CommitFormat() CommitFormat

	// MarshalCommit returns the opaque binary payload of the commit.
	// It fails with ErrMarshalCommitFailed if the underlying encoder does.
	MarshalCommit(c Commit) ([]byte, error)

	// UnmarshalCommit restores a commit from its binary payload.
	// Domain events whose type is not found in the registry are restored
	// without typed data rather than failing the whole commit.
	UnmarshalCommit(b []byte) (Commit, error)

	// ContentType returns the MIME type of the serialized commit, ex: application/json
	ContentType() string
}
