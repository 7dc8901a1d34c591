package event

import (
	"context"
)

// Publisher forwards appended commits to an external destination, e.g. a message bus.
type Publisher interface {
	Publish(ctx context.Context, c Commit) error
}
