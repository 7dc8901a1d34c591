package testutil

import (
	"reflect"
	"strconv"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/eventura/casstore/event"
	"github.com/google/uuid"
)

const (
	BoundedContext = "bank"
)

type AccountOpened struct {
	Owner string
}

type AmountDeposited struct {
	Amount int
}

// RegisterEvents registers the test domain events in the given namespace registry.
func RegisterEvents(namespace string) {
	event.NewRegister(namespace).
		Set(&AccountOpened{}).
		Set(&AmountDeposited{})
}

// GenAggregateID returns a fresh opaque aggregate identity.
func GenAggregateID() event.AggregateID {
	id := uuid.New()
	return event.AggregateID(id[:])
}

func GenEvts(count int) []interface{} {
	evts := make([]interface{}, count)
	for i := 0; i < count; i++ {
		var evt interface{}
		if i%2 == 0 {
			evt = &AmountDeposited{Amount: i * 10}
		} else {
			evt = &AccountOpened{Owner: "owner " + strconv.Itoa(i)}
		}
		evts[i] = evt
	}
	return evts
}

// GenCommits returns a valid commit stream for the given aggregate,
// revisions 1..count.
func GenCommits(id event.AggregateID, boundedContext string, count int) event.Stream {
	stm := make(event.Stream, count)
	for i := 0; i < count; i++ {
		stm[i] = event.Commit{
			AggregateID:    id,
			BoundedContext: boundedContext,
			Revision:       uint64(i + 1),
			At:             time.Now().UTC(),
			Events:         GenEvts(2),
		}
	}
	return stm
}

func FormatCommit(c event.Commit) string {
	return spew.Sdump(c)
}

func CmpCommit(c1, c2 event.Commit) bool {
	return c1.AggregateID.Equal(c2.AggregateID) &&
		c1.BoundedContext == c2.BoundedContext &&
		c1.Revision == c2.Revision &&
		c1.At.Equal(c2.At) &&
		reflect.DeepEqual(c1.Events, c2.Events)
}
