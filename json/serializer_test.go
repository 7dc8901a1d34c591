package json

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/eventura/casstore/event"
)

type accountOpened struct{ Owner string }
type amountDeposited struct{ Amount int }

// interestAccrued is deliberately never registered
type interestAccrued struct{ Rate float64 }

func TestCommitSerializer(t *testing.T) {
	ser := NewCommitSerializer("")
	event.NewRegister("").
		Set(&accountOpened{}).
		Set(&amountDeposited{})

	c := event.Commit{
		AggregateID:    event.AggregateID("acc-25"),
		BoundedContext: "bank",
		Revision:       3,
		At:             time.Now().UTC(),
		Events: []interface{}{
			&accountOpened{Owner: "jo"},
			&amountDeposited{Amount: 50},
		},
	}

	b, err := ser.MarshalCommit(c)
	if err != nil {
		t.Fatalf("expect to marshal commit, got err: %v", err)
	}

	rc, err := ser.UnmarshalCommit(b)
	if err != nil {
		t.Fatalf("expect to unmarshal commit, got err: %v", err)
	}

	if !rc.AggregateID.Equal(c.AggregateID) {
		t.Fatalf("expect aggregate ID be %v, got %v", c.AggregateID, rc.AggregateID)
	}
	if rc.BoundedContext != c.BoundedContext {
		t.Fatalf("expect bounded context be %s, got %s", c.BoundedContext, rc.BoundedContext)
	}
	if rc.Revision != c.Revision {
		t.Fatalf("expect revision be %d, got %d", c.Revision, rc.Revision)
	}
	if !rc.At.Equal(c.At) {
		t.Fatalf("expect timestamp be %v, got %v", c.At, rc.At)
	}
	if !reflect.DeepEqual(rc.Events, c.Events) {
		t.Fatalf("commit events altered %v %v", rc.Events, c.Events)
	}
}

func TestCommitSerializer_MarshalEmpty(t *testing.T) {
	ser := NewCommitSerializer("")

	if _, err := ser.MarshalCommit(event.Commit{}); !errors.Is(err, event.ErrMarshalCommitFailed) {
		t.Fatalf("expect marshal commit err, got: %v", err)
	}
}

func TestCommitSerializer_UnmarshalMalformed(t *testing.T) {
	ser := NewCommitSerializer("")

	if _, err := ser.UnmarshalCommit([]byte(`{"ID": 42`)); !errors.Is(err, event.ErrUnmarshalCommitFailed) {
		t.Fatalf("expect unmarshal commit err, got: %v", err)
	}
	if _, err := ser.UnmarshalCommit([]byte(`{"ID": "%%"}`)); !errors.Is(err, event.ErrUnmarshalCommitFailed) {
		t.Fatalf("expect unmarshal commit err, got: %v", err)
	}
}

func TestCommitSerializer_UnknownEventType(t *testing.T) {
	ser := NewCommitSerializer("")

	c := event.Commit{
		AggregateID:    event.AggregateID("acc-26"),
		BoundedContext: "bank",
		Revision:       1,
		At:             time.Now().UTC(),
		Events:         []interface{}{&interestAccrued{Rate: 0.5}},
	}
	b, err := ser.MarshalCommit(c)
	if err != nil {
		t.Fatalf("expect to marshal commit, got err: %v", err)
	}

	rc, err := ser.UnmarshalCommit(b)
	if err != nil {
		t.Fatalf("expect to unmarshal commit despite unknown event type, got err: %v", err)
	}
	if l := len(rc.Events); l != 1 {
		t.Fatalf("expect events count be %d, got %d", 1, l)
	}
	if rc.Events[0] != nil {
		t.Fatalf("expect unknown event data be nil, got %v", rc.Events[0])
	}
}
