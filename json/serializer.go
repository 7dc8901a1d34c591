package json

import (
	"encoding/json"
	"log"
	"time"

	"github.com/eventura/casstore/event"
)

// jsonDomainEvent is the wire form of a single domain event within a commit payload.
type jsonDomainEvent struct {
	FType string          `json:"Type"`
	FRaw  json.RawMessage `json:"Data"`
}

// jsonCommit is the wire form of a commit payload.
// The aggregate ID is kept in its reversible base64 text form.
type jsonCommit struct {
	FID       string            `json:"ID"`
	FContext  string            `json:"Ctx"`
	FRevision uint64            `json:"Rev"`
	FAt       int64             `json:"At"`
	FEvents   []jsonDomainEvent `json:"Events,omitempty"`
}

// commitSerializer implements the event.Serializer interface.
// It uses json serialization and is based on the event registry
// to restore typed domain events on decode.
type commitSerializer struct {
	eventRegistry event.Register
}

// NewCommitSerializer returns a json commit serializer
func NewCommitSerializer(namespace string) event.Serializer {
	return &commitSerializer{
		eventRegistry: event.NewRegister(namespace),
	}
}

var _ event.Serializer = &commitSerializer{}

func (s *commitSerializer) CommitFormat() event.CommitFormat {
	return event.CommitFormatJSON
}

func (s *commitSerializer) ContentType() string {
	return "application/json"
}

func (s *commitSerializer) MarshalCommit(c event.Commit) (b []byte, err error) {
	defer func() {
		if err != nil {
			err = event.Err(event.ErrMarshalCommitFailed, c.AggregateID.String(), err)
		}
	}()
	if c.AggregateID.Empty() {
		err = event.ErrMarshalEmptyCommit
		return
	}
	jc := jsonCommit{
		FID:       c.AggregateID.String(),
		FContext:  c.BoundedContext,
		FRevision: c.Revision,
		FAt:       c.At.UnixNano(),
		FEvents:   make([]jsonDomainEvent, len(c.Events)),
	}
	for i, evt := range c.Events {
		var data []byte
		data, err = json.Marshal(evt)
		if err != nil {
			return
		}
		jc.FEvents[i] = jsonDomainEvent{
			FType: event.TypeOf(evt),
			FRaw:  json.RawMessage(data),
		}
	}
	b, err = json.Marshal(jc)
	return
}

func (s *commitSerializer) UnmarshalCommit(b []byte) (c event.Commit, err error) {
	defer func() {
		if err != nil {
			err = event.Err(event.ErrUnmarshalCommitFailed, c.AggregateID.String(), err)
		}
	}()
	jc := jsonCommit{}
	if err = json.Unmarshal(b, &jc); err != nil {
		return
	}
	id, err := event.ParseAggregateID(jc.FID)
	if err != nil {
		return
	}
	c = event.Commit{
		AggregateID:    id,
		BoundedContext: jc.FContext,
		Revision:       jc.FRevision,
		At:             time.Unix(0, jc.FAt),
		Events:         make([]interface{}, len(jc.FEvents)),
	}
	for i, jevt := range jc.FEvents {
		evt, rerr := s.eventRegistry.Get(jevt.FType)
		if rerr != nil {
			// tolerate unknown event types, the commit metadata remains usable
			log.Println(event.Err(rerr, c.AggregateID.String()))
			continue
		}
		if uerr := json.Unmarshal(jevt.FRaw, evt); uerr != nil {
			err = uerr
			return
		}
		c.Events[i] = evt
	}
	return
}
