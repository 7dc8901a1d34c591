package nats

import (
	"context"
	"errors"

	"github.com/eventura/casstore/event"
	"github.com/eventura/casstore/json"
	"github.com/nats-io/nats.go"
)

const (
	msgIDHeader = "Nats-Msg-Id"
)

var (
	ErrPublishCommitFailed = errors.New("publish commit failed")
)

// ConnAPI presents the narrow surface of the NATS connection consumed by the publisher.
type ConnAPI interface {
	PublishMsg(msg *nats.Msg) error
}

type PublisherConfig struct {
	// Serializer encodes the published commit payload.
	Serializer event.Serializer

	// SubjectPrefix prefixes the bounded context in the publish subject:
	// {prefix}.{boundedContext}
	SubjectPrefix string
}

type publisher struct {
	conn ConnAPI

	*PublisherConfig
}

var _ event.Publisher = &publisher{}

// NewPublisher returns a commit publisher on top of NATS.
// Commits are published to the subject {prefix}.{boundedContext}, with a
// unique message ID header for consumer-side deduplication.
// It panics if the connection is nil.
func NewPublisher(conn ConnAPI, opts ...func(cfg *PublisherConfig)) event.Publisher {
	if conn == nil {
		panic("commit publisher invalid NATS connection: nil value")
	}
	pub := &publisher{
		conn: conn,
		PublisherConfig: &PublisherConfig{
			Serializer:    json.NewCommitSerializer(""),
			SubjectPrefix: "commits",
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(pub.PublisherConfig)
	}
	return pub
}

func (p *publisher) Publish(ctx context.Context, c event.Commit) error {
	b, err := p.Serializer.MarshalCommit(c)
	if err != nil {
		return err
	}
	msg := &nats.Msg{
		Subject: p.SubjectPrefix + "." + c.BoundedContext,
		Data:    b,
		Header: nats.Header{
			msgIDHeader: []string{event.UID().String()},
		},
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		return event.Err(ErrPublishCommitFailed, c.AggregateID.String(), err)
	}
	return nil
}
