package nats

import (
	"context"
	"log"

	"github.com/eventura/casstore/event"
)

type PublishingStoreConfig struct {
	Logger *log.Logger
}

type PublishingStoreOption func(cfg *PublishingStoreConfig)

func WithLogger(l *log.Logger) PublishingStoreOption {
	return func(cfg *PublishingStoreConfig) {
		cfg.Logger = l
	}
}

// publishingStore decorates a commit store: every successfully appended commit
// is forwarded to the publisher. Publishing is fire-and-forget, a publish
// failure is logged and does not fail the append.
type publishingStore struct {
	store event.Store
	pub   event.Publisher

	*PublishingStoreConfig
}

var _ event.Store = &publishingStore{}

// NewPublishingStore returns a store decorator that publishes appended commits.
// It panics if the store or the publisher is nil.
func NewPublishingStore(store event.Store, pub event.Publisher, opts ...PublishingStoreOption) event.Store {
	if store == nil {
		panic("publishing store invalid commit store: nil value")
	}
	if pub == nil {
		panic("publishing store invalid publisher: nil value")
	}
	s := &publishingStore{
		store: store,
		pub:   pub,
		PublishingStoreConfig: &PublishingStoreConfig{
			Logger: log.Default(),
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s.PublishingStoreConfig)
	}
	return s
}

func (s *publishingStore) Append(ctx context.Context, c event.Commit) error {
	if err := s.store.Append(ctx, c); err != nil {
		return err
	}
	if err := s.pub.Publish(ctx, c); err != nil {
		s.Logger.Printf("warn: %v", err)
	}
	return nil
}

func (s *publishingStore) Load(ctx context.Context, id event.AggregateID) (event.Stream, error) {
	return s.store.Load(ctx, id)
}
