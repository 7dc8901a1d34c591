package casstore

import (
	"github.com/eventura/casstore/cassandra"
	"github.com/eventura/casstore/event"
	"github.com/eventura/casstore/memory"
	"github.com/eventura/casstore/nats"
)

// EventStore presents the aggregate commit store interface exposed by the library.
type EventStore interface {
	event.Store
}

// interface guard
var _ EventStore = cassandra.EventStore(nil)

// NewCassandraStore returns an aggregate commit store on top of a Cassandra-like
// column store. Commits of the given bounded context are appended to and loaded
// from the table resolved by the configured table name strategy.
// It panics if the client is nil.
func NewCassandraStore(client cassandra.ClientAPI, boundedContext string, opts ...cassandra.StoreOption) EventStore {
	return cassandra.NewEventStore(client, boundedContext, opts...)
}

// interface guard
var _ EventStore = memory.EventStore(nil)

// NewInMemoryStore returns an in-memory commit store, mainly used for tests.
// Load merges the aggregate's commits from every bounded context, aggregate
// IDs must not be reused across bounded contexts.
func NewInMemoryStore() EventStore {
	return memory.NewEventStore()
}

// NewPublishingStore decorates the given store: every successfully appended
// commit is published to the given publisher e.g. NATS.
func NewPublishingStore(store event.Store, pub event.Publisher, opts ...nats.PublishingStoreOption) EventStore {
	return nats.NewPublishingStore(store, pub, opts...)
}
