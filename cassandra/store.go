package cassandra

import (
	"context"
	"fmt"
	"log"

	"github.com/eventura/casstore/event"
	"github.com/eventura/casstore/json"
	"github.com/gocql/gocql"
)

const (
	qAppendCommit = `INSERT INTO %s (id, rev, ts, data) VALUES (?, ?, ?, ?)`
	qLoadCommits  = `SELECT data FROM %s WHERE id = ?`
)

func queryText(shape, table string) string {
	return fmt.Sprintf(shape, table)
}

// EventStore presents the Cassandra-backed aggregate commit store.
type EventStore interface {
	event.Store

	// LoadWithResolver loads the commit history of the aggregate from the
	// bounded context returned by the given resolver.
	//
	// Deprecated: it only serves callers migrating from dynamic bounded
	// context resolution. Use Load instead.
	LoadWithResolver(ctx context.Context, id event.AggregateID, resolver event.ContextResolver) (event.Stream, error)
}

type StoreConfig struct {
	// Serializer encodes and decodes the commit payload.
	Serializer event.Serializer

	// Tables resolves bounded contexts to physical table names.
	Tables TableNameStrategy

	// ReadConsistency and WriteConsistency are bound to the cached load and
	// append statements at store construction and never mutated afterwards.
	ReadConsistency  gocql.Consistency
	WriteConsistency gocql.Consistency

	// BestEffortAppend makes Append swallow write timeouts: the timeout is
	// logged as a warning and the call returns nil even though the write may
	// not be durably committed. Callers that need guaranteed durability must
	// keep it disabled or verify/retry above this layer.
	BestEffortAppend bool

	Logger *log.Logger
}

type StoreOption func(cfg *StoreConfig)

func WithCommitSerializer(ser event.Serializer) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.Serializer = ser
	}
}

func WithTableNameStrategy(tables TableNameStrategy) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.Tables = tables
	}
}

func WithReadConsistency(cons gocql.Consistency) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.ReadConsistency = cons
	}
}

func WithWriteConsistency(cons gocql.Consistency) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.WriteConsistency = cons
	}
}

func WithBestEffortAppend() StoreOption {
	return func(cfg *StoreConfig) {
		cfg.BestEffortAppend = true
	}
}

func WithLogger(l *log.Logger) StoreOption {
	return func(cfg *StoreConfig) {
		cfg.Logger = l
	}
}

type store struct {
	svc            ClientAPI
	boundedContext string

	appendStmts *statementCache
	loadStmts   *statementCache

	*StoreConfig
}

var _ EventStore = &store{}

// NewEventStore returns an aggregate commit store on top of a Cassandra-like
// column store. Append and load statements are prepared lazily, once per
// bounded context, and reused for the store lifetime.
// It panics if the client is nil or the bounded context is empty.
func NewEventStore(svc ClientAPI, boundedContext string, opts ...StoreOption) EventStore {
	if svc == nil {
		panic("event store invalid Cassandra client: nil value")
	}
	if boundedContext == "" {
		panic("event store invalid bounded context: empty value")
	}
	s := &store{
		svc:            svc,
		boundedContext: boundedContext,
		StoreConfig: &StoreConfig{
			Serializer:       json.NewCommitSerializer(""),
			Tables:           DefaultTableNameStrategy(),
			ReadConsistency:  gocql.Quorum,
			WriteConsistency: gocql.Quorum,
			Logger:           log.Default(),
		},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s.StoreConfig)
	}

	s.appendStmts = newStatementCache(s.Tables, s.WriteConsistency, func(table string) string {
		return queryText(qAppendCommit, table)
	})
	s.loadStmts = newStatementCache(s.Tables, s.ReadConsistency, func(table string) string {
		return queryText(qLoadCommits, table)
	})
	return s
}

// Append records the given commit in its bounded context's table.
// The partition key is the base64 form of the aggregate ID, the clustering
// key is the revision: re-appending an already used (aggregate, revision)
// silently overwrites the previous row.
//
// A timeout while waiting for the write consistency level surfaces as
// event.ErrAppendTimeout unless BestEffortAppend is set, in which case it is
// logged and suppressed. Any other store failure wraps event.ErrAppendCommitFailed.
func (s *store) Append(ctx context.Context, c event.Commit) error {
	if err := c.Validate(); err != nil {
		return err
	}

	b, err := s.Serializer.MarshalCommit(c)
	if err != nil {
		return err
	}

	stmt, err := s.appendStmts.getOrCreate(c.BoundedContext)
	if err != nil {
		return event.Err(event.ErrAppendCommitFailed, c.AggregateID.String(), err)
	}

	q := stmt.bind(ctx, s.svc, c.AggregateID.String(), int64(c.Revision), c.At, b)
	if err := q.Exec(); err != nil {
		if IsWriteTimeout(err) {
			if s.BestEffortAppend {
				s.Logger.Printf("warn: %v", event.Err(event.ErrAppendTimeout, c.AggregateID.String(),
					"write may not be durable", err))
				return nil
			}
			return event.Err(event.ErrAppendTimeout, c.AggregateID.String(), err)
		}
		return event.Err(event.ErrAppendCommitFailed, c.AggregateID.String(), err)
	}
	return nil
}

// Load returns the aggregate's commit history from the store's configured
// bounded context, ascending by revision.
//
// A corrupt commit payload surfaces the serializer's decode error, e.g.
// event.ErrUnmarshalCommitFailed, any other read failure wraps
// event.ErrLoadCommitFailed.
func (s *store) Load(ctx context.Context, id event.AggregateID) (event.Stream, error) {
	return s.load(ctx, id, s.boundedContext)
}

// LoadWithResolver implements the transitional load path of the EventStore interface.
func (s *store) LoadWithResolver(ctx context.Context, id event.AggregateID, resolver event.ContextResolver) (event.Stream, error) {
	if resolver == nil {
		return nil, event.Err(event.ErrLoadCommitFailed, id.String(), "nil bounded context resolver")
	}
	return s.load(ctx, id, resolver(id))
}

func (s *store) load(ctx context.Context, id event.AggregateID, boundedContext string) (event.Stream, error) {
	if id.Empty() {
		return nil, event.Err(event.ErrLoadCommitFailed, id.String(), "empty aggregate ID")
	}

	stmt, err := s.loadStmts.getOrCreate(boundedContext)
	if err != nil {
		return nil, event.Err(event.ErrLoadCommitFailed, id.String(), err)
	}

	// rows come back in the table's clustering order i.e, ascending revision,
	// the stream is assembled in store order without re-sorting
	iter := stmt.bind(ctx, s.svc, id.String()).Iter()
	stm := event.Stream{}
	var b []byte
	for iter.Scan(&b) {
		c, err := s.Serializer.UnmarshalCommit(b)
		if err != nil {
			_ = iter.Close()
			return nil, err
		}
		stm = append(stm, c)
		b = nil
	}
	if err := iter.Close(); err != nil {
		return nil, event.Err(event.ErrLoadCommitFailed, id.String(), err)
	}
	return stm, nil
}
