package cassandra

import (
	"context"

	"github.com/gocql/gocql"
)

// ClientAPI presents the narrow surface of the CQL driver session consumed by the store.
// The driver owns the wire protocol, connection pooling, and server-side statement
// preparation, the store only builds query text and binds values.
type ClientAPI interface {
	// Query returns a parameterized query for the given statement text.
	Query(stmt string, values ...interface{}) QueryAPI
}

// AdminAPI extends ClientAPI with the schema operations needed by table helpers.
type AdminAPI interface {
	ClientAPI

	// ExecSchema runs a schema statement and waits for schema agreement.
	ExecSchema(ctx context.Context, stmt string) error
}

// QueryAPI presents a bound, executable CQL query.
type QueryAPI interface {
	WithContext(ctx context.Context) QueryAPI
	Consistency(cons gocql.Consistency) QueryAPI
	Bind(values ...interface{}) QueryAPI
	Exec() error
	Iter() IterAPI
}

// IterAPI iterates over the rows of an executed query.
// Close reports any error that occurred during the query execution.
type IterAPI interface {
	Scan(dest ...interface{}) bool
	Close() error
}
