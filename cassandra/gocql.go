package cassandra

import (
	"context"

	"github.com/gocql/gocql"
)

// client adapts a gocql session to the ClientAPI / AdminAPI interfaces.
type client struct {
	ses *gocql.Session
}

var _ AdminAPI = &client{}

// NewClientAPI wraps the given gocql session.
// It panics if the session is nil.
func NewClientAPI(ses *gocql.Session) AdminAPI {
	if ses == nil {
		panic("cassandra client invalid gocql session: nil value")
	}
	return &client{ses: ses}
}

func (c *client) Query(stmt string, values ...interface{}) QueryAPI {
	return &query{q: c.ses.Query(stmt, values...)}
}

func (c *client) ExecSchema(ctx context.Context, stmt string) error {
	if err := c.ses.Query(stmt).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return c.ses.AwaitSchemaAgreement(ctx)
}

type query struct {
	q *gocql.Query
}

var _ QueryAPI = &query{}

func (q *query) WithContext(ctx context.Context) QueryAPI {
	return &query{q: q.q.WithContext(ctx)}
}

func (q *query) Consistency(cons gocql.Consistency) QueryAPI {
	return &query{q: q.q.Consistency(cons)}
}

func (q *query) Bind(values ...interface{}) QueryAPI {
	return &query{q: q.q.Bind(values...)}
}

func (q *query) Exec() error {
	return q.q.Exec()
}

func (q *query) Iter() IterAPI {
	return q.q.Iter()
}
