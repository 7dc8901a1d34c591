package cassandra

import (
	"context"
	"sync"

	"github.com/gocql/gocql"
	"golang.org/x/sync/singleflight"
)

// statement presents a cached, reusable parameterized query bound to one
// bounded context's physical table and one consistency level.
// It is immutable after construction and safely shared by concurrent callers,
// per-call state (context, bound values) lives in the driver query it spawns.
type statement struct {
	text string
	cons gocql.Consistency
}

func (s *statement) bind(ctx context.Context, svc ClientAPI, values ...interface{}) QueryAPI {
	return svc.Query(s.text, values...).WithContext(ctx).Consistency(s.cons)
}

// statementCache lazily builds one statement per bounded context.
// Entries live for the process lifetime, bounded context cardinality is
// assumed small and stable, so there is no eviction.
type statementCache struct {
	tables TableNameStrategy
	cons   gocql.Consistency
	build  func(table string) string

	group singleflight.Group
	mu    sync.RWMutex
	stmts map[string]*statement
}

func newStatementCache(tables TableNameStrategy, cons gocql.Consistency, build func(table string) string) *statementCache {
	return &statementCache{
		tables: tables,
		cons:   cons,
		build:  build,
		stmts:  make(map[string]*statement),
	}
}

// getOrCreate returns the statement of the given bounded context, resolving
// the table name and building the query text on first use. Concurrent
// first-time callers are collapsed into a single resolution, and no caller
// ever observes a partially built statement. A failed resolution is not
// cached, the next call retries.
func (c *statementCache) getOrCreate(boundedContext string) (*statement, error) {
	c.mu.RLock()
	stmt, ok := c.stmts[boundedContext]
	c.mu.RUnlock()
	if ok {
		return stmt, nil
	}

	v, err, _ := c.group.Do(boundedContext, func() (interface{}, error) {
		// a racing caller may have stored the entry since the fast-path miss
		c.mu.RLock()
		stmt, ok := c.stmts[boundedContext]
		c.mu.RUnlock()
		if ok {
			return stmt, nil
		}

		table, err := c.tables.TableName(boundedContext)
		if err != nil {
			return nil, err
		}
		stmt = &statement{
			text: c.build(table),
			cons: c.cons,
		}

		c.mu.Lock()
		c.stmts[boundedContext] = stmt
		c.mu.Unlock()
		return stmt, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*statement), nil
}
