package cassandra

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gocql/gocql"
)

// fakeRow holds the column values of a single commit row.
type fakeRow struct {
	ts   time.Time
	data []byte
}

// fakeClient implements ClientAPI over in-memory tables. It records the
// consistency level of executed queries and supports failure injection.
type fakeClient struct {
	mu sync.Mutex

	// table -> partition key -> clustering key -> row
	tables map[string]map[string]map[int64]fakeRow

	execErr error
	iterErr error

	lastWriteCons gocql.Consistency
	lastReadCons  gocql.Consistency

	schema []string
}

var (
	_ ClientAPI = &fakeClient{}
	_ AdminAPI  = &fakeClient{}
)

func newFakeClient() *fakeClient {
	return &fakeClient{
		tables: make(map[string]map[string]map[int64]fakeRow),
	}
}

func (c *fakeClient) Query(stmt string, values ...interface{}) QueryAPI {
	return &fakeQuery{client: c, stmt: stmt, values: values}
}

func (c *fakeClient) ExecSchema(ctx context.Context, stmt string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.schema = append(c.schema, stmt)
	return nil
}

// tableOf extracts the table name following the given keyword in the statement text.
func tableOf(stmt, keyword string) string {
	idx := strings.Index(stmt, keyword)
	if idx < 0 {
		return ""
	}
	rest := stmt[idx+len(keyword):]
	end := strings.IndexAny(rest, " (")
	if end < 0 {
		return rest
	}
	return rest[:end]
}

type fakeQuery struct {
	client *fakeClient
	stmt   string
	values []interface{}
	cons   gocql.Consistency
}

var _ QueryAPI = &fakeQuery{}

func (q *fakeQuery) WithContext(ctx context.Context) QueryAPI {
	return q
}

func (q *fakeQuery) Consistency(cons gocql.Consistency) QueryAPI {
	q.cons = cons
	return q
}

func (q *fakeQuery) Bind(values ...interface{}) QueryAPI {
	q.values = values
	return q
}

func (q *fakeQuery) Exec() error {
	c := q.client
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastWriteCons = q.cons
	if c.execErr != nil {
		return c.execErr
	}

	table := tableOf(q.stmt, "INSERT INTO ")
	part, ok := c.tables[table]
	if !ok {
		part = make(map[string]map[int64]fakeRow)
		c.tables[table] = part
	}
	id := q.values[0].(string)
	rows, ok := part[id]
	if !ok {
		rows = make(map[int64]fakeRow)
		part[id] = rows
	}
	rows[q.values[1].(int64)] = fakeRow{
		ts:   q.values[2].(time.Time),
		data: q.values[3].([]byte),
	}
	return nil
}

func (q *fakeQuery) Iter() IterAPI {
	c := q.client
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastReadCons = q.cons
	if c.iterErr != nil {
		return &fakeIter{err: c.iterErr}
	}

	table := tableOf(q.stmt, "FROM ")
	rows := c.tables[table][q.values[0].(string)]

	revs := make([]int64, 0, len(rows))
	for rev := range rows {
		revs = append(revs, rev)
	}
	sort.Slice(revs, func(a, b int) bool { return revs[a] < revs[b] })

	data := make([][]byte, len(revs))
	for i, rev := range revs {
		data[i] = rows[rev].data
	}
	return &fakeIter{rows: data}
}

type fakeIter struct {
	rows [][]byte
	i    int
	err  error
}

var _ IterAPI = &fakeIter{}

func (it *fakeIter) Scan(dest ...interface{}) bool {
	if it.err != nil || it.i >= len(it.rows) {
		return false
	}
	*(dest[0].(*[]byte)) = it.rows[it.i]
	it.i++
	return true
}

func (it *fakeIter) Close() error {
	return it.err
}
