package cassandra

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	PartitionKeyColumn  = "id"
	ClusteringKeyColumn = "rev"
	TimestampColumn     = "ts"
	DataColumn          = "data"
)

var (
	ErrResolveTableFailed = errors.New("resolve table name failed")
)

// TableNameStrategy resolves the physical table name of a bounded context.
// Implementations must be pure functions of their input, the resolved name is
// assumed stable for the process lifetime and cached accordingly.
type TableNameStrategy interface {
	TableName(boundedContext string) (string, error)
}

// TableNameStrategyFunc adapts a function to the TableNameStrategy interface.
type TableNameStrategyFunc func(boundedContext string) (string, error)

func (f TableNameStrategyFunc) TableName(boundedContext string) (string, error) {
	return f(boundedContext)
}

// DefaultTableNameStrategy maps a bounded context to a commit table name:
// the sanitized lowercase context suffixed with "_commits".
func DefaultTableNameStrategy() TableNameStrategy {
	return TableNameStrategyFunc(func(boundedContext string) (string, error) {
		if boundedContext == "" {
			return "", fmt.Errorf("%w: empty bounded context", ErrResolveTableFailed)
		}
		return sanitizeTableName(boundedContext) + "_commits", nil
	})
}

// sanitizeTableName lowercases the bounded context name and replaces every
// character that is not valid in a CQL identifier with an underscore.
func sanitizeTableName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

// CreateTable creates the commit table of the given name if it does not exist.
// The partition key is the aggregate ID text form, the clustering key is the
// commit revision in ascending order.
func CreateTable(ctx context.Context, svc AdminAPI, table string) error {
	stmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (`+
			`%s text, %s bigint, %s timestamp, %s blob, `+
			`PRIMARY KEY (%s, %s)) `+
			`WITH CLUSTERING ORDER BY (%s ASC)`,
		table,
		PartitionKeyColumn, ClusteringKeyColumn, TimestampColumn, DataColumn,
		PartitionKeyColumn, ClusteringKeyColumn,
		ClusteringKeyColumn,
	)
	return svc.ExecSchema(ctx, stmt)
}

// DeleteTable drops the commit table of the given name. Mainly used in tests.
func DeleteTable(ctx context.Context, svc AdminAPI, table string) error {
	return svc.ExecSchema(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", table))
}
