package cassandra

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestDefaultTableNameStrategy(t *testing.T) {
	tables := DefaultTableNameStrategy()

	tcs := []struct {
		boundedContext string
		table          string
	}{
		{"bank", "bank_commits"},
		{"Bank-Accounts", "bank_accounts_commits"},
		{"sales.EU", "sales_eu_commits"},
	}
	for i, tc := range tcs {
		table, err := tables.TableName(tc.boundedContext)
		if err != nil {
			t.Fatalf("%d: expect to resolve table name, got err: %v", i, err)
		}
		if table != tc.table {
			t.Fatalf("%d: expect table name be %q, got %q", i, tc.table, table)
		}
	}

	if _, err := tables.TableName(""); !errors.Is(err, ErrResolveTableFailed) {
		t.Fatalf("expect resolve failure err, got: %v", err)
	}
}

func TestCreateTable(t *testing.T) {
	ctx := context.Background()
	svc := newFakeClient()

	if err := CreateTable(ctx, svc, "bank_commits"); err != nil {
		t.Fatalf("expect to create table, got err: %v", err)
	}
	if l := len(svc.schema); l != 1 {
		t.Fatalf("expect schema statements count be %d, got %d", 1, l)
	}
	stmt := svc.schema[0]
	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS bank_commits",
		"PRIMARY KEY (id, rev)",
		"CLUSTERING ORDER BY (rev ASC)",
	} {
		if !strings.Contains(stmt, want) {
			t.Fatalf("expect schema statement contain %q, got: %q", want, stmt)
		}
	}

	if err := DeleteTable(ctx, svc, "bank_commits"); err != nil {
		t.Fatalf("expect to delete table, got err: %v", err)
	}
	if want, got := "DROP TABLE IF EXISTS bank_commits", svc.schema[1]; want != got {
		t.Fatalf("expect schema statement be %q, got %q", want, got)
	}
}
