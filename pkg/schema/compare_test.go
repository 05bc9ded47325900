package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotA() Snapshot {
	return Snapshot{
		Host:   "pg-main.abc.eu-west-1.rds.amazonaws.com",
		Schema: "public",
		Tables: map[string]TableSchema{
			"orders": {
				Columns: map[string]string{"id": "bigint", "total": "numeric", "placed_at": "timestamp with time zone"},
				Order:   []string{"id", "total", "placed_at"},
			},
			"customers": {
				Columns: map[string]string{"id": "bigint", "email": "text"},
				Order:   []string{"id", "email"},
			},
		},
		Indexes: map[string]map[string]string{
			"orders": {"orders_pkey": "CREATE UNIQUE INDEX orders_pkey ON public.orders USING btree (id)"},
		},
		Constraints: map[string]map[string]string{
			"orders": {"orders_pkey": "PRIMARY KEY (id)"},
		},
	}
}

func TestCompareIdenticalSnapshots(t *testing.T) {
	diff := Compare(snapshotA(), snapshotA())
	assert.Empty(t, diff.Differences)
	assert.Empty(t, diff.SyncSQL)
}

func TestCompareMissingTable(t *testing.T) {
	b := snapshotA()
	b.Host = "pg-replica.abc.eu-west-1.rds.amazonaws.com"
	delete(b.Tables, "customers")

	diff := Compare(snapshotA(), b)

	require.Len(t, diff.Differences, 1)
	assert.Equal(t, "Table customers missing in pg-replica.", diff.Differences[0])
	require.Len(t, diff.SyncSQL, 1)
	assert.Equal(t, "CREATE TABLE public.customers (\n    id bigint,\n    email text\n);", diff.SyncSQL[0])
}

func TestCompareColumnDrift(t *testing.T) {
	b := snapshotA()
	b.Host = "pg-replica.internal"
	b.Tables["orders"] = TableSchema{
		Columns: map[string]string{"id": "bigint", "total": "integer", "note": "text"},
		Order:   []string{"id", "total", "note"},
	}

	diff := Compare(snapshotA(), b)

	assert.Contains(t, diff.Differences, "Column orders.placed_at missing in pg-replica.")
	assert.Contains(t, diff.Differences, "Column orders.total type differs: pg-main(numeric) vs pg-replica(integer)")
	assert.Contains(t, diff.Differences, "Column orders.note is extra in pg-replica (not in pg-main).")

	assert.Contains(t, diff.SyncSQL, "ALTER TABLE public.orders ADD COLUMN placed_at timestamp with time zone;")
	assert.Contains(t, diff.SyncSQL, "ALTER TABLE public.orders ALTER COLUMN total TYPE numeric;")
	// Extra columns on B are reported, never dropped.
	for _, stmt := range diff.SyncSQL {
		assert.NotContains(t, stmt, "DROP")
	}
}

func TestCompareExtraTableIsReportedOnly(t *testing.T) {
	b := snapshotA()
	b.Host = "pg-replica.internal"
	b.Tables["audit_log"] = TableSchema{Columns: map[string]string{"id": "bigint"}, Order: []string{"id"}}

	diff := Compare(snapshotA(), b)

	require.Len(t, diff.Differences, 1)
	assert.Equal(t, "Table audit_log is extra in pg-replica (not in pg-main).", diff.Differences[0])
	assert.Empty(t, diff.SyncSQL)
}

func TestCompareMissingIndexRetargetsSchema(t *testing.T) {
	a := snapshotA()
	a.Indexes["orders"]["orders_placed_at_idx"] = "CREATE INDEX orders_placed_at_idx ON public.orders USING btree (placed_at)"

	b := snapshotA()
	b.Host = "pg-replica.internal"
	b.Schema = "mirror"

	diff := Compare(a, b)

	assert.Contains(t, diff.Differences, "Index orders_placed_at_idx on orders missing in pg-replica.")
	assert.Contains(t, diff.SyncSQL, "CREATE INDEX orders_placed_at_idx ON mirror.orders USING btree (placed_at)")
}

func TestCompareConstraints(t *testing.T) {
	a := snapshotA()
	a.Constraints["orders"]["orders_total_check"] = "CHECK (total >= 0)"

	b := snapshotA()
	b.Host = "pg-replica.internal"
	b.Constraints["customers"] = map[string]string{"customers_email_key": "UNIQUE (email)"}

	diff := Compare(a, b)

	assert.Contains(t, diff.Differences, "Constraint orders_total_check on orders missing in pg-replica.")
	assert.Contains(t, diff.SyncSQL, "ALTER TABLE public.orders ADD CONSTRAINT orders_total_check CHECK (total >= 0);")
	assert.Contains(t, diff.Differences, "Constraint customers_email_key on customers is extra in pg-replica (table missing in pg-main).")
}

func TestCompareIsDeterministic(t *testing.T) {
	b := snapshotA()
	b.Host = "pg-replica.internal"
	delete(b.Tables, "customers")
	delete(b.Tables, "orders")

	first := Compare(snapshotA(), b)
	second := Compare(snapshotA(), b)

	assert.Equal(t, first, second)
	require.Len(t, first.Differences, 2)
	assert.Equal(t, "Table customers missing in pg-replica.", first.Differences[0])
	assert.Equal(t, "Table orders missing in pg-replica.", first.Differences[1])
}

func TestShortHost(t *testing.T) {
	assert.Equal(t, "pg-main", ShortHost("pg-main.abc.eu-west-1.rds.amazonaws.com"))
	assert.Equal(t, "localhost", ShortHost("localhost"))
}
