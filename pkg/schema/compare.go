package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Diff lists human-readable differences alongside the SQL statements that
// would make server B match server A. Extra objects on B are reported but
// never dropped.
type Diff struct {
	Differences []string
	SyncSQL     []string
}

// ShortHost trims a hostname at the first dot.
func ShortHost(host string) string {
	if i := strings.Index(host, "."); i >= 0 {
		return host[:i]
	}
	return host
}

// Compare diffs two snapshots. Tables are visited in sorted order and
// columns in ordinal order, so the output is stable across runs.
func Compare(a, b Snapshot) Diff {
	var diff Diff
	hostA, hostB := ShortHost(a.Host), ShortHost(b.Host)

	for _, table := range sortedKeys(a.Tables) {
		tsA := a.Tables[table]
		tsB, ok := b.Tables[table]
		if !ok {
			diff.Differences = append(diff.Differences, fmt.Sprintf("Table %s missing in %s.", table, hostB))
			diff.SyncSQL = append(diff.SyncSQL, CreateTableSQL(b.Schema, table, tsA))
			continue
		}

		for _, col := range tsA.Order {
			typeA := tsA.Columns[col]
			typeB, ok := tsB.Columns[col]
			if !ok {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Column %s.%s missing in %s.", table, col, hostB))
				diff.SyncSQL = append(diff.SyncSQL, fmt.Sprintf("ALTER TABLE %s.%s ADD COLUMN %s %s;", b.Schema, table, col, typeA))
				continue
			}
			if typeA != typeB {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Column %s.%s type differs: %s(%s) vs %s(%s)", table, col, hostA, typeA, hostB, typeB))
				diff.SyncSQL = append(diff.SyncSQL, fmt.Sprintf("ALTER TABLE %s.%s ALTER COLUMN %s TYPE %s;", b.Schema, table, col, typeA))
			}
		}
		for _, col := range tsB.Order {
			if _, ok := tsA.Columns[col]; !ok {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Column %s.%s is extra in %s (not in %s).", table, col, hostB, hostA))
			}
		}
	}

	for _, table := range sortedKeys(b.Tables) {
		if _, ok := a.Tables[table]; !ok {
			diff.Differences = append(diff.Differences, fmt.Sprintf("Table %s is extra in %s (not in %s).", table, hostB, hostA))
		}
	}

	for _, table := range sortedKeys(a.Tables) {
		idxA, idxB := a.Indexes[table], b.Indexes[table]
		for _, name := range sortedKeys(idxA) {
			if _, ok := idxB[name]; !ok {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Index %s on %s missing in %s.", name, table, hostB))
				// indexdef carries server A's schema qualifier; retarget it.
				def := strings.Replace(idxA[name], " ON "+a.Schema+".", " ON "+b.Schema+".", 1)
				diff.SyncSQL = append(diff.SyncSQL, def)
			}
		}
		for _, name := range sortedKeys(idxB) {
			if _, ok := idxA[name]; !ok {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Index %s on %s is extra in %s.", name, table, hostB))
			}
		}
	}

	for _, table := range sortedKeys(a.Constraints) {
		conA, conB := a.Constraints[table], b.Constraints[table]
		for _, name := range sortedKeys(conA) {
			if _, ok := conB[name]; !ok {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Constraint %s on %s missing in %s.", name, table, hostB))
				diff.SyncSQL = append(diff.SyncSQL, fmt.Sprintf("ALTER TABLE %s.%s ADD CONSTRAINT %s %s;", b.Schema, table, name, conA[name]))
			}
		}
		for _, name := range sortedKeys(conB) {
			if _, ok := conA[name]; !ok {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Constraint %s on %s is extra in %s.", name, table, hostB))
			}
		}
	}
	for _, table := range sortedKeys(b.Constraints) {
		if _, ok := a.Constraints[table]; !ok {
			for _, name := range sortedKeys(b.Constraints[table]) {
				diff.Differences = append(diff.Differences, fmt.Sprintf("Constraint %s on %s is extra in %s (table missing in %s).", name, table, hostB, hostA))
			}
		}
	}

	return diff
}

// CreateTableSQL renders a bare CREATE TABLE for a table absent on B.
// Indexes and constraints follow as separate statements.
func CreateTableSQL(schemaName string, table string, ts TableSchema) string {
	cols := make([]string, 0, len(ts.Order))
	for _, col := range ts.Order {
		cols = append(cols, fmt.Sprintf("    %s %s", col, ts.Columns[col]))
	}
	return fmt.Sprintf("CREATE TABLE %s.%s (\n%s\n);", schemaName, table, strings.Join(cols, ",\n"))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
