// Package schema snapshots the table, index, and constraint definitions of
// two PostgreSQL servers and diffs them, emitting the SQL that would bring
// the second server in line with the first.
package schema

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"gopkg.in/yaml.v2"
)

// Server is one side of a comparison.
type Server struct {
	Host     string `yaml:"host"`
	Port     uint16 `yaml:"port"`
	DBName   string `yaml:"dbname"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ServerPair is the comparison config file: two named server blocks.
type ServerPair struct {
	ServerA Server `yaml:"server_a"`
	ServerB Server `yaml:"server_b"`
}

// LoadServerPair reads the two-server config file.
func LoadServerPair(path string) (ServerPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServerPair{}, fmt.Errorf("reading comparison config: %w", err)
	}
	var pair ServerPair
	if err := yaml.Unmarshal(data, &pair); err != nil {
		return ServerPair{}, fmt.Errorf("parsing comparison config %s: %w", path, err)
	}
	if pair.ServerA.Host == "" || pair.ServerB.Host == "" {
		return ServerPair{}, fmt.Errorf("comparison config %s must name server_a and server_b hosts", path)
	}
	return pair, nil
}

// TableSchema holds one table's columns by name plus their ordinal order.
type TableSchema struct {
	Columns map[string]string
	Order   []string
}

// Snapshot is everything compared for one server-side schema.
type Snapshot struct {
	Host        string
	Schema      string
	Tables      map[string]TableSchema
	Indexes     map[string]map[string]string
	Constraints map[string]map[string]string
}

// Querier is the slice of pgx.Conn used here; tests can substitute it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const columnQuery = `
SELECT table_name, column_name, data_type
FROM information_schema.columns
WHERE table_schema = $1
ORDER BY table_name, ordinal_position`

const indexQuery = `
SELECT tablename, indexname, indexdef
FROM pg_indexes
WHERE schemaname = $1
ORDER BY tablename, indexname`

const constraintQuery = `
SELECT t.relname,
       c.conname,
       pg_get_constraintdef(c.oid, true)
FROM pg_constraint c
JOIN pg_class t ON t.oid = c.conrelid
JOIN pg_namespace n ON n.oid = c.connamespace
WHERE n.nspname = $1
ORDER BY t.relname, c.conname`

// Fetch reads one server's schema snapshot.
func Fetch(ctx context.Context, q Querier, host string, schemaName string) (Snapshot, error) {
	snap := Snapshot{
		Host:        host,
		Schema:      schemaName,
		Tables:      make(map[string]TableSchema),
		Indexes:     make(map[string]map[string]string),
		Constraints: make(map[string]map[string]string),
	}

	rows, err := q.Query(ctx, columnQuery, schemaName)
	if err != nil {
		return Snapshot{}, fmt.Errorf("querying columns on %s: %w", host, err)
	}
	for rows.Next() {
		var table, column, dataType string
		if err := rows.Scan(&table, &column, &dataType); err != nil {
			rows.Close()
			return Snapshot{}, err
		}
		ts, ok := snap.Tables[table]
		if !ok {
			ts = TableSchema{Columns: make(map[string]string)}
		}
		ts.Columns[column] = dataType
		ts.Order = append(ts.Order, column)
		snap.Tables[table] = ts
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	if snap.Indexes, err = fetchNamedDefs(ctx, q, indexQuery, schemaName); err != nil {
		return Snapshot{}, fmt.Errorf("querying indexes on %s: %w", host, err)
	}
	if snap.Constraints, err = fetchNamedDefs(ctx, q, constraintQuery, schemaName); err != nil {
		return Snapshot{}, fmt.Errorf("querying constraints on %s: %w", host, err)
	}
	return snap, nil
}

func fetchNamedDefs(ctx context.Context, q Querier, query string, schemaName string) (map[string]map[string]string, error) {
	rows, err := q.Query(ctx, query, schemaName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := make(map[string]map[string]string)
	for rows.Next() {
		var table, name, def string
		if err := rows.Scan(&table, &name, &def); err != nil {
			return nil, err
		}
		if defs[table] == nil {
			defs[table] = make(map[string]string)
		}
		defs[table][name] = def
	}
	return defs, rows.Err()
}
