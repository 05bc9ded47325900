// Package replication reports on PostgreSQL logical replication: slot
// retention, streaming state, and subscription lag, with a coarse
// HEALTHY / WARNING / CRITICAL assessment.
package replication

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SlotInfo is one row of pg_replication_slots joined with the walsender
// state when the slot is in use.
type SlotInfo struct {
	Name          string
	Active        bool
	RetainedBytes int64
	State         string
}

// SubscriptionInfo is one row of pg_subscription joined with its worker
// stats. LagSeconds is nil when no worker is running.
type SubscriptionInfo struct {
	Name         string
	Enabled      bool
	Publications string
	LagSeconds   *float64
}

// TablesyncSlot is an initial-sync slot (pg_<suboid>_sync_<reloid>_<n>).
// These exist only while a table is catching up; one that lingers means a
// stuck sync or an orphan left behind by a dropped subscription.
type TablesyncSlot struct {
	Name         string
	Active       bool
	Subscription string
	Relation     string
}

type Report struct {
	Host           string
	Slots          []SlotInfo
	Subscriptions  []SubscriptionInfo
	TablesyncSlots []TablesyncSlot
}

// Querier is the slice of pgx.Conn used here; tests can substitute it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Connect opens a plain (non-replication) session to one instance.
func Connect(ctx context.Context, host string, port uint16, database, user, password string) (*pgx.Conn, error) {
	cfg, err := pgx.ParseConfig(fmt.Sprintf("host=%s port=%d dbname=%s user=%s", host, port, database, user))
	if err != nil {
		return nil, err
	}
	if password != "" {
		cfg.Password = password
	}
	return pgx.ConnectConfig(ctx, cfg)
}

const slotQuery = `
SELECT s.slot_name,
       s.active,
       COALESCE(pg_wal_lsn_diff(pg_current_wal_lsn(), s.restart_lsn), 0)::bigint,
       COALESCE(r.state, '')
FROM pg_replication_slots s
LEFT JOIN pg_stat_replication r ON r.pid = s.active_pid
WHERE s.slot_name !~ '^pg_\d+_sync_\d+_\d+$'
ORDER BY s.slot_name`

const subscriptionQuery = `
SELECT sub.subname,
       sub.subenabled,
       array_to_string(sub.subpublications, ', '),
       EXTRACT(EPOCH FROM (now() - stat.latest_end_time))::float8
FROM pg_subscription sub
LEFT JOIN pg_stat_subscription stat ON sub.oid = stat.subid
ORDER BY sub.subname`

const tablesyncQuery = `
SELECT s.slot_name,
       s.active,
       COALESCE(sub.subname, ''),
       COALESCE(c.relname, '')
FROM pg_replication_slots s
LEFT JOIN pg_subscription sub ON sub.oid = substring(s.slot_name from '^pg_(\d+)_sync')::oid
LEFT JOIN pg_class c ON c.oid = substring(s.slot_name from '^pg_\d+_sync_(\d+)_')::oid
WHERE s.slot_name ~ '^pg_\d+_sync_\d+_\d+$'
ORDER BY s.slot_name`

// Gather reads slot and subscription state from one instance.
func Gather(ctx context.Context, q Querier, host string) (Report, error) {
	report := Report{Host: host}

	rows, err := q.Query(ctx, slotQuery)
	if err != nil {
		return report, fmt.Errorf("querying replication slots on %s: %w", host, err)
	}
	for rows.Next() {
		var slot SlotInfo
		if err := rows.Scan(&slot.Name, &slot.Active, &slot.RetainedBytes, &slot.State); err != nil {
			rows.Close()
			return report, err
		}
		report.Slots = append(report.Slots, slot)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return report, err
	}

	rows, err = q.Query(ctx, subscriptionQuery)
	if err != nil {
		return report, fmt.Errorf("querying subscriptions on %s: %w", host, err)
	}
	for rows.Next() {
		var sub SubscriptionInfo
		if err := rows.Scan(&sub.Name, &sub.Enabled, &sub.Publications, &sub.LagSeconds); err != nil {
			rows.Close()
			return report, err
		}
		report.Subscriptions = append(report.Subscriptions, sub)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return report, err
	}

	rows, err = q.Query(ctx, tablesyncQuery)
	if err != nil {
		return report, fmt.Errorf("querying tablesync slots on %s: %w", host, err)
	}
	defer rows.Close()
	for rows.Next() {
		var slot TablesyncSlot
		if err := rows.Scan(&slot.Name, &slot.Active, &slot.Subscription, &slot.Relation); err != nil {
			return report, err
		}
		report.TablesyncSlots = append(report.TablesyncSlots, slot)
	}
	return report, rows.Err()
}
