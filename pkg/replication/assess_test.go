package replication

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessHealthy(t *testing.T) {
	report := Report{
		Host: "pg-main.internal",
		Slots: []SlotInfo{
			{Name: "debezium", Active: true, RetainedBytes: 4 << 20, State: "streaming"},
		},
		Subscriptions: []SubscriptionInfo{
			{Name: "billing_sub", Enabled: true},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusHealthy, health.Overall)
	assert.Empty(t, health.Issues)
	assert.Empty(t, health.Recommendations)
}

func TestAssessWarningOnModerateLag(t *testing.T) {
	report := Report{
		Host: "pg-main.internal",
		Slots: []SlotInfo{
			{Name: "debezium", Active: true, RetainedBytes: 50 << 20, State: "streaming"},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusWarning, health.Overall)
	require.Len(t, health.Issues, 1)
	assert.Contains(t, health.Issues[0], "High replication lag in slot debezium")
	assert.Contains(t, health.Issues[0], "50.00 MB retained")
}

func TestAssessCriticalOnHeavyLag(t *testing.T) {
	report := Report{
		Host: "pg-main.internal",
		Slots: []SlotInfo{
			{Name: "debezium", Active: true, RetainedBytes: 300 << 20, State: "streaming"},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusCritical, health.Overall)
	require.Len(t, health.Issues, 1)
	assert.Contains(t, health.Issues[0], "Critical replication lag in slot debezium")
}

func TestAssessInactiveSlot(t *testing.T) {
	report := Report{
		Host: "pg-main.internal",
		Slots: []SlotInfo{
			{Name: "stale_slot", Active: false},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusWarning, health.Overall)
	require.Len(t, health.Issues, 1)
	assert.Equal(t, "Inactive replication slot stale_slot on pg-main.internal", health.Issues[0])
	require.Len(t, health.Recommendations, 1)
	assert.Contains(t, health.Recommendations[0], "is down or drop the slot")
}

func TestAssessDisabledSubscription(t *testing.T) {
	report := Report{
		Host: "pg-child.internal",
		Subscriptions: []SubscriptionInfo{
			{Name: "billing_sub", Enabled: false},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusWarning, health.Overall)
	require.Len(t, health.Recommendations, 1)
	assert.Equal(t, "Re-enable subscription billing_sub or drop it if no longer needed", health.Recommendations[0])
}

func TestAssessCriticalNeverDowngrades(t *testing.T) {
	report := Report{
		Host: "pg-main.internal",
		Slots: []SlotInfo{
			{Name: "heavy", Active: true, RetainedBytes: 300 << 20, State: "catchup"},
			{Name: "stale", Active: false},
		},
		Subscriptions: []SubscriptionInfo{
			{Name: "billing_sub", Enabled: false},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusCritical, health.Overall)
	assert.Len(t, health.Issues, 3)
}

func TestAssessLingeringTablesyncSlot(t *testing.T) {
	report := Report{
		Host: "pg-child.internal",
		TablesyncSlots: []TablesyncSlot{
			{Name: "pg_16402_sync_16390_7365", Active: true, Subscription: "billing_sub", Relation: "orders"},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusWarning, health.Overall)
	require.Len(t, health.Issues, 1)
	assert.Equal(t, "Lingering tablesync slot pg_16402_sync_16390_7365 on pg-child.internal (subscription billing_sub, relation orders)", health.Issues[0])
	require.Len(t, health.Recommendations, 1)
	assert.Equal(t, "Check initial sync progress of relation orders in subscription billing_sub", health.Recommendations[0])
}

func TestAssessOrphanedTablesyncSlot(t *testing.T) {
	report := Report{
		Host: "pg-child.internal",
		TablesyncSlots: []TablesyncSlot{
			{Name: "pg_16402_sync_16390_7365", Active: false},
		},
	}

	health := Assess(report)
	assert.Equal(t, StatusWarning, health.Overall)
	require.Len(t, health.Issues, 1)
	assert.Equal(t, "Orphaned tablesync slot pg_16402_sync_16390_7365 on pg-child.internal", health.Issues[0])
	require.Len(t, health.Recommendations, 1)
	assert.Contains(t, health.Recommendations[0], "its subscription no longer exists")
}

func TestAssessDeduplicatesRecommendations(t *testing.T) {
	// An inactive slot with heavy retention triggers two findings but the
	// slot-specific advice must not repeat.
	report := Report{
		Host: "pg-main.internal",
		Slots: []SlotInfo{
			{Name: "debezium", Active: true, RetainedBytes: 150 << 20, State: "catchup"},
			{Name: "debezium_2", Active: true, RetainedBytes: 150 << 20, State: "catchup"},
		},
	}

	health := Assess(report)
	assert.Len(t, health.Recommendations, 2)
	assert.Equal(t, StatusCritical, health.Overall)
}
