package upgrade

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/elasticache"
	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/rds"
)

func yes() io.Reader { return strings.NewReader("y\n") }

func discard() io.Writer { return io.Discard }

type modifyCall struct {
	cluster, region, target, version string
}

func recordingModify(calls *[]modifyCall) ModifyFunc {
	return func(ctx context.Context, cluster, region, target, version string) error {
		*calls = append(*calls, modifyCall{cluster, region, target, version})
		return nil
	}
}

func TestPlanRDSUpgrades(t *testing.T) {
	instances := []rds.InstanceInfo{
		{Identifier: "pg-stale", Cluster: "acme-db", EngineVersion: "13.15"},
		{Identifier: "pg-current", Cluster: "acme-db", EngineVersion: "13.20"},
		{Identifier: "pg-ancient", Cluster: "acme-db", EngineVersion: "9.6.24"},
	}
	regions := map[string]string{"acme-db": "eu-west-1"}

	var calls []modifyCall
	annotated, plan := PlanRDSUpgrades(instances, regions, PostgresTargets, recordingModify(&calls))

	require.Len(t, annotated, 3)
	assert.Equal(t, "13.20", annotated[0].TargetVersion)
	assert.Equal(t, NoUpdateNeeded, annotated[1].TargetVersion)
	assert.Equal(t, NoUpdateNeeded, annotated[2].TargetVersion)

	require.Equal(t, 1, plan.Len())
	assert.Empty(t, calls, "planning must not mutate anything")

	require.NoError(t, plan.Apply(context.Background(), yes(), discard()))
	require.Len(t, calls, 1)
	assert.Equal(t, modifyCall{"acme-db", "eu-west-1", "pg-stale", "13.20"}, calls[0])
}

func TestPlanRedisUpgradesOneCommandPerGroup(t *testing.T) {
	nodes := []elasticache.NodeInfo{
		{Identifier: "cache-001", ReplicationGroup: "cache", Cluster: "acme-db", EngineVersion: "6.0.5"},
		{Identifier: "cache-002", ReplicationGroup: "cache", Cluster: "acme-db", EngineVersion: "6.0.5"},
		{Identifier: "other-001", ReplicationGroup: "other", Cluster: "acme-db", EngineVersion: "7.1"},
	}
	regions := map[string]string{"acme-db": "eu-west-1"}

	var calls []modifyCall
	annotated, plan := PlanRedisUpgrades(nodes, regions, RedisTargets, recordingModify(&calls))

	require.Len(t, annotated, 3)
	assert.Equal(t, "6.2", annotated[0].TargetVersion)
	assert.Equal(t, "6.2", annotated[1].TargetVersion)
	assert.Equal(t, NoUpdateNeeded, annotated[2].TargetVersion)

	require.Equal(t, 1, plan.Len())
	require.NoError(t, plan.Apply(context.Background(), yes(), discard()))
	require.Len(t, calls, 1)
	assert.Equal(t, modifyCall{"acme-db", "eu-west-1", "cache", "6.2"}, calls[0])
}
