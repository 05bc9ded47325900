package upgrade

import (
	"context"

	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/elasticache"
	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/rds"
)

// ModifyFunc performs one engine-version modification against a named
// target in a cluster. The fleet package supplies the real SDK-backed
// implementation; tests supply counters.
type ModifyFunc func(ctx context.Context, cluster, region, target, version string) error

// PlanRDSUpgrades resolves a target for every instance, annotates the
// inventory with it, and queues a pending command per instance that needs
// one. regions maps cluster identifier to region (the dedup result).
func PlanRDSUpgrades(instances []rds.InstanceInfo, regions map[string]string, targets VersionMap, modify ModifyFunc) ([]rds.InstanceInfo, *Plan) {
	plan := NewPlan()
	annotated := make([]rds.InstanceInfo, 0, len(instances))
	for _, inst := range instances {
		target, needed := targets.Resolve(inst.EngineVersion)
		inst.TargetVersion = target
		annotated = append(annotated, inst)
		if !needed {
			continue
		}
		cluster, region, id := inst.Cluster, regions[inst.Cluster], inst.Identifier
		plan.Add(PendingCommand{
			Action:  "modify-db-instance",
			Target:  id,
			Cluster: cluster,
			Region:  region,
			Version: target,
			applyFn: func(ctx context.Context) error {
				return modify(ctx, cluster, region, id, target)
			},
		})
	}
	return annotated, plan
}

// PlanRedisUpgrades works per replication group: nodes are annotated
// individually but at most one command is queued per group.
func PlanRedisUpgrades(nodes []elasticache.NodeInfo, regions map[string]string, targets VersionMap, modify ModifyFunc) ([]elasticache.NodeInfo, *Plan) {
	plan := NewPlan()
	planned := make(map[string]bool)
	annotated := make([]elasticache.NodeInfo, 0, len(nodes))
	for _, node := range nodes {
		target, needed := targets.Resolve(node.EngineVersion)
		node.TargetVersion = target
		annotated = append(annotated, node)
		if !needed || planned[node.ReplicationGroup] {
			continue
		}
		planned[node.ReplicationGroup] = true
		cluster, region, group := node.Cluster, regions[node.Cluster], node.ReplicationGroup
		plan.Add(PendingCommand{
			Action:  "modify-replication-group",
			Target:  group,
			Cluster: cluster,
			Region:  region,
			Version: target,
			applyFn: func(ctx context.Context) error {
				return modify(ctx, cluster, region, group, target)
			},
		})
	}
	return annotated, plan
}
