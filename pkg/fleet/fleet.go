// Package fleet walks a deduplicated cluster set one cluster at a time and
// accumulates the inventory. Per-cluster failures are recorded and the walk
// continues; the failing cluster is simply absent from the result.
package fleet

import (
	"context"

	"github.com/opsgrid/dbfleet/pkg/config"
	"github.com/opsgrid/dbfleet/pkg/connector"
	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/elasticache"
	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/rds"
	"github.com/opsgrid/dbfleet/pkg/io/logging"
)

// RDSLister fetches all RDS instances for one (cluster, region) pair.
type RDSLister func(ctx context.Context, cluster, region string) ([]rds.InstanceInfo, error)

// RedisLister fetches all cache nodes for one (cluster, region) pair.
type RedisLister func(ctx context.Context, cluster, region string) ([]elasticache.NodeInfo, error)

func DefaultRDSLister(endpointUrl string) RDSLister {
	return func(ctx context.Context, cluster, region string) ([]rds.InstanceInfo, error) {
		cc, err := connector.NewCloudConnector(cluster, region, endpointUrl)
		if err != nil {
			return nil, err
		}
		return rds.NewClient(cc.AWSConfig.Config, cluster).ListInstances(ctx)
	}
}

func DefaultRedisLister(endpointUrl string) RedisLister {
	return func(ctx context.Context, cluster, region string) ([]elasticache.NodeInfo, error) {
		cc, err := connector.NewCloudConnector(cluster, region, endpointUrl)
		if err != nil {
			return nil, err
		}
		return elasticache.NewClient(cc.AWSConfig.Config, cluster).ListNodes(ctx)
	}
}

// DefaultRDSModifier returns the SDK-backed apply step for RDS plans.
func DefaultRDSModifier(endpointUrl string) func(ctx context.Context, cluster, region, instance, version string) error {
	return func(ctx context.Context, cluster, region, instance, version string) error {
		cc, err := connector.NewCloudConnector(cluster, region, endpointUrl)
		if err != nil {
			return err
		}
		return rds.NewClient(cc.AWSConfig.Config, cluster).ModifyEngineVersion(ctx, instance, version)
	}
}

// DefaultRedisModifier returns the SDK-backed apply step for Redis plans.
func DefaultRedisModifier(endpointUrl string) func(ctx context.Context, cluster, region, group, version string) error {
	return func(ctx context.Context, cluster, region, group, version string) error {
		cc, err := connector.NewCloudConnector(cluster, region, endpointUrl)
		if err != nil {
			return err
		}
		return elasticache.NewClient(cc.AWSConfig.Config, cluster).ModifyEngineVersion(ctx, group, version)
	}
}

// GatherRDS queries clusters in sorted identifier order so the accumulated
// inventory, and everything planned from it, is deterministic.
func GatherRDS(ctx context.Context, clusters map[string]string, list RDSLister) []rds.InstanceInfo {
	logger := logging.GetLogManager()
	var all []rds.InstanceInfo
	for _, id := range config.SortedIdentifiers(clusters) {
		region := clusters[id]
		logger.Info("Querying cluster", "cluster", id, "region", region)
		instances, err := list(ctx, id, region)
		if err != nil {
			logger.Error("Error querying cluster, skipping it", "cluster", id, "region", region, "err", err)
			continue
		}
		all = append(all, instances...)
	}
	return all
}

// GatherRedis mirrors GatherRDS for ElastiCache replication groups.
func GatherRedis(ctx context.Context, clusters map[string]string, list RedisLister) []elasticache.NodeInfo {
	logger := logging.GetLogManager()
	var all []elasticache.NodeInfo
	for _, id := range config.SortedIdentifiers(clusters) {
		region := clusters[id]
		logger.Info("Querying cluster", "cluster", id, "region", region)
		nodes, err := list(ctx, id, region)
		if err != nil {
			logger.Error("Error querying cluster, skipping it", "cluster", id, "region", region, "err", err)
			continue
		}
		all = append(all, nodes...)
	}
	return all
}
