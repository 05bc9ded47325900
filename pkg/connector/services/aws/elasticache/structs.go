package elasticache

import (
	"context"

	awsec "github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/opsgrid/dbfleet/pkg/io/logging"
)

// CacheAPI is the slice of the ElastiCache client the inventory and patch
// paths touch. Tests implement it with fakes.
type CacheAPI interface {
	DescribeReplicationGroups(ctx context.Context, params *awsec.DescribeReplicationGroupsInput, optFns ...func(*awsec.Options)) (*awsec.DescribeReplicationGroupsOutput, error)
	DescribeCacheClusters(ctx context.Context, params *awsec.DescribeCacheClustersInput, optFns ...func(*awsec.Options)) (*awsec.DescribeCacheClustersOutput, error)
	ModifyReplicationGroup(ctx context.Context, params *awsec.ModifyReplicationGroupInput, optFns ...func(*awsec.Options)) (*awsec.ModifyReplicationGroupOutput, error)
}

// NodeInfo describes one member cache cluster of a replication group.
type NodeInfo struct {
	Identifier       string `csv:"node"`
	ReplicationGroup string `csv:"replication_group"`
	Cluster          string `csv:"cluster"`
	NodeType         string `csv:"node_type"`
	EngineVersion    string `csv:"current_version"`
	TargetVersion    string `csv:"target_version"`
}

type Client struct {
	api     CacheAPI
	cluster string
	logger  logging.LogManager
}
