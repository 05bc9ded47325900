package elasticache

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec "github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/opsgrid/dbfleet/pkg/io/logging"
)

func NewClient(cfg aws.Config, cluster string) *Client {
	return &Client{
		api:     awsec.NewFromConfig(cfg),
		cluster: cluster,
		logger:  logging.GetLogManager(),
	}
}

// NewClientWithAPI exists for tests.
func NewClientWithAPI(api CacheAPI, cluster string) *Client {
	return &Client{api: api, cluster: cluster, logger: logging.GetLogManager()}
}

// aws elasticache describe-replication-groups
//
// ListNodes walks every replication group and issues one detail query per
// member cache cluster. A failed member query skips that member only.
func (c *Client) ListNodes(ctx context.Context) ([]NodeInfo, error) {
	output, err := c.api.DescribeReplicationGroups(ctx, &awsec.DescribeReplicationGroupsInput{})
	if err != nil {
		return nil, err
	}

	var nodes []NodeInfo
	for _, group := range output.ReplicationGroups {
		groupID := aws.ToString(group.ReplicationGroupId)
		for _, memberID := range group.MemberClusters {
			info, err := c.describeMember(ctx, groupID, memberID)
			if err != nil {
				c.logger.Error("Error on describing cache cluster, skipping it", "cluster", c.cluster, "node", memberID, "err", err)
				continue
			}
			nodes = append(nodes, info)
		}
	}
	return nodes, nil
}

func (c *Client) describeMember(ctx context.Context, groupID string, memberID string) (NodeInfo, error) {
	output, err := c.api.DescribeCacheClusters(ctx, &awsec.DescribeCacheClustersInput{
		CacheClusterId: aws.String(memberID),
	})
	if err != nil {
		return NodeInfo{}, err
	}
	if len(output.CacheClusters) == 0 {
		return NodeInfo{}, fmt.Errorf("cache cluster %q disappeared between list and describe", memberID)
	}

	d := output.CacheClusters[0]
	return NodeInfo{
		Identifier:       aws.ToString(d.CacheClusterId),
		ReplicationGroup: groupID,
		Cluster:          c.cluster,
		NodeType:         aws.ToString(d.CacheNodeType),
		EngineVersion:    aws.ToString(d.EngineVersion),
	}, nil
}

// aws elasticache modify-replication-group
func (c *Client) ModifyEngineVersion(ctx context.Context, groupID string, target string) error {
	_, err := c.api.ModifyReplicationGroup(ctx, &awsec.ModifyReplicationGroupInput{
		ReplicationGroupId: aws.String(groupID),
		EngineVersion:      aws.String(target),
		ApplyImmediately:   aws.Bool(true),
	})
	return err
}
