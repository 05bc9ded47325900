package elasticache

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec "github.com/aws/aws-sdk-go-v2/service/elasticache"
	"github.com/aws/aws-sdk-go-v2/service/elasticache/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCacheAPI struct {
	groups     []types.ReplicationGroup
	members    map[string]types.CacheCluster
	failMember map[string]bool
	modified   []*awsec.ModifyReplicationGroupInput
}

func (f *fakeCacheAPI) DescribeReplicationGroups(ctx context.Context, params *awsec.DescribeReplicationGroupsInput, optFns ...func(*awsec.Options)) (*awsec.DescribeReplicationGroupsOutput, error) {
	return &awsec.DescribeReplicationGroupsOutput{ReplicationGroups: f.groups}, nil
}

func (f *fakeCacheAPI) DescribeCacheClusters(ctx context.Context, params *awsec.DescribeCacheClustersInput, optFns ...func(*awsec.Options)) (*awsec.DescribeCacheClustersOutput, error) {
	id := aws.ToString(params.CacheClusterId)
	if f.failMember[id] {
		return nil, errors.New("throttled")
	}
	member, ok := f.members[id]
	if !ok {
		return &awsec.DescribeCacheClustersOutput{}, nil
	}
	return &awsec.DescribeCacheClustersOutput{CacheClusters: []types.CacheCluster{member}}, nil
}

func (f *fakeCacheAPI) ModifyReplicationGroup(ctx context.Context, params *awsec.ModifyReplicationGroupInput, optFns ...func(*awsec.Options)) (*awsec.ModifyReplicationGroupOutput, error) {
	f.modified = append(f.modified, params)
	return &awsec.ModifyReplicationGroupOutput{}, nil
}

func cacheMember(id, version string) types.CacheCluster {
	return types.CacheCluster{
		CacheClusterId: aws.String(id),
		CacheNodeType:  aws.String("cache.m6g.large"),
		EngineVersion:  aws.String(version),
	}
}

func TestListNodes(t *testing.T) {
	api := &fakeCacheAPI{
		groups: []types.ReplicationGroup{{
			ReplicationGroupId: aws.String("sessions"),
			MemberClusters:     []string{"sessions-001", "sessions-002"},
		}},
		members: map[string]types.CacheCluster{
			"sessions-001": cacheMember("sessions-001", "6.0.5"),
			"sessions-002": cacheMember("sessions-002", "6.0.5"),
		},
	}
	client := NewClientWithAPI(api, "acme-db")

	nodes, err := client.ListNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, NodeInfo{
		Identifier:       "sessions-001",
		ReplicationGroup: "sessions",
		Cluster:          "acme-db",
		NodeType:         "cache.m6g.large",
		EngineVersion:    "6.0.5",
	}, nodes[0])
}

func TestListNodesSkipsFailedMember(t *testing.T) {
	api := &fakeCacheAPI{
		groups: []types.ReplicationGroup{{
			ReplicationGroupId: aws.String("sessions"),
			MemberClusters:     []string{"sessions-001", "sessions-002"},
		}},
		members: map[string]types.CacheCluster{
			"sessions-002": cacheMember("sessions-002", "6.0.5"),
		},
		failMember: map[string]bool{"sessions-001": true},
	}
	client := NewClientWithAPI(api, "acme-db")

	nodes, err := client.ListNodes(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "sessions-002", nodes[0].Identifier)
}

func TestModifyEngineVersion(t *testing.T) {
	api := &fakeCacheAPI{}
	client := NewClientWithAPI(api, "acme-db")

	require.NoError(t, client.ModifyEngineVersion(context.Background(), "sessions", "6.2"))

	require.Len(t, api.modified, 1)
	input := api.modified[0]
	assert.Equal(t, "sessions", aws.ToString(input.ReplicationGroupId))
	assert.Equal(t, "6.2", aws.ToString(input.EngineVersion))
	assert.True(t, aws.ToBool(input.ApplyImmediately))
}
