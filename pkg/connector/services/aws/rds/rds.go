package rds

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsrds "github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"
	"github.com/opsgrid/dbfleet/pkg/io/logging"
)

func NewClient(cfg aws.Config, cluster string) *Client {
	return &Client{
		api:     awsrds.NewFromConfig(cfg),
		cluster: cluster,
		logger:  logging.GetLogManager(),
	}
}

// NewClientWithAPI exists for tests.
func NewClientWithAPI(api DBInstancesAPI, cluster string) *Client {
	return &Client{api: api, cluster: cluster, logger: logging.GetLogManager()}
}

// aws rds describe-db-instances
//
// ListInstances queries the identifier list first, then issues one detail
// query per instance. A failed detail query skips that instance only; a
// failed list query fails the whole cluster and the caller records it.
func (c *Client) ListInstances(ctx context.Context) ([]InstanceInfo, error) {
	output, err := c.api.DescribeDBInstances(ctx, &awsrds.DescribeDBInstancesInput{
		Filters: []types.Filter{{
			Name:   aws.String("engine"),
			Values: []string{"postgres"},
		}},
	})
	if err != nil {
		return nil, err
	}

	var instances []InstanceInfo
	for _, inst := range output.DBInstances {
		id := aws.ToString(inst.DBInstanceIdentifier)
		info, err := c.describeInstance(ctx, id)
		if err != nil {
			c.logger.Error("Error on describing instance, skipping it", "cluster", c.cluster, "instance", id, "err", err)
			continue
		}
		instances = append(instances, info)
	}
	return instances, nil
}

func (c *Client) describeInstance(ctx context.Context, id string) (InstanceInfo, error) {
	output, err := c.api.DescribeDBInstances(ctx, &awsrds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(id),
	})
	if err != nil {
		return InstanceInfo{}, err
	}
	if len(output.DBInstances) == 0 {
		return InstanceInfo{}, fmt.Errorf("instance %q disappeared between list and describe", id)
	}

	d := output.DBInstances[0]
	info := InstanceInfo{
		Identifier:       aws.ToString(d.DBInstanceIdentifier),
		Cluster:          c.cluster,
		InstanceClass:    aws.ToString(d.DBInstanceClass),
		EngineVersion:    aws.ToString(d.EngineVersion),
		AllocatedStorage: aws.ToInt32(d.AllocatedStorage),
		StorageType:      aws.ToString(d.StorageType),
	}
	if d.Endpoint != nil {
		info.Endpoint = aws.ToString(d.Endpoint.Address)
		info.Port = aws.ToInt32(d.Endpoint.Port)
	}
	return info, nil
}

// aws rds modify-db-instance
//
// ModifyEngineVersion is the only mutating call. The target stays within the
// current major, so no major-version override is requested.
func (c *Client) ModifyEngineVersion(ctx context.Context, id string, target string) error {
	_, err := c.api.ModifyDBInstance(ctx, &awsrds.ModifyDBInstanceInput{
		DBInstanceIdentifier: aws.String(id),
		EngineVersion:        aws.String(target),
		ApplyImmediately:     aws.Bool(true),
	})
	return err
}
