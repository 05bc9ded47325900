package rds

import (
	"context"

	awsrds "github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/opsgrid/dbfleet/pkg/io/logging"
)

// DBInstancesAPI is the slice of the RDS client the inventory and upgrade
// paths touch. Tests implement it with fakes.
type DBInstancesAPI interface {
	DescribeDBInstances(ctx context.Context, params *awsrds.DescribeDBInstancesInput, optFns ...func(*awsrds.Options)) (*awsrds.DescribeDBInstancesOutput, error)
	ModifyDBInstance(ctx context.Context, params *awsrds.ModifyDBInstanceInput, optFns ...func(*awsrds.Options)) (*awsrds.ModifyDBInstanceOutput, error)
}

// InstanceInfo describes one RDS PostgreSQL instance. Immutable once
// fetched; the target version is filled in by the resolver.
type InstanceInfo struct {
	Identifier       string `csv:"instance"`
	Cluster          string `csv:"cluster"`
	InstanceClass    string `csv:"instance_type"`
	EngineVersion    string `csv:"current_version"`
	TargetVersion    string `csv:"target_version"`
	AllocatedStorage int32  `csv:"storage_gb"`
	StorageType      string `csv:"storage_type"`
	Endpoint         string `csv:"-"`
	Port             int32  `csv:"-"`
}

type Client struct {
	api     DBInstancesAPI
	cluster string
	logger  logging.LogManager
}
