// Package connector builds per-account AWS sessions. Every cluster in a
// descriptor maps to a shared-config profile of the same name, so each
// (cluster, region) pair gets its own connector.
package connector

import (
	"errors"

	awsconfig "github.com/opsgrid/dbfleet/pkg/connector/services/aws"
	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/sts"
	"github.com/opsgrid/dbfleet/pkg/io/logging"

	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
)

// NewCloudConnector resolves credentials for one cluster. An invalid or
// expired session is reported as an error so inventory loops can record it
// and move to the next cluster.
func NewCloudConnector(profile string, region string, endpointUrl string) (*CloudConnector, error) {
	cc := &CloudConnector{
		AWSConfig: awsconfig.InitAWSConfiguration(profile, region, endpointUrl),
		logger:    logging.GetLogManager(),
	}
	if !cc.AWSConfig.TestConnection() {
		return nil, errors.New("invalid credentials or expired session for profile " + profile)
	}
	return cc, nil
}

// Whoami resolves the caller identity behind this connector's profile.
func (cc *CloudConnector) Whoami() *awssts.GetCallerIdentityOutput {
	return sts.Whoami(cc.AWSConfig.Config)
}
