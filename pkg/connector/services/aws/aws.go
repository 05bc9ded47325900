package awsconnector

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
)

var countRetries = 10

type AWSConfig struct {
	Profile string
	aws.Config
}

func InitAWSConfiguration(profile string, region string, awsEndpoint string) (awsc AWSConfig) {
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if awsEndpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           awsEndpoint,
				SigningRegion: os.Getenv("AWS_DEFAULT_REGION"),
			}, nil
		}

		// returning EndpointNotFoundError will allow the service to fallback to it's default resolution
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	// Load the Shared AWS Configuration (~/.aws/config)
	cfg, _ := config.LoadDefaultConfig(context.TODO(), config.WithSharedConfigProfile(profile),
		config.WithRegion(region),
		config.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), countRetries)
		}),
		config.WithEndpointResolverWithOptions(customResolver),
	)
	cfg.RetryMode = aws.RetryModeStandard
	awsc = AWSConfig{Profile: profile, Config: cfg}
	return
}

func (ac *AWSConfig) TestConnection() bool {
	_, err := ac.Credentials.Retrieve(context.TODO())
	return err == nil
}
