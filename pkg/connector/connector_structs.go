package connector

import (
	awsconfig "github.com/opsgrid/dbfleet/pkg/connector/services/aws"
	"github.com/opsgrid/dbfleet/pkg/io/logging"
)

type CloudConnector struct {
	AWSConfig awsconfig.AWSConfig
	logger    logging.LogManager
}
