package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsgrid/dbfleet/pkg/connector/services/aws/rds"
)

func TestPickRejectsEmptyInventory(t *testing.T) {
	_, err := Pick(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no instances")
}

func TestOpenRejectsMissingEndpoint(t *testing.T) {
	inst := rds.InstanceInfo{Identifier: "pg-main"}

	err := Open(context.Background(), inst, "postgres", "admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reachable endpoint")
}
