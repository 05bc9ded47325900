package logging

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	lm := GetLogManager()
	mgr, ok := lm.(*logManager)
	require.True(t, ok)

	// Quiet by default: progress lines appear only with -v or -d.
	assert.Equal(t, log.WarnLevel, mgr.logger.GetLevel())

	lm.SetVerboseLevel()
	assert.Equal(t, log.InfoLevel, mgr.logger.GetLevel())

	lm.SetDebugLevel()
	assert.Equal(t, log.DebugLevel, mgr.logger.GetLevel())
}

func TestGetLogManagerIsSingleton(t *testing.T) {
	assert.Same(t, GetLogManager(), GetLogManager())
}
