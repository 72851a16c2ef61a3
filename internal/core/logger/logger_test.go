package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// TestInit verifies logger initialization for different environments.
func TestInit(t *testing.T) {
	t.Run("Development", func(t *testing.T) {
		err := Init("development", "debug")
		require.NoError(t, err)
		assert.True(t, Get().Core().Enabled(zap.DebugLevel))
	})

	t.Run("Production", func(t *testing.T) {
		err := Init("production", "info")
		require.NoError(t, err)
		assert.False(t, Get().Core().Enabled(zap.DebugLevel))
		assert.True(t, Get().Core().Enabled(zap.InfoLevel))
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		err := Init("development", "invalid_level")
		require.NoError(t, err)
		assert.True(t, Get().Core().Enabled(zap.DebugLevel))
	})
}

// TestGet verifies that Get never returns nil.
func TestGet(t *testing.T) {
	Set(nil)
	assert.NotNil(t, Get())

	require.NoError(t, Init("development", "info"))
	assert.NotNil(t, Get())
}

// TestNamed verifies that component loggers carry their name.
func TestNamed(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	Set(zap.New(core))
	defer Set(nil)

	Named("synchronizer").Info("refreshed")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "synchronizer", entries[0].LoggerName)
	assert.Equal(t, "refreshed", entries[0].Message)
}

// TestSync verifies that Sync does not panic even if logger is nil.
func TestSync(t *testing.T) {
	Set(nil)
	Sync()

	require.NoError(t, Init("development", "info"))
	Sync()
}
