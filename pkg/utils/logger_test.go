package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := InitLogger("sports-club", dir, false)
	require.NoError(t, err)

	logger.Info("Booking created")
	_ = logger.Sync()

	body, err := os.ReadFile(filepath.Join(dir, "sports-club.log"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"msg":"Booking created"`)
	assert.Contains(t, string(body), `"app":"sports-club"`)
}

func TestInitLoggerWithoutDirectory(t *testing.T) {
	logger, err := InitLogger("sports-club", "", true)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
