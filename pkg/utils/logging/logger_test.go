package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_ConsoleOnly(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(Options{Console: &buf})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("schedule generated", zap.Int("slots", 21))
	require.NoError(t, logger.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "schedule generated")
	assert.Contains(t, buf.String(), "21")
}

func TestNew_FileIsJSONAtDebug(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(Options{Env: "test", Dir: dir})
	require.NoError(t, err)

	logger.Debug("solver detail", zap.String("store_id", "store-1"))
	require.NoError(t, logger.Sync())

	files, err := filepath.Glob(filepath.Join(dir, "test_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "solver detail", entry["msg"])
	assert.Equal(t, "store-1", entry["store_id"])
	assert.Equal(t, "test", entry["env"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_NoOutputs(t *testing.T) {
	logger, err := New(Options{})
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
