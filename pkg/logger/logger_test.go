package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitWritesJSONToFile(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	path := filepath.Join(t.TempDir(), "logs", "pulse.log")
	require.NoError(t, Init("warn", "json", "file", path))

	Info("dropped below level")
	Warn("post cascade incomplete", zap.String("post_id", "p1"))
	Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "dropped below level")
	assert.Contains(t, string(raw), `"post_id":"p1"`)
}

func TestInitRequiresFilePath(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	assert.Error(t, Init("info", "console", "file", ""))
}
