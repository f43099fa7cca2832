package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesToFileAndStdout(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{LogDir: dir, LogMaxFiles: 5}

	var stdout bytes.Buffer
	logger, closeLog, err := cfg.NewLogger("planforge", LogJSON, &stdout, slog.LevelInfo)
	require.NoError(t, err)
	logger.Info("generated", "type", "prd")
	closeLog()

	assert.Contains(t, stdout.String(), `"type":"prd"`)

	files, err := filepath.Glob(filepath.Join(dir, "planforge-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Equal(t, stdout.String(), string(data))
}

func TestPruneLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		f, err := openLogFile(dir, "server", 0, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, f.Close())
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), nil, 0o644))

	require.NoError(t, pruneLogs(dir, "server", 2))

	files, err := filepath.Glob(filepath.Join(dir, "server-*.log"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "server-2025-01-01T02-00-00.log"),
		filepath.Join(dir, "server-2025-01-01T03-00-00.log"),
	}, files)
	assert.FileExists(t, filepath.Join(dir, "other.txt"))
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
