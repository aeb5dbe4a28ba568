package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cindex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
alphabet: PROGRAMMER_TEXT
cost_model: msgpack+s2
additive:
  max_iterations: 50
store:
  path: /var/lib/cindex
  compression: lz4
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "PROGRAMMER_TEXT", cfg.Alphabet)
	require.Equal(t, "msgpack+s2", cfg.CostModel)
	require.Equal(t, 50, cfg.Additive.MaxIterations)
	require.Equal(t, DefaultConfig().Additive.SampleEntries, cfg.Additive.SampleEntries)
	require.Equal(t, "/var/lib/cindex", cfg.Store.Path)
	require.Equal(t, "lz4", cfg.Store.Compression)
	require.Equal(t, "cindex", cfg.Store.Namespace)

	level, err := cfg.SlogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "alphabet: [unclosed"},
		{"negative iterations", "additive:\n  max_iterations: -1\n"},
		{"negative samples", "additive:\n  sample_entries: -1\n"},
		{"negative cache", "cache:\n  max_reports: -1\n"},
		{"unknown compression", "store:\n  compression: brotli\n"},
		{"unknown log level", "log_level: chatty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "cindex.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}
