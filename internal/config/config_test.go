//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.ZetaTerms)
	assert.Equal(t, 10, cfg.Game.RoundSeconds)
	assert.Equal(t, 2*time.Second, cfg.Game.ResultDelay)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Path)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
zeta_terms: 5000
log_level: debug
game:
  round_seconds: 15
  result_delay: 500ms
server:
  addr: 127.0.0.1:9090
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.ZetaTerms)
	assert.Equal(t, 1_000_000, cfg.MaxPrimeN)
	assert.Equal(t, 15, cfg.Game.RoundSeconds)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.ResultDelay)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero terms", body: "zeta_terms: 0\n"},
		{name: "unknown log level", body: "log_level: chatty\n"},
		{name: "round too long", body: "game:\n  round_seconds: 999\n"},
		{name: "bad addr", body: "server:\n  addr: nowhere\n"},
		{name: "malformed yaml", body: "zeta_terms: [1, 2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandTilde("~/x/y.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x", "y.yaml"), got)

	got, err = expandTilde("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}
