package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaeyoung0509/orderedbatch"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "replay.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
source = "dynamodb"
concurrency = 4
mode = "fail-fast"
log_level = "debug"
fail_identifiers = ["200", "300"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Config{
		Source:           "dynamodb",
		Concurrency:      4,
		Mode:             orderedbatch.ModeFailFast,
		LogLevel:         "debug",
		FailIdentifiers:  []string{"200", "300"},
		MetricsNamespace: "orderedbatch",
	}, cfg)
	require.True(t, cfg.ShouldFail("300"))
	require.False(t, cfg.ShouldFail("100"))
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "unknown source", body: `source = "kafka"`},
		{name: "zero concurrency", body: `concurrency = 0`},
		{name: "unknown mode", body: `mode = "sometimes"`},
		{name: "unknown key", body: `concurency = 3`},
		{name: "empty log level", body: `log_level = ""`},
		{name: "malformed", body: `source = `},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(writeConfig(t, tc.body))
			require.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
