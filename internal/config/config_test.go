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
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
data_dir: /srv/planner
defaults:
  belt: belt3
  rate: "45/2"
logging:
  level: debug
  format: json
server:
  port: 9000
  read_timeout: 5s
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/planner", cfg.DataDir)
	assert.Equal(t, "belt3", cfg.Defaults.Belt)
	assert.Equal(t, "assembler1", cfg.Defaults.Assembler, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)

	d, err := cfg.Defaults.Factory()
	require.NoError(t, err)
	assert.Equal(t, "45/2", d.Rate.String())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("PLANNER_SERVER_PORT", "9191")
	t.Setenv("PLANNER_DATA_DIR", "/tmp/data")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad level", "logging:\n  level: loud\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad rate", "defaults:\n  rate: fast\n"},
		{"negative rate", "defaults:\n  rate: \"-5\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	cfg := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, Default(), cfg)
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, ValidateConfig(cfg))

	d, err := cfg.Defaults.Factory()
	require.NoError(t, err)
	assert.Equal(t, "60", d.Rate.String())
	assert.Equal(t, "iron_ingot", d.Item)
}

func TestValidator_Messages(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "verbose"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Config.Logging.Level")
	assert.Contains(t, err.Error(), "oneof")
}
