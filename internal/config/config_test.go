package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  path: /tmp/c.db
log:
  level: debug
notifications:
  permission: denied
haptics:
  bell: false
chat:
  reply_delay_min: 10ms
  reply_delay_max: 20ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, PermissionDenied, cfg.Notifications.Permission)
	assert.False(t, cfg.Haptics.Bell)

	lo, hi, err := cfg.ReplyDelay()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Millisecond, lo)
	assert.Equal(t, 20*time.Millisecond, hi)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHALLENGELY_DB", "/env/db.sqlite")
	t.Setenv("CHALLENGELY_LOG_LEVEL", "warn")
	t.Setenv("CHALLENGELY_NOTIFICATIONS", "granted")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/env/db.sqlite", cfg.Database.Path)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, PermissionGranted, cfg.Notifications.Permission)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CHALLENGELY_LOG_LEVEL=error\n"), 0o644))

	// Register cleanup for the variable godotenv is about to set.
	t.Setenv("CHALLENGELY_LOG_LEVEL", "")
	os.Unsetenv("CHALLENGELY_LOG_LEVEL")

	require.NoError(t, LoadEnv(filepath.Join(dir, "missing.env"), envFile))
	assert.Equal(t, "error", os.Getenv("CHALLENGELY_LOG_LEVEL"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad permission", func(c *Config) { c.Notifications.Permission = "maybe" }, true},
		{"bad duration", func(c *Config) { c.Chat.ReplyDelayMin = "soon" }, true},
		{"inverted bounds", func(c *Config) { c.Chat.ReplyDelayMin = "5s" }, true},
		{"zero lower bound", func(c *Config) { c.Chat.ReplyDelayMin = "0s" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.Share.OutputDir = "/tmp/cards"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
