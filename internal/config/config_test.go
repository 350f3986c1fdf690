package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoad_ValidFull(t *testing.T) {
	yaml := `
server:
  host: "127.0.0.1"
  port: 9090
  allowed_origins:
    - "https://events.example.com"
    - "http://localhost:5173"
  read_header_timeout: 5s
  shutdown_timeout: 20s
notifications:
  disabled: true
  buffer_size: 128
logging:
  level: debug
  format: text
`
	cfg, err := Load(writeTemp(t, yaml))
	require.NoError(t, err)

	// Server
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://events.example.com", "http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 20*time.Second, cfg.Server.ShutdownTimeout)

	// Notifications
	assert.True(t, cfg.Notifications.Disabled)
	assert.Equal(t, int64(128), cfg.Notifications.BufferSize)

	// Logging
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_Defaults(t *testing.T) {
	// Minimal YAML: everything should get defaults
	cfg, err := Load(writeTemp(t, "{}"))
	require.NoError(t, err)
	assertDefaults(t, cfg)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assertDefaults(t, cfg)
}

func assertDefaults(t *testing.T, cfg *Config) {
	t.Helper()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Notifications.Disabled)
	assert.Equal(t, int64(64), cfg.Notifications.BufferSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeTemp(t, "{{{{not yaml"))
	assert.Error(t, err)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad port", "server:\n  port: 99999\n"},
		{"bad log level", "logging:\n  level: verbose\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"empty origin", "server:\n  allowed_origins:\n    - \"https://ok.example.com\"\n    - \"  \"\n"},
		{"negative buffer", "notifications:\n  buffer_size: -1\n"},
		{"negative shutdown timeout", "server:\n  shutdown_timeout: -1s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeTemp(t, tt.yaml))
			assert.ErrorContains(t, err, "validating config")
		})
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("EVENTS_PORT", "7070")
	t.Setenv("EVENTS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")
	t.Setenv("EVENTS_LOG_LEVEL", "warn")
	t.Setenv("EVENTS_NOTIFICATIONS_DISABLED", "true")

	yaml := `
server:
  port: 9090
  allowed_origins:
    - "https://file.example.com"
logging:
  level: debug
`
	cfg, err := Load(writeTemp(t, yaml))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Notifications.Disabled)
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("EVENTS_PORT", "not-a-number")

	_, err := Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("EVENTS_LOG_FORMAT=text\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("EVENTS_LOG_FORMAT") })

	cfg, err := Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_PUBLIC_ORIGIN", "https://public.example.com")
	t.Setenv("TEST_BIND_HOST", "10.0.0.5")

	yaml := `
server:
  host: "${TEST_BIND_HOST}"
  allowed_origins:
    - "${TEST_PUBLIC_ORIGIN}"
`
	cfg, err := Load(writeTemp(t, yaml))
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.5", cfg.Server.Host)
	assert.Equal(t, "https://public.example.com", cfg.Server.AllowedOrigins[0])
}
