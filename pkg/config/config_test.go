package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	viper.Reset()
	globalConfig = Config{}

	require.NoError(t, Load(t.TempDir()))
	cfg := GetConfig()

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.RSVP.Backend)
	assert.Equal(t, 10*time.Second, cfg.Sheets.Timeout)
	assert.Equal(t, "hmac", cfg.Checkout.Provider)

	start, err := cfg.Challenge.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 26, 21, 0, 0, 0, time.UTC), start.UTC())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	viper.Reset()
	globalConfig = Config{}

	dir := t.TempDir()
	yaml := []byte("server:\n  port: 8081\nsheets:\n  enabled: true\n  webhook_url: https://script.example.com/exec\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0600))

	t.Setenv("RSVP_BACKEND", "redis")
	t.Setenv("SERVER_PORT", "9000")

	require.NoError(t, Load(dir))
	cfg := GetConfig()

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Sheets.Enabled)
	assert.Equal(t, "https://script.example.com/exec", cfg.Sheets.WebhookURL)
	assert.Equal(t, "redis", cfg.RSVP.Backend)
}

func TestChallengeConfig_StartInvalid(t *testing.T) {
	_, err := ChallengeConfig{StartsAt: "tomorrow"}.Start()
	assert.Error(t, err)
}
