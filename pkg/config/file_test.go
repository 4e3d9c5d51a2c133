package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "DISCORD_WEBHOOK_URL",
		"PICKUP_URL", "PICKUP_POSTAL_CODE", "BROWSER_HEADLESS", "CHROME_PATH",
		"BROWSER_USER_AGENT", "BROWSER_MAX_TRIGGER_ATTEMPTS",
		"LOG_LEVEL", "LOG_FILE", "LOG_DEVELOPMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultTargetURL, cfg.Target.URL)
	assert.Equal(t, DefaultPostalCode, cfg.Target.PostalCode)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 12, cfg.Browser.MaxTriggerAttempts)
	assert.False(t, cfg.Telegram.Configured())
	assert.False(t, cfg.Discord.Configured())
	assert.NoError(t, cfg.Validate())
}

func TestSaveAndLoadConfig(t *testing.T) {
	clearEnv(t)

	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			original := DefaultConfig()
			original.Target.PostalCode = "238859"
			original.Telegram.BotToken = "123:abc"
			original.Telegram.ChatID = "-1001"
			original.App.LogLevel = "debug"

			require.NoError(t, SaveConfig(original, path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			loaded, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, "238859", loaded.Target.PostalCode)
			assert.True(t, loaded.Telegram.Configured())
			assert.Equal(t, "debug", loaded.App.LogLevel)
			assert.Equal(t, DefaultDiscordColor, loaded.Discord.Color)
		})
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target:\n  postal_code: \"018956\"\ndiscord: null\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "018956", cfg.Target.PostalCode)
	assert.Equal(t, DefaultTargetURL, cfg.Target.URL)
	require.NotNil(t, cfg.Discord)
	assert.Equal(t, DefaultDiscordName, cfg.Discord.Username)
}

func TestLoadConfigRejectsUnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("x = 1"), 0o600))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestConfigWithEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "env-token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.com/api/webhooks/1/x")
	t.Setenv("PICKUP_POSTAL_CODE", "049315")
	t.Setenv("BROWSER_HEADLESS", "true")
	t.Setenv("LOG_LEVEL", "debug")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("telegram:\n  bot_token: file-token\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "42", cfg.Telegram.ChatID)
	assert.True(t, cfg.Discord.Configured())
	assert.Equal(t, "049315", cfg.Target.PostalCode)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("TELEGRAM_CHAT_ID=777\nTELEGRAM_TOKEN=from-file\n"), 0o600))
	t.Setenv("TELEGRAM_TOKEN", "already-set")
	os.Unsetenv("TELEGRAM_CHAT_ID")

	require.NoError(t, LoadDotEnv(envFile, filepath.Join(dir, "missing.env")))

	assert.Equal(t, "777", os.Getenv("TELEGRAM_CHAT_ID"))
	assert.Equal(t, "already-set", os.Getenv("TELEGRAM_TOKEN"))
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "empty url", mutate: func(c *Config) { c.Target.URL = "" }, wantErr: ErrMissingRequired},
		{name: "relative url", mutate: func(c *Config) { c.Target.URL = "shop/buy" }, wantErr: ErrInvalidValue},
		{name: "empty postal code", mutate: func(c *Config) { c.Target.PostalCode = " " }, wantErr: ErrMissingRequired},
		{name: "zero attempts", mutate: func(c *Config) { c.Browser.MaxTriggerAttempts = 0 }, wantErr: ErrInvalidValue},
		{name: "negative timeout", mutate: func(c *Config) { c.Browser.WaitTimeout = -1 }, wantErr: ErrInvalidValue},
		{name: "bad webhook is left to the channel", mutate: func(c *Config) { c.Discord.WebhookURL = "discord.com/api/webhooks/123/abc" }},
		{name: "bad log level", mutate: func(c *Config) { c.App.LogLevel = "chatty" }, wantErr: ErrInvalidValue},
		{name: "missing telegram is fine", mutate: func(c *Config) { c.Telegram = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "pickupwatch.yaml")

	require.NoError(t, WriteDefaultConfig(path, false))
	assert.ErrorIs(t, WriteDefaultConfig(path, false), ErrConfigExists)
	assert.NoError(t, WriteDefaultConfig(path, true))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPostalCode, cfg.Target.PostalCode)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMaskedHidesSecrets(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	cfg.Telegram.BotToken = "123456:ABCDEFGHIJ"
	cfg.Discord.WebhookURL = "https://discord.com/api/webhooks/1/secret-token"

	masked := cfg.Masked()
	out, err := Render(masked)
	require.NoError(t, err)

	assert.NotContains(t, out, "ABCDEFGHIJ")
	assert.NotContains(t, out, "secret-token")
	assert.Contains(t, out, "GHIJ")
	assert.Equal(t, "123456:ABCDEFGHIJ", cfg.Telegram.BotToken)
}

func TestDiscordValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DiscordConfig
		wantErr bool
	}{
		{name: "unset", cfg: DiscordConfig{}},
		{name: "valid", cfg: DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/1/abc", Color: DefaultDiscordColor}},
		{name: "no scheme", cfg: DiscordConfig{WebhookURL: "discord.com/api/webhooks/1/abc"}, wantErr: true},
		{name: "color out of range", cfg: DiscordConfig{WebhookURL: "https://discord.com/api/webhooks/1/abc", Color: 0x1000000}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidValue)
				return
			}
			assert.NoError(t, err)
		})
	}
}
