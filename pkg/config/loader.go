package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadDotEnv loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("%w: %s: %v", ErrInvalidFormat, p, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from configPath, falling back to defaults
// when the file does not exist. Environment variables win over file values.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		config := getDefaultConfig()
		mergeEnvVars(config)
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	config := getDefaultConfig()
	switch ext := filepath.Ext(configPath); ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	fillMissingSections(config)
	mergeEnvVars(config)
	return config, nil
}

// SaveConfig writes config to configPath in the format implied by its extension
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		configPath = "./pickupwatch.yaml"
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	switch ext := filepath.Ext(configPath); ext {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("config serialization failed: %w", err)
	}

	// credentials may be inside
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns a fresh config at default values with the environment applied
func DefaultConfig() *Config {
	config := getDefaultConfig()
	mergeEnvVars(config)
	return config
}

// getDefaultConfigPath: current directory > user config directory > system directory
func getDefaultConfigPath() string {
	paths := []string{
		"./pickupwatch.yaml",
		"./pickupwatch.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".pickupwatch", "config.yaml"),
			filepath.Join(homeDir, ".pickupwatch", "config.json"),
		)
	}

	paths = append(paths, "/etc/pickupwatch/config.yaml")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return "./pickupwatch.yaml"
}

// fillMissingSections replaces sections a partial file set to null
func fillMissingSections(config *Config) {
	if config.Target == nil {
		config.Target = NewTargetConfig()
	}
	if config.Browser == nil {
		config.Browser = NewBrowserConfig()
	}
	if config.Telegram == nil {
		config.Telegram = NewTelegramConfig()
	}
	if config.Discord == nil {
		config.Discord = NewDiscordConfig()
	}
	if config.App == nil {
		config.App = NewAppConfig()
	}
}

func mergeEnvVars(config *Config) {
	fillMissingSections(config)
	mergeTargetEnvVars(config.Target)
	mergeBrowserEnvVars(config.Browser)
	mergeNotificationEnvVars(config.Telegram, config.Discord)
	mergeAppEnvVars(config.App)
}

func mergeTargetEnvVars(t *TargetConfig) {
	t.URL = getEnv("PICKUP_URL", t.URL)
	t.PostalCode = getEnv("PICKUP_POSTAL_CODE", t.PostalCode)
}

func mergeBrowserEnvVars(b *BrowserConfig) {
	b.Headless = getEnvBool("BROWSER_HEADLESS", b.Headless)
	b.ChromePath = getEnv("CHROME_PATH", b.ChromePath)
	b.UserAgent = getEnv("BROWSER_USER_AGENT", b.UserAgent)
	b.MaxTriggerAttempts = getEnvInt("BROWSER_MAX_TRIGGER_ATTEMPTS", b.MaxTriggerAttempts)
}

func mergeNotificationEnvVars(t *TelegramConfig, d *DiscordConfig) {
	t.BotToken = getEnv("TELEGRAM_TOKEN", t.BotToken)
	t.ChatID = getEnv("TELEGRAM_CHAT_ID", t.ChatID)
	d.WebhookURL = getEnv("DISCORD_WEBHOOK_URL", d.WebhookURL)
}

func mergeAppEnvVars(a *AppConfig) {
	a.LogLevel = getEnv("LOG_LEVEL", a.LogLevel)
	a.LogFile = getEnv("LOG_FILE", a.LogFile)
	a.Development = getEnvBool("LOG_DEVELOPMENT", a.Development)
}

// WriteDefaultConfig saves the defaults to path. An existing file is kept unless force is set.
func WriteDefaultConfig(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	return SaveConfig(getDefaultConfig(), path)
}

// Render formats config as YAML
func Render(config *Config) (string, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("config serialization failed: %w", err)
	}
	return string(data), nil
}
