package config

import (
	"fmt"
	"net/url"
	"strings"

	"pickupwatch/pkg/logger"
)

// Config is built once at startup and passed explicitly to every component
type Config struct {
	Target   *TargetConfig   `json:"target" yaml:"target"`
	Browser  *BrowserConfig  `json:"browser" yaml:"browser"`
	Telegram *TelegramConfig `json:"telegram" yaml:"telegram"`
	Discord  *DiscordConfig  `json:"discord" yaml:"discord"`
	App      *AppConfig      `json:"app" yaml:"app"`
}

// TargetConfig names the product page and the postal code to query
type TargetConfig struct {
	URL        string `json:"url" yaml:"url"`
	PostalCode string `json:"postal_code" yaml:"postal_code"`
}

// AppConfig covers logging and run mode
type AppConfig struct {
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFile     string `json:"log_file" yaml:"log_file"`
	Development bool   `json:"development" yaml:"development"`
	DryRun      bool   `json:"dry_run" yaml:"dry_run"`
}

const (
	DefaultTargetURL  = "https://www.apple.com/sg/shop/buy-iphone/iphone-17-pro/6.9-inch-display-512gb-silver"
	DefaultPostalCode = "819666"
)

func NewTargetConfig() *TargetConfig {
	return &TargetConfig{
		URL:        getEnv("PICKUP_URL", DefaultTargetURL),
		PostalCode: getEnv("PICKUP_POSTAL_CODE", DefaultPostalCode),
	}
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		Development: getEnvBool("LOG_DEVELOPMENT", false),
	}
}

// getDefaultConfig returns every section at its default value
func getDefaultConfig() *Config {
	return &Config{
		Target:   NewTargetConfig(),
		Browser:  NewBrowserConfig(),
		Telegram: NewTelegramConfig(),
		Discord:  NewDiscordConfig(),
		App:      NewAppConfig(),
	}
}

// Validate checks the sections that a run cannot do without.
// Notification sections are not checked here: a bad channel only fails its own send.
func (c *Config) Validate() error {
	if c.Target == nil || c.Browser == nil || c.App == nil {
		return fmt.Errorf("%w: target, browser and app sections are required", ErrMissingRequired)
	}
	if err := c.Target.Validate(); err != nil {
		return err
	}
	if err := c.Browser.Validate(); err != nil {
		return err
	}
	if _, err := logger.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return nil
}

func (t *TargetConfig) Validate() error {
	if strings.TrimSpace(t.URL) == "" {
		return fmt.Errorf("%w: target.url", ErrMissingRequired)
	}
	u, err := url.ParseRequestURI(t.URL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: target.url %q is not an absolute URL", ErrInvalidValue, t.URL)
	}
	if strings.TrimSpace(t.PostalCode) == "" {
		return fmt.Errorf("%w: target.postal_code", ErrMissingRequired)
	}
	return nil
}

// Masked returns a copy safe to print: credentials keep only their last characters
func (c *Config) Masked() *Config {
	out := *c
	if c.Telegram != nil {
		tg := *c.Telegram
		tg.BotToken = maskSecret(tg.BotToken)
		out.Telegram = &tg
	}
	if c.Discord != nil {
		dc := *c.Discord
		dc.WebhookURL = maskSecret(dc.WebhookURL)
		out.Discord = &dc
	}
	return &out
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}
