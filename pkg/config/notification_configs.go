package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// TelegramConfig holds the bot credentials. An empty token or chat id disables the channel.
type TelegramConfig struct {
	BotToken string `json:"bot_token" yaml:"bot_token"`
	ChatID   string `json:"chat_id" yaml:"chat_id"`
	APIURL   string `json:"api_url" yaml:"api_url"`
	Timeout  int    `json:"timeout" yaml:"timeout"` // seconds
}

// DiscordConfig holds the webhook target. An empty webhook URL disables the channel.
type DiscordConfig struct {
	WebhookURL string `json:"webhook_url" yaml:"webhook_url"`
	Username   string `json:"username" yaml:"username"`
	AvatarURL  string `json:"avatar_url" yaml:"avatar_url"`
	Color      int    `json:"color" yaml:"color"`
	Timeout    int    `json:"timeout" yaml:"timeout"` // seconds
}

const (
	DefaultTelegramAPIURL = "https://api.telegram.org"
	DefaultDiscordName    = "Apple Stock Bot"
	DefaultDiscordAvatar  = "https://upload.wikimedia.org/wikipedia/commons/f/fa/Apple_logo_black.svg"
	DefaultDiscordColor   = 0x00bfff
)

func NewTelegramConfig() *TelegramConfig {
	return &TelegramConfig{
		BotToken: getEnv("TELEGRAM_TOKEN", ""),
		ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		APIURL:   DefaultTelegramAPIURL,
		Timeout:  30,
	}
}

func NewDiscordConfig() *DiscordConfig {
	return &DiscordConfig{
		WebhookURL: getEnv("DISCORD_WEBHOOK_URL", ""),
		Username:   DefaultDiscordName,
		AvatarURL:  DefaultDiscordAvatar,
		Color:      DefaultDiscordColor,
		Timeout:    30,
	}
}

// Configured reports whether both credentials are present
func (t *TelegramConfig) Configured() bool {
	return t != nil && strings.TrimSpace(t.BotToken) != "" && strings.TrimSpace(t.ChatID) != ""
}

func (t *TelegramConfig) RequestTimeout() time.Duration {
	if t.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(t.Timeout) * time.Second
}

// Configured reports whether a webhook URL is present
func (d *DiscordConfig) Configured() bool {
	return d != nil && strings.TrimSpace(d.WebhookURL) != ""
}

func (d *DiscordConfig) RequestTimeout() time.Duration {
	if d.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(d.Timeout) * time.Second
}

// Validate only rejects a webhook URL that is set but malformed
func (d *DiscordConfig) Validate() error {
	if !d.Configured() {
		return nil
	}
	u, err := url.ParseRequestURI(d.WebhookURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: discord.webhook_url is not an absolute URL", ErrInvalidValue)
	}
	if d.Color < 0 || d.Color > 0xffffff {
		return fmt.Errorf("%w: discord.color %#x out of range", ErrInvalidValue, d.Color)
	}
	return nil
}
