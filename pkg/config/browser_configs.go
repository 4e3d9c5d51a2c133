package config

import (
	"fmt"
	"time"
)

// BrowserConfig controls the browser session and the wait deadlines used by the page driver
type BrowserConfig struct {
	Headless     bool   `json:"headless" yaml:"headless"`
	ChromePath   string `json:"chrome_path" yaml:"chrome_path"`
	UserAgent    string `json:"user_agent" yaml:"user_agent"`
	WindowWidth  int    `json:"window_width" yaml:"window_width"`
	WindowHeight int    `json:"window_height" yaml:"window_height"`

	NavigationTimeout    int `json:"navigation_timeout" yaml:"navigation_timeout"`         // seconds
	WaitTimeout          int `json:"wait_timeout" yaml:"wait_timeout"`                     // seconds
	IdleTimeout          int `json:"idle_timeout" yaml:"idle_timeout"`                     // seconds
	SimilarModelsTimeout int `json:"similar_models_timeout" yaml:"similar_models_timeout"` // seconds
	MaxTriggerAttempts   int `json:"max_trigger_attempts" yaml:"max_trigger_attempts"`
	ScrollIntervalMs     int `json:"scroll_interval_ms" yaml:"scroll_interval_ms"`
}

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/141.0.0.0 Safari/537.36"

// NewBrowserConfig returns a visible 1366x900 session; the store page does not render fully headless
func NewBrowserConfig() *BrowserConfig {
	return &BrowserConfig{
		Headless:             getEnvBool("BROWSER_HEADLESS", false),
		ChromePath:           getEnv("CHROME_PATH", ""),
		UserAgent:            getEnv("BROWSER_USER_AGENT", defaultUserAgent),
		WindowWidth:          1366,
		WindowHeight:         900,
		NavigationTimeout:    60,
		WaitTimeout:          20,
		IdleTimeout:          15,
		SimilarModelsTimeout: 7,
		MaxTriggerAttempts:   12,
		ScrollIntervalMs:     250,
	}
}

func (b *BrowserConfig) Validate() error {
	if b.WindowWidth <= 0 || b.WindowHeight <= 0 {
		return fmt.Errorf("%w: browser window size %dx%d", ErrInvalidValue, b.WindowWidth, b.WindowHeight)
	}
	if b.NavigationTimeout <= 0 || b.WaitTimeout <= 0 || b.IdleTimeout <= 0 || b.SimilarModelsTimeout <= 0 {
		return fmt.Errorf("%w: browser timeouts must be positive", ErrInvalidValue)
	}
	if b.MaxTriggerAttempts < 1 {
		return fmt.Errorf("%w: browser.max_trigger_attempts must be at least 1", ErrInvalidValue)
	}
	if b.ScrollIntervalMs < 0 {
		return fmt.Errorf("%w: browser.scroll_interval_ms", ErrInvalidValue)
	}
	return nil
}

func (b *BrowserConfig) NavigationDeadline() time.Duration {
	return time.Duration(b.NavigationTimeout) * time.Second
}

func (b *BrowserConfig) WaitDeadline() time.Duration {
	return time.Duration(b.WaitTimeout) * time.Second
}

func (b *BrowserConfig) IdleDeadline() time.Duration {
	return time.Duration(b.IdleTimeout) * time.Second
}

func (b *BrowserConfig) SimilarModelsDeadline() time.Duration {
	return time.Duration(b.SimilarModelsTimeout) * time.Second
}

func (b *BrowserConfig) ScrollInterval() time.Duration {
	return time.Duration(b.ScrollIntervalMs) * time.Millisecond
}
