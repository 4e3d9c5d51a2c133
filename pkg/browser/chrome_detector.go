package browser

import (
	"os"
	"runtime"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"pickupwatch/pkg/config"
	"pickupwatch/pkg/logger"
)

// chromeCandidates lists well-known install locations per OS
func chromeCandidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"/Applications/Google Chrome Canary.app/Contents/MacOS/Google Chrome Canary",
		}
	case "linux":
		return []string{
			"/usr/bin/google-chrome",
			"/usr/bin/google-chrome-stable",
			"/usr/bin/chromium",
			"/usr/bin/chromium-browser",
			"/snap/bin/chromium",
			"/opt/google/chrome/google-chrome",
		}
	case "windows":
		return []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			os.Getenv("LOCALAPPDATA") + `\Google\Chrome\Application\chrome.exe`,
		}
	}
	return nil
}

// ResolveChromePath returns explicit when it exists, otherwise the first
// installed candidate. Empty means let chromedp search $PATH.
func ResolveChromePath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		logger.Warn("Configured Chrome path not found, falling back to detection", zap.String("path", explicit))
	}
	for _, path := range chromeCandidates(runtime.GOOS) {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// AllocatorOptions builds the exec allocator flags for cfg
func AllocatorOptions(cfg *config.BrowserConfig) []chromedp.ExecAllocatorOption {
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("password-store", "basic"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(cfg.WindowWidth, cfg.WindowHeight),
	}

	if runtime.GOOS == "linux" {
		// containers and CI runners usually lack the setuid sandbox helper
		opts = append(opts,
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-setuid-sandbox", true),
		)
	}

	if cfg.Headless {
		opts = append(opts, chromedp.Headless, chromedp.DisableGPU)
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	if path := ResolveChromePath(cfg.ChromePath); path != "" {
		logger.Debug("Using Chrome executable", zap.String("path", path))
		opts = append(opts, chromedp.ExecPath(path))
	}

	return opts
}
