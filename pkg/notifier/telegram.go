package notifier

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v4"

	"pickupwatch/pkg/config"
	"pickupwatch/pkg/digest"
	"pickupwatch/pkg/logger"
)

// chatRef addresses a chat by id or @username
type chatRef string

func (c chatRef) Recipient() string { return string(c) }

// TelegramNotifier posts the digest through the Bot API sendMessage method
type TelegramNotifier struct {
	config *config.TelegramConfig
	bot    *tele.Bot
}

// NewTelegramNotifier creates a send-only bot. No request is made until Send.
func NewTelegramNotifier(cfg *config.TelegramConfig) (*TelegramNotifier, error) {
	t := &TelegramNotifier{config: cfg}
	if !cfg.Configured() {
		return t, nil
	}

	bot, err := tele.NewBot(tele.Settings{
		URL:     cfg.APIURL,
		Token:   cfg.BotToken,
		Client:  &http.Client{Timeout: cfg.RequestTimeout()},
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	t.bot = bot
	return t, nil
}

func (t *TelegramNotifier) Name() string { return "telegram" }

func (t *TelegramNotifier) Configured() bool {
	return t.bot != nil && t.config.Configured()
}

// Send delivers the markdown digest to the configured chat
func (t *TelegramNotifier) Send(ctx context.Context, d digest.Digest) error {
	return t.SendMessage(ctx, d.Text)
}

// SendMessage sends Markdown text to the configured chat
func (t *TelegramNotifier) SendMessage(ctx context.Context, text string) error {
	if !t.Configured() {
		return fmt.Errorf("telegram: %w", ErrChannelNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.FromContext(ctx).Debug("Sending Telegram message",
		zap.String("chat_id", t.config.ChatID),
		zap.String("text", text[:min(100, len(text))]))

	if _, err := t.bot.Send(chatRef(t.config.ChatID), text, tele.ModeMarkdown); err != nil {
		return fmt.Errorf("telegram API error: %w", err)
	}
	return nil
}
