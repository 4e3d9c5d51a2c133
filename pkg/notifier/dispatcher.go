package notifier

import (
	"context"

	"go.uber.org/zap"

	"pickupwatch/internal/models"
	"pickupwatch/pkg/config"
	"pickupwatch/pkg/digest"
	"pickupwatch/pkg/logger"
)

// Channel is one notification destination
type Channel interface {
	Name() string
	Configured() bool
	Send(ctx context.Context, d digest.Digest) error
}

// Dispatcher fans a report out to every channel, one after another
type Dispatcher struct {
	channels []Channel
}

func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

// NewDispatcherFromConfig builds the Telegram and Discord channels from cfg
func NewDispatcherFromConfig(cfg *config.Config) (*Dispatcher, error) {
	telegram, err := NewTelegramNotifier(cfg.Telegram)
	if err != nil {
		return nil, err
	}
	return NewDispatcher(telegram, NewDiscordNotifier(cfg.Discord)), nil
}

// NotifyAll composes the digest once and sends it to each channel.
// A failing or unconfigured channel is logged and does not affect the others.
func (d *Dispatcher) NotifyAll(ctx context.Context, report *models.AvailabilityReport) {
	log := logger.FromContext(ctx)
	dg := digest.Compose(report)

	sent := 0
	for _, ch := range d.channels {
		if !ch.Configured() {
			log.Warn("⚠️ Channel credentials missing, skipped", zap.String("channel", ch.Name()))
			continue
		}
		if err := ch.Send(ctx, dg); err != nil {
			log.Warn("⚠️ Notification failed", zap.String("channel", ch.Name()), zap.Error(err))
			continue
		}
		sent++
		log.Info("📨 Notification sent", zap.String("channel", ch.Name()))
	}

	log.Info("Notifications dispatched", logger.CountField(sent), zap.Int("channels", len(d.channels)))
}
