package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"pickupwatch/pkg/config"
	"pickupwatch/pkg/digest"
)

// WebhookMessage is the Discord execute-webhook body
type WebhookMessage struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url"`
	Embeds    []Embed `json:"embeds"`
}

type Embed struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Color       int         `json:"color"`
	Footer      EmbedFooter `json:"footer"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

// DiscordNotifier posts the digest as a single embed to a webhook
type DiscordNotifier struct {
	config *config.DiscordConfig
	client *resty.Client
	now    func() time.Time
}

func NewDiscordNotifier(cfg *config.DiscordConfig) *DiscordNotifier {
	client := resty.New()
	client.SetTimeout(cfg.RequestTimeout())
	client.SetHeader("Content-Type", "application/json")

	return &DiscordNotifier{
		config: cfg,
		client: client,
		now:    time.Now,
	}
}

func (d *DiscordNotifier) Name() string { return "discord" }

func (d *DiscordNotifier) Configured() bool { return d.config.Configured() }

// Send posts the digest with markdown emphasis stripped
func (d *DiscordNotifier) Send(ctx context.Context, dg digest.Digest) error {
	return d.SendEmbed(ctx, dg.Title, digest.StripMarkdown(dg.Text))
}

// SendEmbed posts one embed. 200 and 204 are success.
func (d *DiscordNotifier) SendEmbed(ctx context.Context, title, description string) error {
	if !d.Configured() {
		return fmt.Errorf("discord: %w", ErrChannelNotConfigured)
	}
	if err := d.config.Validate(); err != nil {
		return fmt.Errorf("discord: %w", err)
	}

	msg := d.buildMessage(title, description)
	resp, err := d.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post(d.config.WebhookURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSendRequest, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusNoContent:
		return nil
	default:
		return &HTTPError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.String(),
		}
	}
}

func (d *DiscordNotifier) buildMessage(title, description string) *WebhookMessage {
	return &WebhookMessage{
		Username:  d.config.Username,
		AvatarURL: d.config.AvatarURL,
		Embeds: []Embed{{
			Title:       title,
			Description: description,
			Color:       d.config.Color,
			Footer:      EmbedFooter{Text: "Updated " + d.now().Format("2006-01-02 15:04:05")},
		}},
	}
}
