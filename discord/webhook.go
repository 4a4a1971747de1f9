package discord

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lol-discord-bot/format"
	"lol-discord-bot/tracker"

	"github.com/bwmarrin/discordgo"
)

var _ tracker.Notifier = (*Webhook)(nil)

// Webhook publica mensajes en el canal de un webhook de Discord.
// No reintenta: quien llama registra el error y sigue.
type Webhook struct {
	session *discordgo.Session
	id      string
	token   string
	timeout time.Duration
}

// NewWebhook parsea una URL https://discord.com/api/webhooks/{id}/{token}.
func NewWebhook(rawURL string) (*Webhook, error) {
	id, token, err := parseWebhookURL(rawURL)
	if err != nil {
		return nil, err
	}
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creando sesión Discord: %w", err)
	}
	return &Webhook{
		session: session,
		id:      id,
		token:   token,
		timeout: 10 * time.Second,
	}, nil
}

// SetHTTPClient reemplaza el cliente HTTP de la sesión (tests).
func (w *Webhook) SetHTTPClient(hc *http.Client) {
	w.session.Client = hc
}

func (w *Webhook) Send(ctx context.Context, content string) error {
	return w.execute(ctx, &discordgo.WebhookParams{Content: content})
}

func (w *Webhook) SendPresentation(ctx context.Context, p format.Presentation) error {
	return w.execute(ctx, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{Embed(p)},
	})
}

func (w *Webhook) execute(ctx context.Context, params *discordgo.WebhookParams) error {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	if _, err := w.session.WebhookExecute(w.id, w.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("error enviando mensaje al webhook: %w", err)
	}
	return nil
}

func parseWebhookURL(rawURL string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", fmt.Errorf("URL de webhook inválida: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, part := range parts {
		if part == "webhooks" && i+2 < len(parts) && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("URL de webhook inválida: %q", rawURL)
}
