// Package mail relays contact form messages through a transactional email
// HTTP API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
)

// ErrDisabled is returned when no relay is configured.
var ErrDisabled = errors.New("mail: relay not configured")

// Sender delivers a contact message to the site owner.
type Sender interface {
	Send(ctx context.Context, msg domain.ContactMessage) error
}

type Config struct {
	APIURL string
	APIKey string
	From   string
	To     string
}

// Relay posts messages to an email API that accepts
// {from, to, reply_to, subject, text, html} with a bearer key.
type Relay struct {
	cfg    Config
	client *http.Client
}

func NewRelay(cfg Config, client *http.Client) *Relay {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Relay{cfg: cfg, client: client}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

func (r *Relay) Send(ctx context.Context, msg domain.ContactMessage) error {
	if r.cfg.APIURL == "" || r.cfg.To == "" {
		return ErrDisabled
	}

	body, err := json.Marshal(sendRequest{
		From:    r.cfg.From,
		To:      []string{r.cfg.To},
		ReplyTo: msg.Email,
		Subject: "[Portfolio] " + msg.Subject,
		Text:    fmt.Sprintf("From: %s <%s>\n\n%s", msg.Name, msg.Email, msg.Message),
		HTML: fmt.Sprintf("<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
			html.EscapeString(msg.Name),
			html.EscapeString(msg.Email),
			strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"),
		),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.APIKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail: relay returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
