// Package discord delivers rendered messages to a Discord webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"study_automation_bot/internal/domain/notify"
)

const (
	// maxContentRunes keeps content safely under the platform's
	// 2000-character message limit, leaving room for the marker.
	maxContentRunes = 1800
	truncationMark  = "\n…(truncated)"

	requestTimeout = 20 * time.Second
	errorBodyLimit = 300
)

// WebhookNotifier posts messages to one webhook URL. On a 429 it waits for
// the advertised Retry-After and retries exactly once; any other non-2xx is
// logged and returned as an error.
type WebhookNotifier struct {
	url   string
	http  *http.Client
	log   *logrus.Logger
	sleep func(time.Duration)
}

func NewWebhookNotifier(url string, log *logrus.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		url:   url,
		http:  &http.Client{Timeout: requestTimeout},
		log:   log,
		sleep: time.Sleep,
	}
}

type webhookPayload struct {
	Content         string                 `json:"content"`
	Embeds          []notify.Embed         `json:"embeds"`
	AllowedMentions notify.AllowedMentions `json:"allowed_mentions"`
}

func (n *WebhookNotifier) Send(ctx context.Context, msg notify.Message) error {
	payload := webhookPayload{
		Content:         Truncate(msg.Content),
		Embeds:          msg.Embeds,
		AllowedMentions: msg.Mentions,
	}
	if payload.Embeds == nil {
		payload.Embeds = []notify.Embed{}
	}
	if payload.AllowedMentions.Parse == nil {
		payload.AllowedMentions.Parse = []string{}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	status, retryAfter, err := n.post(ctx, body)
	if err != nil {
		return err
	}
	if status == http.StatusTooManyRequests {
		n.log.Warnf("discord webhook rate limited, retrying after %s", retryAfter)
		n.sleep(retryAfter)
		status, _, err = n.post(ctx, body)
		if err != nil {
			return err
		}
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("discord webhook failed: status=%d", status)
	}
	return nil
}

// post performs one webhook call and reports the status plus, for 429
// responses, the server's requested wait.
func (n *WebhookNotifier) post(ctx context.Context, body []byte) (int, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return 0, 0, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt := string(data)
		if len(excerpt) > errorBodyLimit {
			excerpt = excerpt[:errorBodyLimit]
		}
		n.log.WithField("status", resp.StatusCode).Errorf("discord webhook error: %s", excerpt)
	}

	retryAfter := time.Second
	if resp.StatusCode == http.StatusTooManyRequests {
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
			retryAfter = time.Duration(secs) * time.Second
		}
	}
	return resp.StatusCode, retryAfter, nil
}

// Truncate caps content at the platform-safe length, appending a marker when
// anything was cut. Counting is rune-based so multibyte text never splits.
func Truncate(content string) string {
	runes := []rune(content)
	if len(runes) <= maxContentRunes {
		return content
	}
	return string(runes[:maxContentRunes]) + truncationMark
}
