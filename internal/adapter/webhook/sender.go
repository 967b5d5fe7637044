// Package webhook delivers notification outbox entries to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/osfio/collections-moderation/internal/domain"
)

// SignatureHeader carries the hex HMAC-SHA256 of the body when a secret is set.
const SignatureHeader = "X-Moderation-Signature"

// Payload is the JSON body POSTed for each entry.
type Payload struct {
	ID           uuid.UUID   `json:"id"`
	SubmissionID uuid.UUID   `json:"submission_id"`
	CollectionID uuid.UUID   `json:"collection_id"`
	Trigger      string      `json:"trigger"`
	State        string      `json:"state"`
	ActorID      uuid.UUID   `json:"actor_id"`
	Recipients   []uuid.UUID `json:"recipients"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Sender POSTs entries to a fixed URL.
type Sender struct {
	url    string
	secret []byte
	client *http.Client
}

// NewSender creates a Sender. A nil client gets one with the given timeout.
func NewSender(url, secret string, timeout time.Duration, client *http.Client) *Sender {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Sender{url: url, secret: []byte(secret), client: client}
}

// Send delivers one entry. Any non-2xx response is an error.
func (s *Sender) Send(ctx context.Context, e *domain.OutboxEntry) error {
	body, err := json.Marshal(Payload{
		ID:           e.ID,
		SubmissionID: e.SubmissionID,
		CollectionID: e.CollectionID,
		Trigger:      e.Trigger.String(),
		State:        e.State.String(),
		ActorID:      e.ActorID,
		Recipients:   e.Recipients,
		CreatedAt:    e.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", e.ID.String())
	if len(s.secret) > 0 {
		req.Header.Set(SignatureHeader, Sign(s.secret, body))
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Sign returns the hex HMAC-SHA256 of body under secret.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
