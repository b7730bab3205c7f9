package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"metastar/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const codeEmailTemplate = `
<div style="font-family: sans-serif; text-align: center; padding: 20px;">
    <h2>MetaStar Studio</h2>
    <p>Your verification code is:</p>
    <h1 style="font-size: 32px; letter-spacing: 5px; color: #000;">%s</h1>
    <p style="color: #888; font-size: 12px;">This code expires in 5 minutes.</p>
</div>`

// ResendMailer implements Mailer against the Resend transactional email API.
type ResendMailer struct {
	BaseURL string
	APIKey  string
	From    string
	HTTP    *http.Client
}

// NewResendMailer creates a ResendMailer with a bounded request timeout.
func NewResendMailer(baseURL, apiKey, from string) *ResendMailer {
	return &ResendMailer{
		BaseURL: baseURL,
		APIKey:  apiKey,
		From:    from,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// SendCode emails the access code. Failures are returned to the caller; any
// already-stored challenge stays live, the user resends or waits out the TTL.
func (m *ResendMailer) SendCode(ctx context.Context, email, code string) error {
	payload := sendRequest{
		From:    m.From,
		To:      email,
		Subject: "Your Access Code: " + code,
		HTML:    fmt.Sprintf(codeEmailTemplate, code),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.APIKey)
	req.Header.Set("Content-Type", "application/json")
	// Resend deduplicates on this key if the request is retried by a client.
	req.Header.Set("Idempotency-Key", uuid.New().String())

	resp, err := m.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		utils.GetLogger().Error("Resend API error", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("email delivery returned status %d", resp.StatusCode)
	}
	return nil
}
