package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент HTTP API Resend (https://resend.com/docs/api-reference)
type Client struct {
	baseURL    string
	apiKey     string
	from       string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента Resend
// from - отправитель по умолчанию, например "Estudio <reservas@example.com>"
func NewClient(baseURL, apiKey, from string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		from:    from,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Enabled задан ли API ключ
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Send отправляет письмо и возвращает его ID в Resend
func (c *Client) Send(ctx context.Context, email Email) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}
	if email.From == "" {
		email.From = c.from
	}

	body, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("%w: failed to marshal email: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Name, apiErr.Message)
		}
		return "", fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}

	var sent SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("Resend: email %q sent to %d recipient(s), id=%s", email.Subject, len(email.To), sent.ID)
	return sent.ID, nil
}
