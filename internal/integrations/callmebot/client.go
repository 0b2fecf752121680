package callmebot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент CallMeBot для отправки WhatsApp сообщений владельцу студии
// API: GET /whatsapp.php?phone=...&text=...&apikey=...
type Client struct {
	baseURL    string
	phone      string
	apiKey     string
	httpClient *http.Client
}

// NewClient создает новый экземпляр клиента CallMeBot
func NewClient(baseURL, phone, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		phone:   phone,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Enabled заданы ли номер и API ключ
func (c *Client) Enabled() bool {
	return c.phone != "" && c.apiKey != ""
}

// SendMessage отправляет текстовое сообщение на номер владельца
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if !c.Enabled() {
		return ErrNotConfigured
	}

	query := url.Values{}
	query.Set("phone", c.phone)
	query.Set("text", text)
	query.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/whatsapp.php?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// CallMeBot отвечает 200 и в случае ошибки ключа, текст ошибки приходит в теле
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if strings.Contains(strings.ToLower(string(body)), "apikey is invalid") {
		return fmt.Errorf("%w: %s", ErrInvalidResponse, strings.TrimSpace(string(body)))
	}

	return nil
}
