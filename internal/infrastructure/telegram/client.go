package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	baseURL         = "https://api.telegram.org"
	defaultTimeout  = 30 * time.Second
	sendMessagePath = "/sendMessage"
)

// Client handles communication with the Telegram Bot API
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// ClientInterface is the surface the reminder scheduler depends on
type ClientInterface interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// NewClient creates a new Telegram Bot API client
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		token:   token,
	}
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// apiResponse is the envelope every Bot API method returns
type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// SendMessage delivers a text message to a chat. The chat ID is the
// user's Telegram ID for private chats.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	url := fmt.Sprintf("%s/bot%s%s", c.baseURL, c.token, sendMessagePath)

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if !apiResp.OK {
		return fmt.Errorf("API error (status %d, code %d): %s", resp.StatusCode, apiResp.ErrorCode, apiResp.Description)
	}
	return nil
}
