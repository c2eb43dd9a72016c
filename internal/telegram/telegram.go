package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const sendTimeout = 10 * time.Second

// apiBaseURL is a variable so tests can point it at a local server
var apiBaseURL = "https://api.telegram.org/bot"

var (
	ErrNoToken      = errors.New("telegram: bot token missing")
	ErrNoChat       = errors.New("telegram: chat id missing")
	ErrEmptyMessage = errors.New("telegram: refusing to send an empty win notice")
	// ErrRejected wraps every answer the Bot API did not accept
	ErrRejected = errors.New("telegram: message rejected")
)

// Client posts win notices to a single chat
type Client struct {
	botToken   string
	chatID     string
	httpClient *http.Client
}

type sendMessageRequest struct {
	ChatID         string `json:"chat_id"`
	Text           string `json:"text"`
	ParseMode      string `json:"parse_mode"`
	DisablePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
}

// NewClient returns a client for the given bot and chat
func NewClient(botToken, chatID string) (*Client, error) {
	switch {
	case botToken == "":
		return nil, ErrNoToken
	case chatID == "":
		return nil, ErrNoChat
	}
	return &Client{
		botToken:   botToken,
		chatID:     chatID,
		httpClient: &http.Client{Timeout: sendTimeout},
	}, nil
}

// SendMessage delivers one HTML formatted notice
func (c *Client) SendMessage(ctx context.Context, text string) error {
	if text == "" {
		return ErrEmptyMessage
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:         c.chatID,
		Text:           text,
		ParseMode:      "HTML",
		DisablePreview: true,
	})
	if err != nil {
		return fmt.Errorf("encoding win notice: %w", err)
	}

	endpoint := apiBaseURL + c.botToken + "/sendMessage"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting win notice: %w", err)
	}
	defer resp.Body.Close()

	var answer apiResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&answer)

	switch {
	case resp.StatusCode != http.StatusOK:
		if answer.Description != "" {
			return fmt.Errorf("%w (status %d): %s", ErrRejected, resp.StatusCode, answer.Description)
		}
		return fmt.Errorf("%w (status %d)", ErrRejected, resp.StatusCode)
	case decodeErr != nil:
		return fmt.Errorf("%w: unreadable answer: %v", ErrRejected, decodeErr)
	case !answer.OK:
		return fmt.Errorf("%w (code %d): %s", ErrRejected, answer.ErrorCode, answer.Description)
	}
	return nil
}
