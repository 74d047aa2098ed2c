package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.telegram.org"
	defaultTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 500 * time.Millisecond
)

// HTTPGateway talks to a Telegram-compatible bot HTTP API.
type HTTPGateway struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPGateway creates a gateway authenticated with the given bot token.
func NewHTTPGateway(token string) *HTTPGateway {
	return &HTTPGateway{
		token:   token,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// NewHTTPGatewayWithBaseURL creates a gateway pointing at a custom base URL
// (for testing).
func NewHTTPGatewayWithBaseURL(token, baseURL string) *HTTPGateway {
	g := NewHTTPGateway(token)
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
}

type replyMarkup struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type sendPayload struct {
	ChatID      int64        `json:"chat_id"`
	MessageID   int64        `json:"message_id,omitempty"`
	Text        string       `json:"text,omitempty"`
	ParseMode   string       `json:"parse_mode,omitempty"`
	ReplyMarkup *replyMarkup `json:"reply_markup,omitempty"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
	Result      struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

func markupFor(m Message) *replyMarkup {
	if len(m.Buttons) == 0 {
		return nil
	}
	rows := make([][]inlineButton, 0, len(m.Buttons))
	for _, row := range m.Buttons {
		r := make([]inlineButton, 0, len(row))
		for _, b := range row {
			r = append(r, inlineButton{Text: b.Label, CallbackData: b.Data, URL: b.URL})
		}
		rows = append(rows, r)
	}
	return &replyMarkup{InlineKeyboard: rows}
}

// Send delivers a new message and returns its platform id.
func (g *HTTPGateway) Send(ctx context.Context, m Message) (Sent, error) {
	resp, err := g.call(ctx, "sendMessage", sendPayload{
		ChatID:      m.ChatID,
		Text:        m.Text,
		ParseMode:   "Markdown",
		ReplyMarkup: markupFor(m),
	})
	if err != nil {
		return Sent{}, err
	}
	return Sent{MessageID: resp.Result.MessageID}, nil
}

// Edit replaces the text and keyboard of an existing message in place.
func (g *HTTPGateway) Edit(ctx context.Context, chatID, messageID int64, m Message) error {
	_, err := g.call(ctx, "editMessageText", sendPayload{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        m.Text,
		ParseMode:   "Markdown",
		ReplyMarkup: markupFor(m),
	})
	return err
}

// Delete removes a delivered message.
func (g *HTTPGateway) Delete(ctx context.Context, chatID, messageID int64) error {
	_, err := g.call(ctx, "deleteMessage", sendPayload{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}

// rateLimitError is returned on HTTP 429.
type rateLimitError struct {
	status int
}

func (e *rateLimitError) Error() string {
	return fmt.Sprintf("rate limited (HTTP %d)", e.status)
}

func isRateLimit(err error) bool {
	_, ok := err.(*rateLimitError)
	return ok
}

func (g *HTTPGateway) call(ctx context.Context, method string, payload sendPayload) (*apiResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling %s payload: %w", method, err)
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := g.doCall(ctx, method, body)
		if err == nil {
			return resp, nil
		}

		if !isRateLimit(err) {
			return nil, err
		}

		lastErr = err
		if attempt < maxRetries-1 {
			backoff := time.Duration(float64(initialBackoff) * math.Pow(2, float64(attempt)))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("rate limited after %d retries: %w", maxRetries, lastErr)
}

func (g *HTTPGateway) doCall(ctx context.Context, method string, body []byte) (*apiResponse, error) {
	url := fmt.Sprintf("%s/bot%s/%s", g.baseURL, g.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing %s request: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &rateLimitError{status: resp.StatusCode}
	}
	if resp.StatusCode == http.StatusGone {
		return nil, ErrStale
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s response: %w", method, err)
	}

	var api apiResponse
	if err := json.Unmarshal(respBody, &api); err != nil {
		return nil, fmt.Errorf("decoding %s response (status %d): %w", method, resp.StatusCode, err)
	}

	if !api.OK {
		if isGoneDescription(api.Description) {
			return nil, ErrStale
		}
		return nil, fmt.Errorf("%s failed (status %d): %s", method, resp.StatusCode, api.Description)
	}

	return &api, nil
}

// isGoneDescription recognizes the platform's ways of saying the target
// message or chat no longer exists.
func isGoneDescription(desc string) bool {
	d := strings.ToLower(desc)
	return strings.Contains(d, "message to edit not found") ||
		strings.Contains(d, "message to delete not found") ||
		strings.Contains(d, "chat not found") ||
		strings.Contains(d, "bot was blocked")
}
