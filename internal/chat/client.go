// Package chat talks to the chat bridge: replies go out over HTTP and incoming
// messages arrive on a WebSocket.
package chat

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Client sends replies through the bridge.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.HTTPConfig.ChatTimeout,
		},
		logger: logger,
	}
}

func (c *Client) SendText(ctx context.Context, room, text string) error {
	if err := c.reply(ctx, ReplyRequest{Type: ReplyText, Room: room, Data: text}); err != nil {
		c.logger.Error("Failed to send message",
			zap.Error(err),
			zap.String("room", room),
		)
		return err
	}
	return nil
}

// SendImage sends raw image bytes; the bridge expects them base64 encoded.
func (c *Client) SendImage(ctx context.Context, room string, image []byte) error {
	req := ReplyRequest{
		Type: ReplyImage,
		Room: room,
		Data: base64.StdEncoding.EncodeToString(image),
	}
	if err := c.reply(ctx, req); err != nil {
		c.logger.Error("Failed to send image",
			zap.Error(err),
			zap.String("room", room),
			zap.Int("bytes", len(image)),
		)
		return err
	}
	return nil
}

func (c *Client) reply(ctx context.Context, body ReplyRequest) error {
	url := c.baseURL + "/reply"

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.NewAPIError("failed to marshal reply", 400, map[string]any{
			"url": url,
		}).WithCause(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewAPIError("reply request failed", 500, map[string]any{
			"url": url,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.NewAPIError(
			fmt.Sprintf("chat bridge error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  url,
				"body": string(bodyBytes),
			},
		)
	}
	return nil
}
