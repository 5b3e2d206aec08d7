// Package render turns an HTML template plus data into an image through an
// external HTML-to-image service.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// maxImageBytes caps the rendered image read into memory.
const maxImageBytes = 16 << 20

type request struct {
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

type Client struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(url string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: constants.HTTPConfig.RenderTimeout},
		logger:     logger,
	}
}

// Render posts the template and its data and returns the image bytes.
func (c *Client) Render(ctx context.Context, tmpl string, data map[string]any) ([]byte, error) {
	if c.url == "" {
		return nil, errors.New(errors.KindConfiguration, "render url not configured", nil)
	}

	payload, err := json.Marshal(request{Template: tmpl, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to encode render request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewAPIError("failed to create render request", 500, map[string]any{
			"url": c.url,
		}).WithCause(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAPIError("render request failed", 500, map[string]any{
			"url": c.url,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.NewAPIError(fmt.Sprintf("render service error: %s", resp.Status), resp.StatusCode, map[string]any{
			"url":  c.url,
			"body": string(body),
		})
	}

	image, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, errors.NewAPIError("failed to read rendered image", 500, nil).WithCause(err)
	}
	if len(image) == 0 {
		return nil, errors.NewAPIError("render service returned an empty image", resp.StatusCode, nil)
	}

	c.logger.Debug("Rendered template", zap.Int("bytes", len(image)))
	return image, nil
}
