// Package gateway performs single-attempt calls against the configured stats
// API endpoints and extracts a named field from the response envelope.
package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/metrics"
	"github.com/kapu/gok-stats-bot-go/internal/util"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const maxBodyBytes = 16 << 20

// Gateway dispatches calls described by the endpoint table. It never retries:
// every failure is logged and returned as a KindConfiguration or
// KindRemoteFailure error.
type Gateway struct {
	endpoints  Endpoints
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func New(endpoints Endpoints, httpClient *http.Client, logger *zap.Logger, m *metrics.Metrics) *Gateway {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{
		endpoints:  endpoints,
		httpClient: httpClient,
		logger:     logger,
		metrics:    m,
	}
}

// Call invokes the endpoint registered under key. When field is empty the raw
// body is returned as []byte; otherwise field is a gjson path into the JSON
// body and its decoded value is returned.
func (g *Gateway) Call(ctx context.Context, key, method string, params map[string]string, field string) (any, error) {
	start := time.Now()

	endpoint, ok := g.endpoints[key]
	if !ok {
		g.logger.Error("Endpoint not configured", zap.String("endpoint", key))
		g.metrics.ObserveGateway(key, "config_error", start)
		return nil, errors.New(errors.KindConfiguration, "endpoint not configured: "+key, nil)
	}
	if endpoint.URL == "" {
		g.logger.Error("Endpoint has no URL", zap.String("endpoint", key))
		g.metrics.ObserveGateway(key, "config_error", start)
		return nil, errors.New(errors.KindConfiguration, "endpoint has no url: "+key, nil)
	}

	values := url.Values{}
	for k, v := range MergeParams(endpoint.Params, params) {
		values.Set(k, v)
	}

	body, err := g.do(ctx, method, endpoint.URL, values)
	if err != nil {
		g.logger.Warn("Stats API call failed",
			zap.String("endpoint", key),
			zap.String("method", method),
			zap.Error(err),
		)
		g.metrics.ObserveGateway(key, "error", start)
		return nil, err
	}

	if field == "" {
		g.metrics.ObserveGateway(key, "ok", start)
		return body, nil
	}

	if !gjson.ValidBytes(body) {
		g.logger.Warn("Stats API returned non-JSON body",
			zap.String("endpoint", key),
			zap.Int("size", len(body)),
		)
		g.metrics.ObserveGateway(key, "invalid_body", start)
		return nil, errors.NewAPIError("response is not valid JSON", http.StatusBadGateway, map[string]any{
			"endpoint": key,
		})
	}

	result := gjson.GetBytes(body, field)
	if !result.Exists() || result.Type == gjson.Null {
		g.logger.Warn("Stats API response missing field",
			zap.String("endpoint", key),
			zap.String("field", field),
		)
		g.metrics.ObserveGateway(key, "missing_field", start)
		return nil, errors.NewAPIError("response field missing", http.StatusBadGateway, map[string]any{
			"endpoint": key,
			"field":    field,
		})
	}

	g.metrics.ObserveGateway(key, "ok", start)
	return result.Value(), nil
}

// Close releases idle transport connections.
func (g *Gateway) Close() {
	g.httpClient.CloseIdleConnections()
}

func (g *Gateway) do(ctx context.Context, method, rawURL string, values url.Values) ([]byte, error) {
	var (
		req *http.Request
		err error
	)

	switch strings.ToUpper(method) {
	case http.MethodPost:
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, rawURL, strings.NewReader(values.Encode()))
		if err == nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
	default:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, withQuery(rawURL, values), nil)
	}
	if err != nil {
		return nil, errors.NewAPIError("failed to create request", http.StatusInternalServerError, map[string]any{
			"url": rawURL,
		}).WithCause(err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewAPIError("request failed", http.StatusBadGateway, map[string]any{
			"url": rawURL,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.NewAPIError("failed to read response", http.StatusBadGateway, map[string]any{
			"url": rawURL,
		}).WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewAPIError(
			fmt.Sprintf("stats API error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  rawURL,
				"body": util.TruncateString(string(body), 200),
			},
		)
	}

	if len(body) == 0 {
		return nil, errors.NewAPIError("empty response body", http.StatusBadGateway, map[string]any{
			"url": rawURL,
		})
	}

	return body, nil
}

func withQuery(rawURL string, values url.Values) string {
	if len(values) == 0 {
		return rawURL
	}
	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + values.Encode()
}
