// Package gok implements the Honor of Kings business operations. Every
// operation is a linear pipeline that returns a *domain.Outcome and never an
// error: failures are classified by kind and carried in the envelope.
package gok

import (
	"context"
	"net/http"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/metrics"
	"github.com/kapu/gok-stats-bot-go/internal/service/roster"
	"github.com/kapu/gok-stats-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// Fetcher performs a stats API call. See gateway.Gateway.
type Fetcher interface {
	Call(ctx context.Context, key, method string, params map[string]string, field string) (any, error)
}

// TemplateSource loads presentation templates by name.
type TemplateSource interface {
	Load(ctx context.Context, name string) (string, error)
}

// IdentityResolver maps user tokens to canonical IDs.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (string, bool)
	Search(ctx context.Context, token string) ([]domain.RosterEntry, error)
}

// Config holds the API tokens and commentary switches.
type Config struct {
	YTAPIToken      string
	NYAPIToken      string
	CommentEnabled  bool
	CommentProvider string
}

type Service struct {
	cfg       Config
	resolver  IdentityResolver
	store     roster.Store
	fetcher   Fetcher
	templates TemplateSource
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

type Dependencies struct {
	Config    Config
	Resolver  IdentityResolver
	Store     roster.Store
	Fetcher   Fetcher
	Templates TemplateSource
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
}

func NewService(deps Dependencies) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Config.YTAPIToken == "" {
		logger.Info("ytapi token not configured; match history and profile are disabled")
	}
	if deps.Config.NYAPIToken == "" {
		logger.Info("nyapi token not configured; hero power is disabled")
	}
	return &Service{
		cfg:       deps.Config,
		resolver:  deps.Resolver,
		store:     deps.Store,
		fetcher:   deps.Fetcher,
		templates: deps.Templates,
		logger:    logger,
		metrics:   deps.Metrics,
	}
}

// attachTemplate loads name into the outcome. It returns false after marking
// the outcome failed.
func (s *Service) attachTemplate(ctx context.Context, out *domain.Outcome, name string) bool {
	text, err := s.templates.Load(ctx, name)
	if err != nil {
		s.logger.Error("Failed to load template",
			zap.String("template", name),
			zap.Error(err),
		)
		out.Fail(errors.KindResourceMissing)
		return false
	}
	out.Template = text
	return true
}

// fetch calls the gateway and marks the outcome failed when nothing usable
// came back.
func (s *Service) fetch(ctx context.Context, out *domain.Outcome, key string, params map[string]string, field string) (any, bool) {
	data, err := s.fetcher.Call(ctx, key, http.MethodGet, params, field)
	if err != nil {
		kind := errors.KindRemoteFailure
		if errors.KindOf(err) == errors.KindConfiguration {
			kind = errors.KindConfiguration
		}
		out.Fail(kind)
		return nil, false
	}
	if isEmpty(data) {
		s.logger.Warn("Stats API returned empty data", zap.String("endpoint", key))
		out.Fail(errors.KindRemoteFailure)
		return nil, false
	}
	return data, true
}

func isEmpty(data any) bool {
	switch v := data.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case []byte:
		return len(v) == 0
	case string:
		return v == ""
	default:
		return false
	}
}

func (s *Service) observe(operation string, out *domain.Outcome, start time.Time) {
	label := "ok"
	if !out.OK() {
		label = out.Kind.String()
	}
	s.metrics.ObserveOperation(operation, label, start)
}

// shapeSafely runs a shaping step and converts panics from unexpected
// response shapes into a shaping failure.
func shapeSafely(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.KindShapingFailure, "panic while shaping response", nil).
				WithCause(panicError{value: r})
		}
	}()
	return fn()
}

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return "recovered: " + stringOf(p.value)
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case error:
		return t.Error()
	default:
		return "non-error panic value"
	}
}
