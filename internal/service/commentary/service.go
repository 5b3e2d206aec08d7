// Package commentary asks an LLM for a one-line roast of recent matches.
package commentary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/util"
	"go.uber.org/zap"
)

var (
	// ErrNoProvider is returned when no LLM provider is configured.
	ErrNoProvider = errors.New("no commentary provider configured")
	// ErrUnavailable is returned while every provider's breaker is open.
	ErrUnavailable = errors.New("all commentary providers are cooling down")
)

// Service selects a provider and builds the commentary prompt.
type Service struct {
	providers map[string]Provider
	breakers  map[string]*util.CircuitBreaker
	order     []string
	logger    *zap.Logger
}

// NewService registers providers in preference order. The first one is used
// when a request names no provider or an unknown one.
func NewService(logger *zap.Logger, providers ...Provider) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		providers: make(map[string]Provider, len(providers)),
		breakers:  make(map[string]*util.CircuitBreaker, len(providers)),
		logger:    logger,
	}
	for _, p := range providers {
		if p == nil {
			continue
		}
		name := strings.ToLower(p.Name())
		if _, dup := s.providers[name]; dup {
			continue
		}
		s.providers[name] = p
		s.breakers[name] = util.NewCircuitBreaker(name,
			constants.CommentaryConfig.BreakerThreshold,
			constants.CommentaryConfig.BreakerReset,
			logger,
		)
		s.order = append(s.order, name)
	}
	return s
}

// Available reports whether any provider is configured.
func (s *Service) Available() bool {
	return s != nil && len(s.order) > 0
}

// pick returns the named provider, or the first configured one, skipping
// providers whose breaker is open.
func (s *Service) pick(name string) (string, error) {
	if !s.Available() {
		return "", ErrNoProvider
	}
	name = util.Normalize(name)
	if _, ok := s.providers[name]; !ok {
		if name != "" {
			s.logger.Warn("Unknown commentary provider, using default",
				zap.String("requested", name),
				zap.String("default", s.order[0]),
			)
		}
		name = s.order[0]
	}
	if s.breakers[name].CanExecute() {
		return name, nil
	}
	for _, candidate := range s.order {
		if candidate != name && s.breakers[candidate].CanExecute() {
			s.logger.Info("Commentary provider cooling down, falling back",
				zap.String("provider", name),
				zap.String("fallback", candidate),
			)
			return candidate, nil
		}
	}
	return "", ErrUnavailable
}

// Comment generates commentary for c. It returns an empty string without
// calling a provider when c is disabled or carries no records.
func (s *Service) Comment(ctx context.Context, c *domain.Commentary) (string, error) {
	if c == nil || !c.Enabled || len(c.Records) == 0 {
		return "", nil
	}

	name, err := s.pick(c.Provider)
	if err != nil {
		return "", err
	}
	provider, breaker := s.providers[name], s.breakers[name]

	prompt, err := BuildPrompt(c.Records)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.CommentaryConfig.Timeout)
	defer cancel()

	text, err := provider.Generate(ctx, prompt)
	if err != nil {
		breaker.RecordFailure()
		return "", fmt.Errorf("%s: %w", provider.Name(), err)
	}
	breaker.RecordSuccess()
	return text, nil
}

// BuildPrompt renders the roast prompt with a legend for every record field.
func BuildPrompt(records []map[string]any) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("failed to encode match records: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("请根据下面提供的王者荣耀最近10把的战绩数据，用简短的一句话进行锐评吐槽。")
	sb.WriteString("这是战绩列表\n")
	sb.Write(data)
	sb.WriteString("\n")
	sb.WriteString("gametime 字段 对局开始时间\n")
	sb.WriteString("killcnt 字段 击杀数\n")
	sb.WriteString("deadcnt 字段 死亡数\n")
	sb.WriteString("assistcnt 字段 助攻数\n")
	sb.WriteString("gameresult 字段 1代表胜利 2代表失败 3代表平局\n")
	sb.WriteString("mvpcnt 字段 1代表是胜利方MVP 0表示不是\n")
	sb.WriteString("losemvp 字段 1代表是失败方MVP 0表示不是\n")
	sb.WriteString("gradeGame 字段 系统给的评分，满分16分\n")
	return sb.String(), nil
}
