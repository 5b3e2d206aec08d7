package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kapu/gok-stats-bot-go/internal/adapter"
	"github.com/kapu/gok-stats-bot-go/internal/bot"
	"github.com/kapu/gok-stats-bot-go/internal/chat"
	"github.com/kapu/gok-stats-bot-go/internal/command"
	"github.com/kapu/gok-stats-bot-go/internal/config"
	"github.com/kapu/gok-stats-bot-go/internal/constants"
	"github.com/kapu/gok-stats-bot-go/internal/gateway"
	"github.com/kapu/gok-stats-bot-go/internal/metrics"
	"github.com/kapu/gok-stats-bot-go/internal/ops"
	"github.com/kapu/gok-stats-bot-go/internal/render"
	"github.com/kapu/gok-stats-bot-go/internal/service/commentary"
	"github.com/kapu/gok-stats-bot-go/internal/service/database"
	"github.com/kapu/gok-stats-bot-go/internal/service/gok"
	"github.com/kapu/gok-stats-bot-go/internal/service/roster"
	"github.com/kapu/gok-stats-bot-go/internal/template"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing runtime components like Bot.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Ops serves /healthz and /metrics.
	Ops *ops.Server

	botDeps *bot.Dependencies
}

// NewBot instantiates a bot using the pre-built dependency graph. The bot owns
// every resource acquired by Build and releases it on Shutdown.
func (c *Container) NewBot() (*bot.Bot, error) {
	if c == nil || c.botDeps == nil {
		return nil, fmt.Errorf("bot dependencies not initialized")
	}
	return bot.NewBot(c.botDeps)
}

// Build assembles all infrastructure services. Resources already acquired are
// released in reverse order when a later step fails.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Roster storage
	store, err := OpenRosterStore(ctx, cfg.Roster, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, func() {
		if cerr := store.Close(); cerr != nil {
			logger.Warn("Failed to close roster store", zap.Error(cerr))
		}
	})

	// Stats API
	endpoints, err := gateway.LoadEndpoints(cfg.GOK.EndpointsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load endpoints: %w", err)
	}
	gw := gateway.New(endpoints, &http.Client{Timeout: cfg.GOK.HTTPTimeout}, logger, m)
	closers = append(closers, gw.Close)

	templates := template.NewLoader(cfg.GOK.TemplateDir)
	stats := gok.NewService(gok.Dependencies{
		Config: gok.Config{
			YTAPIToken:      cfg.GOK.YTAPIToken,
			NYAPIToken:      cfg.GOK.NYAPIToken,
			CommentEnabled:  cfg.Comment.Enabled,
			CommentProvider: cfg.Comment.Provider,
		},
		Resolver:  roster.NewResolver(store, logger),
		Store:     store,
		Fetcher:   gw,
		Templates: templates,
		Logger:    logger,
		Metrics:   m,
	})

	// Commentary
	providers, err := buildProviders(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	commentator := commentary.NewService(logger, providers...)
	if cfg.Comment.Enabled && !commentator.Available() {
		logger.Warn("Commentary enabled but no LLM provider configured")
	}

	// Messaging
	chatClient := chat.NewClient(cfg.Chat.BaseURL, logger)
	listener := chat.NewListener(
		cfg.Chat.WSURL,
		constants.WebSocketConfig.MaxReconnectAttempts,
		constants.WebSocketConfig.ReconnectDelay,
		logger,
	)
	presenter := adapter.NewPresenter(chatClient, render.NewClient(cfg.Render.URL, logger), commentator, logger)

	commands := command.NewRegistry()
	for _, cmd := range command.All(&command.Dependencies{
		Operations: stats,
		Presenter:  presenter,
	}) {
		commands.Register(cmd)
	}

	router := ops.NewRouter(registry, map[string]ops.Check{
		"roster": func(ctx context.Context) error {
			_, err := store.Count(ctx)
			return err
		},
		"chat": func(context.Context) error {
			if state := listener.State(); state != chat.StateConnected {
				return fmt.Errorf("listener %s", state)
			}
			return nil
		},
	})

	logger.Info("Application services assembled",
		zap.String("roster_driver", cfg.Roster.Driver),
		zap.Int("endpoints", len(endpoints)),
		zap.String("templates", templates.Dir()),
		zap.Int("commands", commands.Count()),
		zap.Bool("commentary", commentator.Available()),
	)

	return &Container{
		Config: cfg,
		Logger: logger,
		Ops:    ops.NewServer(cfg.Ops.Addr, router, logger),
		botDeps: &bot.Dependencies{
			Listener:     listener,
			Sender:       chatClient,
			Adapter:      adapter.NewMessageAdapter(cfg.Bot.PrefixEnabled, cfg.Bot.Prefix),
			Registry:     commands,
			Metrics:      m,
			Logger:       logger,
			Workers:      cfg.Bot.Workers,
			AllowedRooms: cfg.Chat.Rooms,
			Closers:      closers,
		},
	}, nil
}

// OpenRosterStore opens the configured roster backend and creates its table.
func OpenRosterStore(ctx context.Context, cfg config.RosterConfig, logger *zap.Logger) (roster.Store, error) {
	switch cfg.Driver {
	case config.RosterDriverPostgres:
		pg, err := database.NewPostgresService(ctx, database.PostgresConfig{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgres service: %w", err)
		}
		store, err := roster.NewPostgresStore(ctx, pg, logger)
		if err != nil {
			_ = pg.Close()
			return nil, err
		}
		return store, nil
	default:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		store, err := roster.NewGormStore(db, logger)
		if err != nil {
			if sqlDB, derr := db.DB(); derr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
		return store, nil
	}
}

// buildProviders returns the configured LLM providers with the preferred one
// first.
func buildProviders(ctx context.Context, cfg *config.Config, logger *zap.Logger) ([]commentary.Provider, error) {
	var providers []commentary.Provider

	gemini, err := commentary.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini provider: %w", err)
	}
	if gemini != nil {
		providers = append(providers, gemini)
	}
	if openai := commentary.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, logger); openai != nil {
		if cfg.Comment.Provider == commentary.ProviderOpenAI {
			providers = append([]commentary.Provider{openai}, providers...)
		} else {
			providers = append(providers, openai)
		}
	}
	return providers, nil
}
