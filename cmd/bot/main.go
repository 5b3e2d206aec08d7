package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/app"
	"github.com/kapu/gok-stats-bot-go/internal/config"
	"github.com/kapu/gok-stats-bot-go/internal/util"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("GOK stats bot starting...",
		zap.String("log_level", cfg.Logging.Level),
		zap.Bool("prefix_enabled", cfg.Bot.PrefixEnabled),
		zap.Strings("rooms", cfg.Chat.Rooms),
	)

	buildCtx, buildCancel := context.WithTimeout(context.Background(), 30*time.Second)
	container, err := app.Build(buildCtx, cfg, logger)
	buildCancel()
	if err != nil {
		logger.Error("Failed to assemble application services", zap.Error(err))
		os.Exit(1)
	}

	gokBot, err := container.NewBot()
	if err != nil {
		logger.Error("Failed to initialize bot", zap.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// in-flight commands outlive the signal until Shutdown has drained them
	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	if err := gokBot.Start(runCtx); err != nil {
		logger.Error("Failed to start bot", zap.Error(err))
		shutdown(gokBot, logger)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return container.Ops.Run(gctx)
	})

	logger.Info("Bot started, waiting for signals...")
	<-gctx.Done()
	logger.Info("Shutting down gracefully...")
	stop()

	if err := g.Wait(); err != nil {
		logger.Error("Ops server error", zap.Error(err))
	}
	shutdown(gokBot, logger)
	logger.Info("Shutdown complete")
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

func shutdown(b shutdowner, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.Shutdown(ctx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}
}
