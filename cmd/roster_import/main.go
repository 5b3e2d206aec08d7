// Command roster_import seeds the roster table from a YAML or JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/app"
	"github.com/kapu/gok-stats-bot-go/internal/config"
	"github.com/kapu/gok-stats-bot-go/internal/service/roster"
	"github.com/kapu/gok-stats-bot-go/internal/util"
	"go.uber.org/zap"
)

var (
	seedFile = flag.String("file", "data/roster_seed.yaml", "Roster seed file (YAML or JSON list of {gokid, name})")
	dryRun   = flag.Bool("dry-run", false, "Run without writing to the roster")
	verbose  = flag.Bool("verbose", false, "Verbose output")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	level := "info"
	if *verbose {
		level = "debug"
	}
	logger, err := util.NewLogger(level, cfg.Logging.Format, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("Roster import failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	entries, err := roster.LoadSeed(*seedFile)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := app.OpenRosterStore(ctx, cfg.Roster, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := roster.Import(ctx, store, entries, *dryRun, logger)
	if err != nil {
		return err
	}

	logger.Info("Roster import finished",
		zap.String("file", *seedFile),
		zap.Bool("dry_run", *dryRun),
		zap.Int("added", result.Added),
		zap.Int("skipped", result.Skipped),
		zap.Int("invalid", result.Invalid),
	)
	return nil
}
