package roster

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ImportResult summarizes a seed import.
type ImportResult struct {
	Added   int
	Skipped int
	Invalid int
}

// LoadSeed reads a YAML or JSON list of {gokid, name} entries.
func LoadSeed(path string) ([]domain.RosterEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster seed: %w", err)
	}
	return ParseSeed(data)
}

func ParseSeed(data []byte) ([]domain.RosterEntry, error) {
	var entries []domain.RosterEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse roster seed: %w", err)
	}
	return entries, nil
}

// Import inserts entries whose ID is not registered yet. Entries with an ID
// below the canonical threshold or an empty name are counted as invalid.
// With dryRun set nothing is written.
func Import(ctx context.Context, store Store, entries []domain.RosterEntry, dryRun bool, logger *zap.Logger) (ImportResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var result ImportResult
	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.GokID < domain.CanonicalIDThreshold || entry.Name == "" {
			logger.Warn("Skipping invalid roster entry",
				zap.Int64("gokid", entry.GokID),
				zap.String("name", entry.Name),
			)
			result.Invalid++
			continue
		}

		if _, dup := seen[entry.GokID]; dup {
			result.Skipped++
			continue
		}
		seen[entry.GokID] = struct{}{}

		existing, err := store.FindByID(ctx, entry.GokID)
		if err != nil {
			return result, err
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		if !dryRun {
			if err := store.Insert(ctx, entry); err != nil {
				return result, err
			}
		}
		result.Added++
	}
	return result, nil
}
