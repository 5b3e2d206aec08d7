package roster

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"go.uber.org/zap"
)

// IsCanonicalID reports whether token looks like an externally issued game ID:
// an integer at or above domain.CanonicalIDThreshold. All-digit nicknames below
// the threshold fall through to a nickname lookup. Positive integers too large
// for int64 are still IDs.
func IsCanonicalID(token string) bool {
	n, err := strconv.ParseInt(token, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return !strings.HasPrefix(token, "-")
	}
	if err != nil {
		return false
	}
	return n >= domain.CanonicalIDThreshold
}

// Resolver maps user tokens to canonical IDs through the roster.
type Resolver struct {
	store  Store
	logger *zap.Logger
}

func NewResolver(store Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the canonical ID for token. Canonical IDs are returned as
// given without touching the store; anything else is looked up by exact
// nickname. Storage failures are logged and reported as a miss.
func (r *Resolver) Resolve(ctx context.Context, token string) (string, bool) {
	if IsCanonicalID(token) {
		return token, true
	}

	entry, err := r.store.FindByName(ctx, token)
	if err != nil {
		r.logger.Error("Roster lookup failed",
			zap.String("token", token),
			zap.Error(err),
		)
		return "", false
	}
	if entry == nil {
		return "", false
	}
	return entry.IDString(), true
}

// Search returns every roster row whose ID or nickname contains token. The
// column is chosen with the same heuristic as Resolve.
func (r *Resolver) Search(ctx context.Context, token string) ([]domain.RosterEntry, error) {
	field := FieldName
	if IsCanonicalID(token) {
		field = FieldID
	}
	return r.store.Search(ctx, field, token)
}
