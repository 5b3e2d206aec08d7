// Package roster owns the local nickname-to-ID table and resolves user tokens
// into canonical game IDs.
package roster

import (
	"context"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	boterrors "github.com/kapu/gok-stats-bot-go/pkg/errors"
)

// Field selects the column a fuzzy search runs against.
type Field string

const (
	FieldID   Field = "gokid"
	FieldName Field = "name"
)

// Store is the CRUD surface over the users table. Find methods return nil, nil
// when no row matches.
type Store interface {
	Insert(ctx context.Context, entry domain.RosterEntry) error
	All(ctx context.Context) ([]domain.RosterEntry, error)
	FindByID(ctx context.Context, gokID int64) (*domain.RosterEntry, error)
	FindByName(ctx context.Context, name string) (*domain.RosterEntry, error)
	Search(ctx context.Context, field Field, pattern string) ([]domain.RosterEntry, error)
	UpdateName(ctx context.Context, gokID int64, name string) error
	Delete(ctx context.Context, gokID int64) error
	Count(ctx context.Context) (int64, error)
	Close() error
}

// storageError tags a driver error with the storage kind.
func storageError(operation string, err error) error {
	return boterrors.NewServiceError("failed to "+operation, "roster", operation, err)
}
