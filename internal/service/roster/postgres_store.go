package roster

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/service/database"
	"go.uber.org/zap"
)

const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		gokid BIGINT,
		name  TEXT
	)
`

// PostgresStore keeps the roster in PostgreSQL.
type PostgresStore struct {
	postgres *database.PostgresService
	db       *sql.DB
	logger   *zap.Logger
}

func NewPostgresStore(ctx context.Context, postgres *database.PostgresService, logger *zap.Logger) (*PostgresStore, error) {
	db := postgres.GetDB()
	if _, err := db.ExecContext(ctx, createUsersTable); err != nil {
		return nil, storageError("create users table", err)
	}
	return &PostgresStore{
		postgres: postgres,
		db:       db,
		logger:   logger,
	}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, entry domain.RosterEntry) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO users (gokid, name) VALUES ($1, $2)`, entry.GokID, entry.Name)
	if err != nil {
		return storageError("insert roster entry", err)
	}
	return nil
}

func (s *PostgresStore) All(ctx context.Context) ([]domain.RosterEntry, error) {
	return s.query(ctx, `SELECT gokid, name FROM users`)
}

func (s *PostgresStore) FindByID(ctx context.Context, gokID int64) (*domain.RosterEntry, error) {
	return s.queryOne(ctx, `SELECT gokid, name FROM users WHERE gokid = $1 LIMIT 1`, gokID)
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*domain.RosterEntry, error) {
	return s.queryOne(ctx, `SELECT gokid, name FROM users WHERE name = $1 LIMIT 1`, name)
}

func (s *PostgresStore) Search(ctx context.Context, field Field, pattern string) ([]domain.RosterEntry, error) {
	var query string
	switch field {
	case FieldID:
		query = `SELECT gokid, name FROM users WHERE CAST(gokid AS TEXT) LIKE $1`
	case FieldName:
		query = `SELECT gokid, name FROM users WHERE name LIKE $1`
	default:
		return nil, fmt.Errorf("unsupported search field %q", field)
	}
	return s.query(ctx, query, "%"+pattern+"%")
}

func (s *PostgresStore) UpdateName(ctx context.Context, gokID int64, name string) error {
	if _, err := s.db.ExecContext(ctx, `UPDATE users SET name = $1 WHERE gokid = $2`, name, gokID); err != nil {
		return storageError("update roster entry", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, gokID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE gokid = $1`, gokID); err != nil {
		return storageError("delete roster entry", err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, storageError("count roster", err)
	}
	return n, nil
}

func (s *PostgresStore) Close() error {
	return s.postgres.Close()
}

func (s *PostgresStore) queryOne(ctx context.Context, query string, arg any) (*domain.RosterEntry, error) {
	var (
		entry domain.RosterEntry
		name  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&entry.GokID, &name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("query roster", err)
	}
	entry.Name = name.String
	return &entry, nil
}

func (s *PostgresStore) query(ctx context.Context, query string, args ...any) ([]domain.RosterEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("query roster", err)
	}
	defer rows.Close()

	entries := make([]domain.RosterEntry, 0)
	for rows.Next() {
		var (
			entry domain.RosterEntry
			name  sql.NullString
		)
		if err := rows.Scan(&entry.GokID, &name); err != nil {
			return nil, storageError("scan roster row", err)
		}
		entry.Name = name.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("iterate roster rows", err)
	}
	return entries, nil
}
