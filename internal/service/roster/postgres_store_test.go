package roster

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/kapu/gok-stats-bot-go/internal/domain"
	"github.com/kapu/gok-stats-bot-go/internal/service/database"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// PostgresStoreSuite needs a disposable database; it truncates users before
// every case. Set ROSTER_TEST_POSTGRES_HOST to enable it.
type PostgresStoreSuite struct {
	StoreSuite
	pg *PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	host := os.Getenv("ROSTER_TEST_POSTGRES_HOST")
	if host == "" {
		t.Skip("ROSTER_TEST_POSTGRES_HOST not set")
	}
	port, err := strconv.Atoi(envOr("ROSTER_TEST_POSTGRES_PORT", "5432"))
	require.NoError(t, err)
	cfg := database.PostgresConfig{
		Host:     host,
		Port:     port,
		User:     envOr("ROSTER_TEST_POSTGRES_USER", "gok"),
		Password: os.Getenv("ROSTER_TEST_POSTGRES_PASSWORD"),
		Database: envOr("ROSTER_TEST_POSTGRES_DB", "gok_test"),
	}

	s := &PostgresStoreSuite{}
	s.open = func(ctx context.Context, t *testing.T) Store {
		pg, err := database.NewPostgresService(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		store, err := NewPostgresStore(ctx, pg, zap.NewNop())
		require.NoError(t, err)
		_, err = store.db.ExecContext(ctx, `TRUNCATE users`)
		require.NoError(t, err)
		s.pg = store
		return store
	}
	suite.Run(t, s)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s *PostgresStoreSuite) TestNullNameScansAsEmpty() {
	_, err := s.pg.db.ExecContext(s.ctx, `INSERT INTO users (gokid, name) VALUES ($1, NULL)`, int64(135792468))
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, 135792468)
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Empty(found.Name)

	all, err := s.store.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Empty(all[0].Name)
}

func (s *PostgresStoreSuite) TestFindByNameReturnsFirstOfDuplicates() {
	s.seed(
		domain.RosterEntry{GokID: 200000001, Name: "孙尚香"},
		domain.RosterEntry{GokID: 200000002, Name: "孙尚香"},
	)

	found, err := s.store.FindByName(s.ctx, "孙尚香")
	s.Require().NoError(err)
	s.Require().NotNil(found)
	s.Contains([]int64{200000001, 200000002}, found.GokID)
}
