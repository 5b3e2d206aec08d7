package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kapu/gok-stats-bot-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	endpoints := filepath.Join(dir, "api_config.yaml")
	require.NoError(t, os.WriteFile(endpoints, []byte("gok_zhanji:\n  url: http://127.0.0.1:1/zhanji\n"), 0o644))

	return &config.Config{
		Chat: config.ChatConfig{BaseURL: "http://127.0.0.1:1", WSURL: "ws://127.0.0.1:1/ws"},
		Bot:  config.BotConfig{Prefix: "王者", Workers: 2},
		GOK: config.GOKConfig{
			EndpointsFile: endpoints,
			TemplateDir:   dir,
			HTTPTimeout:   time.Second,
		},
		Roster: config.RosterConfig{
			Driver:     config.RosterDriverSQLite,
			SQLitePath: filepath.Join(dir, "db", "gok.db"),
		},
		Ops: config.OpsConfig{Addr: "127.0.0.1:0"},
	}
}

func TestBuildAssemblesBot(t *testing.T) {
	cfg := testConfig(t)

	container, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, container.Ops)

	b, err := container.NewBot()
	require.NoError(t, err)
	assert.FileExists(t, cfg.Roster.SQLitePath)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, b.Shutdown(ctx))
}

func TestBuildFailsOnMissingEndpoints(t *testing.T) {
	cfg := testConfig(t)
	cfg.GOK.EndpointsFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := Build(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestBuildRejectsNilInputs(t *testing.T) {
	_, err := Build(context.Background(), nil, zap.NewNop())
	assert.Error(t, err)

	_, err = Build(context.Background(), testConfig(t), nil)
	assert.Error(t, err)
}
