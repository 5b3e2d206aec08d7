package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	RosterDriverSQLite   = "sqlite"
	RosterDriverPostgres = "postgres"
)

type Config struct {
	Chat    ChatConfig
	Bot     BotConfig
	GOK     GOKConfig
	Comment CommentConfig
	Roster  RosterConfig
	Render  RenderConfig
	Gemini  GeminiConfig
	OpenAI  OpenAIConfig
	Ops     OpsConfig
	Logging LoggingConfig
}

type ChatConfig struct {
	BaseURL string
	WSURL   string
	// Rooms limits the bot to these rooms; empty means every room.
	Rooms []string
}

type BotConfig struct {
	PrefixEnabled bool
	Prefix        string
	Workers       int
}

type GOKConfig struct {
	YTAPIToken    string
	NYAPIToken    string
	EndpointsFile string
	TemplateDir   string
	HTTPTimeout   time.Duration
}

type CommentConfig struct {
	Enabled  bool
	Provider string
}

type RosterConfig struct {
	Driver     string
	SQLitePath string
	Postgres   PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

type RenderConfig struct {
	URL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type OpsConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Chat: ChatConfig{
			BaseURL: getEnv("CHAT_BASE_URL", "http://localhost:3000"),
			WSURL:   getEnv("CHAT_WS_URL", "ws://localhost:3000/ws"),
			Rooms:   parseCommaSeparated(getEnv("CHAT_ROOMS", "")),
		},
		Bot: BotConfig{
			PrefixEnabled: getEnvBool("BOT_PREFIX_ENABLED", false),
			Prefix:        getEnv("BOT_PREFIX", "王者"),
			Workers:       getEnvInt("BOT_WORKERS", 8),
		},
		GOK: GOKConfig{
			YTAPIToken:    getEnv("GOK_YTAPI_TOKEN", ""),
			NYAPIToken:    getEnv("GOK_NYAPI_TOKEN", ""),
			EndpointsFile: getEnv("GOK_ENDPOINTS_FILE", "data/api_config.yaml"),
			TemplateDir:   getEnv("GOK_TEMPLATE_DIR", "templates"),
			HTTPTimeout:   getEnvDuration("GOK_HTTP_TIMEOUT", 15*time.Second),
		},
		Comment: CommentConfig{
			Enabled:  getEnvBool("COMMENT_ENABLED", false),
			Provider: getEnv("COMMENT_PROVIDER", "gemini"),
		},
		Roster: RosterConfig{
			Driver:     strings.ToLower(getEnv("ROSTER_DRIVER", RosterDriverSQLite)),
			SQLitePath: getEnv("ROSTER_SQLITE_PATH", "data/gok.db"),
			Postgres: PostgresConfig{
				Host:     getEnv("POSTGRES_HOST", "localhost"),
				Port:     getEnvInt("POSTGRES_PORT", 5432),
				User:     getEnv("POSTGRES_USER", "gok"),
				Password: getEnv("POSTGRES_PASSWORD", ""),
				Database: getEnv("POSTGRES_DB", "gok"),
				SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			},
		},
		Render: RenderConfig{
			URL: getEnv("RENDER_URL", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Ops: OpsConfig{
			Addr: getEnv("OPS_ADDR", ":9090"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			File:   getEnv("LOG_FILE", "logs/bot.log"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the process cannot start without. Missing
// API tokens are allowed: the affected operations report a configuration
// failure instead.
func (c *Config) Validate() error {
	if c.Chat.BaseURL == "" {
		return fmt.Errorf("CHAT_BASE_URL is required")
	}
	if c.Chat.WSURL == "" {
		return fmt.Errorf("CHAT_WS_URL is required")
	}
	if c.Bot.PrefixEnabled && c.Bot.Prefix == "" {
		return fmt.Errorf("BOT_PREFIX is required when BOT_PREFIX_ENABLED is set")
	}
	if c.Bot.Workers <= 0 {
		return fmt.Errorf("BOT_WORKERS must be positive")
	}
	if c.GOK.EndpointsFile == "" {
		return fmt.Errorf("GOK_ENDPOINTS_FILE is required")
	}
	if c.GOK.TemplateDir == "" {
		return fmt.Errorf("GOK_TEMPLATE_DIR is required")
	}
	if c.GOK.HTTPTimeout <= 0 {
		return fmt.Errorf("GOK_HTTP_TIMEOUT must be positive")
	}
	switch c.Roster.Driver {
	case RosterDriverSQLite:
		if c.Roster.SQLitePath == "" {
			return fmt.Errorf("ROSTER_SQLITE_PATH is required for the sqlite driver")
		}
	case RosterDriverPostgres:
		if c.Roster.Postgres.Host == "" || c.Roster.Postgres.Database == "" {
			return fmt.Errorf("POSTGRES_HOST and POSTGRES_DB are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown ROSTER_DRIVER %q", c.Roster.Driver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
