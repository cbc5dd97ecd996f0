package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs, resolved from the
// environment with sensible defaults for local development.
type Config struct {
	Host    string
	Port    int
	DataDir string
	DBPath  string

	MarketAPIKey  string
	MarketBaseURL string
	HTTPTimeout   time.Duration

	AIProvider string
	AIModel    string
	AIBaseURL  string
	AIAPIKey   string

	CORSOrigins []string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Host:          envOr("STOCKMENTOR_HOST", "0.0.0.0"),
		Port:          envInt("STOCKMENTOR_PORT", 8000),
		DataDir:       envOr("STOCKMENTOR_DATA_DIR", "data"),
		MarketAPIKey:  os.Getenv("TIINGO_API_KEY"),
		MarketBaseURL: os.Getenv("TIINGO_BASE_URL"),
	}
	cfg.HTTPTimeout = envDuration("STOCKMENTOR_HTTP_TIMEOUT", 10*time.Second)
	cfg.AIProvider = strings.ToLower(envOr("STOCKMENTOR_AI_PROVIDER", "gemini"))
	cfg.AIModel = os.Getenv("STOCKMENTOR_AI_MODEL")
	cfg.AIBaseURL = os.Getenv("STOCKMENTOR_AI_BASE_URL")
	cfg.CORSOrigins = splitList(envOr("STOCKMENTOR_CORS_ORIGINS", "*"))

	switch cfg.AIProvider {
	case "gemini":
		cfg.AIAPIKey = os.Getenv("GEMINI_API_KEY")
	case "openai":
		cfg.AIAPIKey = os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		cfg.AIAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	default:
		return Config{}, fmt.Errorf("unsupported AI provider %q", cfg.AIProvider)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	cfg.DBPath = envOr("STOCKMENTOR_DB_PATH", filepath.Join(cfg.DataDir, "stockmentor.db"))
	return cfg, nil
}

// Addr returns the host:port pair the server binds.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LogDir is where rotating log files are written.
func (c Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
