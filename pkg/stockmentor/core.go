package stockmentor

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Options controls Core initialization.
type Options struct {
	DBPath        string
	Logger        *slog.Logger
	MarketBaseURL string
	MarketAPIKey  string
	// MarketHTTPClient overrides the outbound HTTP client, mainly for tests.
	MarketHTTPClient HTTPDoer
	HTTPTimeout      time.Duration
	SnapshotCacheTTL time.Duration
	MarketRatePerSec float64

	Generator GeneratorConfig
	// TextGenerator overrides the configured provider, mainly for tests.
	TextGenerator TextGenerator
}

// Core provides access to Stock Mentor business logic and storage.
type Core struct {
	db        *sql.DB
	logger    *slog.Logger
	market    *marketDataClient
	generator TextGenerator
	dbPath    string
}

// Open initializes a Core using the provided database path.
func Open(dbPath string) (*Core, error) {
	return OpenWithOptions(Options{DBPath: dbPath})
}

// OpenWithOptions initializes a Core using the provided options.
func OpenWithOptions(opts Options) (*Core, error) {
	if opts.DBPath == "" {
		return nil, errors.New("db path is required")
	}
	cleanPath := filepath.Clean(opts.DBPath)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite performs best with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Warn("pragma busy_timeout failed", "err", err)
	}

	if err := initDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init database: %w", err)
	}

	market := newMarketDataClient(marketDataOptions{
		Logger:      logger,
		BaseURL:     opts.MarketBaseURL,
		APIKey:      opts.MarketAPIKey,
		HTTPClient:  opts.MarketHTTPClient,
		HTTPTimeout: defaultDuration(opts.HTTPTimeout, 10*time.Second),
		CacheTTL:    defaultDuration(opts.SnapshotCacheTTL, 60*time.Second),
		RatePerSec:  opts.MarketRatePerSec,
	})

	generator := opts.TextGenerator
	if generator == nil && opts.Generator.APIKey != "" {
		generator, err = NewTextGenerator(opts.Generator)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init text generator: %w", err)
		}
	}
	if generator == nil {
		logger.Warn("no generator configured; explanations fall back to templates")
	}

	return &Core{
		db:        db,
		logger:    logger,
		market:    market,
		generator: generator,
		dbPath:    cleanPath,
	}, nil
}

// Close releases database resources.
func (c *Core) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// DBPath returns the underlying database path.
func (c *Core) DBPath() string {
	return c.dbPath
}

func defaultDuration(v time.Duration, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
