package cli

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/runnerr0/strand/internal/config"
	"github.com/runnerr0/strand/internal/service"
	"github.com/runnerr0/strand/internal/storage"
)

// session bundles everything a subcommand needs to talk to the store.
type session struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *sql.DB
	store  *storage.SQLiteStore
	svc    *service.Service
}

// Close releases the store and the database handle.
func (s *session) Close() {
	s.store.Close()
	s.db.Close()
}

// loadConfig reads --config if given, otherwise the default config file,
// creating it with defaults on first use.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		path, err := config.ExpandPath(globals.Config)
		if err != nil {
			return nil, err
		}
		return config.Load(path)
	}
	return config.LoadOrCreate()
}

// newLogger builds the CLI logger. Logs go to stderr so stdout stays
// machine-readable under --json.
func newLogger(cfg *config.Config, globals *GlobalFlags) (*slog.Logger, error) {
	verbose := globals != nil && globals.Verbose
	return cfg.Logging.NewLogger(os.Stderr, verbose)
}

// openStore opens the configured database, runs migrations, and returns a
// ready-to-use store and the underlying *sql.DB.
func openStore(cfg *config.Config) (*storage.SQLiteStore, *sql.DB, error) {
	dbPath, err := cfg.Storage.DBPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve database path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	runner := storage.NewMigrationRunner(db).WithJournalMode(cfg.Storage.SQLiteJournalMode)
	if err := runner.Run(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("create store: %w", err)
	}

	return store, db, nil
}

// openSession loads config, builds the logger and opens the store.
func openSession(globals *GlobalFlags) (*session, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, globals)
	if err != nil {
		return nil, err
	}

	store, db, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:    cfg,
		logger: logger,
		db:     db,
		store:  store,
		svc:    service.New(store, logger),
	}, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printRecord prints one record in human-readable form.
func printRecord(rec *storage.Record) {
	v := service.ViewOf(*rec)
	fmt.Printf("%s\n", v.ID)
	fmt.Printf("  Value:   %q\n", v.Value)
	fmt.Printf("  Created: %s\n", v.CreatedAt)
	fmt.Printf("  Properties: %s\n", v.Properties)
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatDurationHuman formats a duration into a human-readable string like "30 days".
func formatDurationHuman(d time.Duration) string {
	days := int(d.Hours() / 24)
	if days > 0 {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	hours := int(d.Hours())
	if hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
