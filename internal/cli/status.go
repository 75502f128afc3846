package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/runnerr0/strand/internal/config"
	"github.com/runnerr0/strand/internal/service"
	"github.com/runnerr0/strand/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version           string `json:"version"`
	DatabasePath      string `json:"database_path"`
	DatabaseSizeBytes int64  `json:"database_size_bytes"`
	TotalStrings      int64  `json:"total_strings"`
	Palindromes       int64  `json:"palindromes"`
	OldestString      string `json:"oldest_string,omitempty"`
	NewestString      string `json:"newest_string,omitempty"`
	RetentionDays     int    `json:"retention_days"`
	ListenAddr        string `json:"listen_addr"`
	ServiceRunning    bool   `json:"service_running"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	sess, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer sess.Close()

	return c.executeWithService(sess.svc, sess.cfg)
}

// executeWithService runs status against a provided service (for testing).
func (c *StatusCommand) executeWithService(svc *service.Service, cfg *config.Config) error {
	stats, err := svc.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("get stats: %w", err)
	}

	dbPath, err := cfg.Storage.DBPath()
	if err != nil {
		return err
	}
	dbSize := stats.DatabaseSizeBytes
	if info, err := os.Stat(dbPath); err == nil {
		dbSize = info.Size()
	}

	addr := cfg.Server.Addr()
	running := checkService(addr)

	if c.globals != nil && c.globals.JSON {
		return c.printStatusJSON(stats, cfg, dbPath, dbSize, running)
	}
	return c.printStatusHuman(stats, cfg, dbPath, dbSize, running)
}

func (c *StatusCommand) printStatusHuman(stats *storage.Stats, cfg *config.Config, dbPath string, dbSize int64, running bool) error {
	fmt.Println("Strand Status")
	fmt.Println("=============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Database:      %s (%s)\n", dbPath, formatBytes(dbSize))
	fmt.Printf("Strings:       %s\n", formatNumber(stats.TotalStrings))

	if stats.TotalStrings > 0 {
		pct := float64(stats.Palindromes) / float64(stats.TotalStrings) * 100
		fmt.Printf("Palindromes:   %s (%.1f%%)\n", formatNumber(stats.Palindromes), pct)
		fmt.Printf("Oldest:        %s\n", stats.Oldest.Local().Format("2006-01-02"))
		fmt.Printf("Newest:        %s\n", stats.Newest.Local().Format("2006-01-02"))
	} else {
		fmt.Printf("Palindromes:   %s\n", formatNumber(stats.Palindromes))
	}

	if cfg.Retention.Days > 0 {
		fmt.Printf("Retention:     %d days\n", cfg.Retention.Days)
	} else {
		fmt.Println("Retention:     forever")
	}

	fmt.Println()
	if running {
		fmt.Printf("Service:       running on %s\n", cfg.Server.Addr())
	} else {
		fmt.Println("Service:       not running")
	}

	return nil
}

func (c *StatusCommand) printStatusJSON(stats *storage.Stats, cfg *config.Config, dbPath string, dbSize int64, running bool) error {
	out := statusJSON{
		Version:           c.version,
		DatabasePath:      dbPath,
		DatabaseSizeBytes: dbSize,
		TotalStrings:      stats.TotalStrings,
		Palindromes:       stats.Palindromes,
		RetentionDays:     cfg.Retention.Days,
		ListenAddr:        cfg.Server.Addr(),
		ServiceRunning:    running,
	}

	if stats.TotalStrings > 0 {
		out.OldestString = stats.Oldest.UTC().Format(time.RFC3339)
		out.NewestString = stats.Newest.UTC().Format(time.RFC3339)
	}

	return printJSON(out)
}

// checkService probes the health endpoint at addr.
// Returns true if the service responds within 1 second.
func checkService(addr string) bool {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get("http://" + addr + "/healthz")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats an int64 with comma separators.
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if i > 0 {
			result.WriteString(",")
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
