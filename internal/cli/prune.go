package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/strand/internal/config"
	"github.com/runnerr0/strand/internal/service"
)

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	if c.OlderThan != "" {
		if _, err := parseDuration(c.OlderThan); err != nil {
			return err
		}
	}

	sess, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer sess.Close()

	return c.executeWithService(sess.svc, sess.cfg)
}

// retention resolves the pruning window: --older-than wins over
// retention.days. Zero means nothing should be pruned.
func (c *PruneCommand) retention(cfg *config.Config) (time.Duration, error) {
	if c.OlderThan != "" {
		return parseDuration(c.OlderThan)
	}
	return time.Duration(cfg.Retention.Days) * 24 * time.Hour, nil
}

// executeWithService prunes against a provided service (for testing).
func (c *PruneCommand) executeWithService(svc *service.Service, cfg *config.Config) error {
	window, err := c.retention(cfg)
	if err != nil {
		return err
	}

	jsonOut := c.globals != nil && c.globals.JSON

	if window <= 0 {
		if jsonOut {
			return printJSON(map[string]any{"pruned": 0, "retention": "forever"})
		}
		fmt.Println("Retention is disabled; nothing to prune.")
		return nil
	}

	n, err := svc.Prune(context.Background(), window)
	if err != nil {
		return fmt.Errorf("prune: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]any{"pruned": n, "older_than": window.String()})
	}

	fmt.Printf("Pruned %d string(s) older than %s.\n", n, formatDurationHuman(window))
	return nil
}
