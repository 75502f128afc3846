package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/runnerr0/strand/internal/service"
	"github.com/runnerr0/strand/internal/storage"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("delete requires exactly one value argument")
	}

	sess, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer sess.Close()

	return c.executeWithService(sess.svc, args[0])
}

// executeWithService deletes value exactly as given (used by tests).
func (c *DeleteCommand) executeWithService(svc *service.Service, value string) error {
	err := svc.Delete(context.Background(), value)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("string not found: %q", value)
	}
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(map[string]any{"deleted": true, "value": value})
	}

	fmt.Printf("Deleted %q\n", value)
	return nil
}
