package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/runnerr0/strand/internal/service"
	"github.com/runnerr0/strand/internal/storage"
)

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	if c.ID == "" && len(args) != 1 {
		return fmt.Errorf("show requires a value argument or --id")
	}
	if c.ID != "" && len(args) > 0 {
		return fmt.Errorf("a value argument and --id are mutually exclusive")
	}

	sess, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer sess.Close()

	value := ""
	if len(args) == 1 {
		value = args[0]
	}
	return c.executeWithService(sess.svc, value)
}

// executeWithService looks the string up by --id or by value (used by tests).
func (c *ShowCommand) executeWithService(svc *service.Service, value string) error {
	ctx := context.Background()

	var (
		rec *storage.Record
		err error
	)
	if c.ID != "" {
		rec, err = svc.GetByHash(ctx, c.ID)
	} else {
		rec, err = svc.Get(ctx, value)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("string not found")
	}
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(service.ViewOf(*rec))
	}

	printRecord(rec)
	return nil
}
