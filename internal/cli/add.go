package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/runnerr0/strand/internal/service"
	"github.com/runnerr0/strand/internal/storage"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	value, err := c.resolveValue(args)
	if err != nil {
		return err
	}

	sess, err := openSession(c.globals)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sess.Close()

	return c.executeWithService(sess.svc, value)
}

// resolveValue picks the value from --file or the single positional argument.
func (c *AddCommand) resolveValue(args []string) (string, error) {
	if c.File != "" {
		if len(args) > 0 {
			return "", fmt.Errorf("a value argument and --file are mutually exclusive")
		}
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("reading value file: %w", err)
		}
		return string(data), nil
	}

	if len(args) != 1 {
		return "", fmt.Errorf("add requires exactly one value argument (or --file)")
	}
	return args[0], nil
}

// executeWithService runs the add logic against a provided service (used by tests).
func (c *AddCommand) executeWithService(svc *service.Service, value string) error {
	rec, err := svc.Create(context.Background(), value)
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("string already exists: %q", value)
	}
	if err != nil {
		return fmt.Errorf("storing string: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(service.ViewOf(*rec))
	}

	fmt.Printf("Added string %s\n", rec.Hash)
	printRecord(rec)
	return nil
}
