package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/runnerr0/strand/internal/filter"
	"github.com/runnerr0/strand/internal/service"
)

type interpretedJSON struct {
	Original      string         `json:"original"`
	ParsedFilters filter.Filters `json:"parsed_filters"`
}

type queryJSON struct {
	Data             []service.StringView `json:"data"`
	Count            int                  `json:"count"`
	InterpretedQuery interpretedJSON      `json:"interpreted_query"`
}

// Execute implements the go-flags Commander interface for QueryCommand.
func (c *QueryCommand) Execute(args []string) error {
	query := strings.Join(args, " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query requires a natural-language query argument")
	}

	sess, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer sess.Close()

	return c.executeWithService(sess.svc, query)
}

// executeWithService runs the query against a provided service (used by tests).
func (c *QueryCommand) executeWithService(svc *service.Service, query string) error {
	result, err := svc.Query(context.Background(), query)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(queryJSON{
			Data:  service.ViewsOf(result.Records),
			Count: len(result.Records),
			InterpretedQuery: interpretedJSON{
				Original:      result.Original,
				ParsedFilters: result.ParsedFilters,
			},
		})
	}

	parsed, err := json.Marshal(result.ParsedFilters)
	if err != nil {
		return fmt.Errorf("encode filters: %w", err)
	}
	fmt.Printf("Interpreted as: %s\n", parsed)
	if result.ParsedFilters.Conflict {
		fmt.Println("Warning: length bounds conflict, nothing can match.")
	}
	fmt.Println()
	printRecords(result.Records)
	return nil
}
