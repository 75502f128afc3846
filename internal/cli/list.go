package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/runnerr0/strand/internal/filter"
	"github.com/runnerr0/strand/internal/service"
	"github.com/runnerr0/strand/internal/storage"
)

// listJSON mirrors the GET /strings response body.
type listJSON struct {
	Data           []service.StringView `json:"data"`
	Count          int                  `json:"count"`
	FiltersApplied map[string]string    `json:"filters_applied"`
}

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	if _, err := filter.FromQuery(c.params()); err != nil {
		return err
	}

	sess, err := openSession(c.globals)
	if err != nil {
		return err
	}
	defer sess.Close()

	return c.executeWithService(sess.svc)
}

// params renders the set flags as query parameters so the CLI and the
// HTTP API share one parser.
func (c *ListCommand) params() url.Values {
	q := url.Values{}
	set := func(key, v string) {
		if v != "" {
			q.Set(key, v)
		}
	}
	set("is_palindrome", c.IsPalindrome)
	set("min_length", c.MinLength)
	set("max_length", c.MaxLength)
	set("word_count", c.WordCount)
	set("contains_character", c.ContainsCharacter)
	return q
}

// executeWithService runs the list against a provided service (used by tests).
func (c *ListCommand) executeWithService(svc *service.Service) error {
	params := c.params()
	f, err := filter.FromQuery(params)
	if err != nil {
		return err
	}

	records, err := svc.List(context.Background(), f)
	if err != nil {
		return fmt.Errorf("list strings: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		applied := make(map[string]string, len(params))
		for k := range params {
			applied[k] = params.Get(k)
		}
		return printJSON(listJSON{
			Data:           service.ViewsOf(records),
			Count:          len(records),
			FiltersApplied: applied,
		})
	}

	printRecords(records)
	return nil
}

// printRecords prints a compact one-line-per-record table.
func printRecords(records []storage.Record) {
	if len(records) == 0 {
		fmt.Println("No strings found.")
		return
	}

	for _, rec := range records {
		fmt.Printf("%.12s  %s  %q\n", rec.Hash, rec.CreatedAt.UTC().Format("2006-01-02"), rec.Value)
	}
	fmt.Printf("\n%d string(s)\n", len(records))
}
