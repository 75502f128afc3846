// Package service wires the analyzer, the filter engine and a storage.Store
// into the operations exposed over HTTP and the command line.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/runnerr0/strand/internal/analyzer"
	"github.com/runnerr0/strand/internal/filter"
	"github.com/runnerr0/strand/internal/storage"
)

// Service implements the string operations on top of a Store.
type Service struct {
	store  storage.Store
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Service. A nil logger falls back to slog.Default().
func New(store storage.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Create trims raw, analyzes it and persists it. A value already stored
// yields an error wrapping storage.ErrConflict.
func (s *Service) Create(ctx context.Context, raw string) (*storage.Record, error) {
	value := strings.TrimSpace(raw)
	props := analyzer.Analyze(value)

	data, err := json.Marshal(props)
	if err != nil {
		return nil, fmt.Errorf("encode properties: %w", err)
	}

	rec := &storage.Record{
		Value:      value,
		Hash:       props.SHA256Hash,
		Properties: data,
		CreatedAt:  s.now(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("string stored", "id", rec.Hash, "length", props.Length)
	return rec, nil
}

// Get looks a value up after trimming it.
func (s *Service) Get(ctx context.Context, value string) (*storage.Record, error) {
	return s.store.FindByValue(ctx, strings.TrimSpace(value))
}

// GetByHash looks a record up by its content hash.
func (s *Service) GetByHash(ctx context.Context, hash string) (*storage.Record, error) {
	return s.store.FindByHash(ctx, strings.ToLower(strings.TrimSpace(hash)))
}

// List returns every stored record that satisfies f, evaluated in memory.
func (s *Service) List(ctx context.Context, f filter.Filters) ([]storage.Record, error) {
	all, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// Interpretation is the outcome of a natural-language query.
type Interpretation struct {
	Original      string
	ParsedFilters filter.Filters
	Records       []storage.Record
}

// Query interprets a free-text query and runs it as a SQL predicate
// against the store.
func (s *Service) Query(ctx context.Context, query string) (*Interpretation, error) {
	f := filter.ParseNatural(query)
	if f.Conflict {
		s.logger.Debug("natural query has conflicting length bounds", "query", query)
	}

	records, err := s.store.Search(ctx, filter.Compile(f))
	if err != nil {
		return nil, err
	}

	return &Interpretation{Original: query, ParsedFilters: f, Records: records}, nil
}

// Delete removes the record whose value matches exactly. The value is not
// trimmed.
func (s *Service) Delete(ctx context.Context, value string) error {
	if err := s.store.DeleteByValue(ctx, value); err != nil {
		return err
	}
	s.logger.Info("string deleted", "length", analyzer.Length(value))
	return nil
}

// Prune deletes records created more than olderThan ago.
func (s *Service) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	n, err := s.store.PruneBefore(ctx, s.now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	s.logger.Info("strings pruned", "count", n, "older_than", olderThan.String())
	return n, nil
}

// Purge deletes every stored record.
func (s *Service) Purge(ctx context.Context) error {
	if err := s.store.PurgeAll(ctx); err != nil {
		return err
	}
	s.logger.Warn("all strings purged")
	return nil
}

// Stats returns store statistics.
func (s *Service) Stats(ctx context.Context) (*storage.Stats, error) {
	return s.store.GetStats(ctx)
}
