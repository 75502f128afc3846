package service

import (
	"encoding/json"
	"time"

	"github.com/runnerr0/strand/internal/storage"
)

// StringView is the external JSON shape of a stored string.
type StringView struct {
	ID         string          `json:"id"`
	Value      string          `json:"value"`
	Properties json.RawMessage `json:"properties"`
	CreatedAt  string          `json:"created_at"`
}

// ViewOf renders rec for output. The content hash is the external id.
func ViewOf(rec storage.Record) StringView {
	props := rec.Properties
	if len(props) == 0 || !json.Valid(props) {
		props = json.RawMessage("{}")
	}
	return StringView{
		ID:         rec.Hash,
		Value:      rec.Value,
		Properties: props,
		CreatedAt:  rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ViewsOf renders a slice of records, never returning nil.
func ViewsOf(recs []storage.Record) []StringView {
	out := make([]StringView, len(recs))
	for i, r := range recs {
		out[i] = ViewOf(r)
	}
	return out
}
