package storage

import (
	"encoding/json"
	"time"
)

// Record is one analyzed string as persisted in the strings table.
type Record struct {
	ID         int64
	Value      string
	Hash       string
	Properties json.RawMessage
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Clause is a compiled WHERE fragment with its bound arguments. An empty
// Where selects every row.
type Clause struct {
	Where string
	Args  []any
}

// Stats holds aggregate statistics about the string store.
type Stats struct {
	TotalStrings      int64
	Palindromes       int64
	Oldest            time.Time
	Newest            time.Time
	DatabaseSizeBytes int64
}
