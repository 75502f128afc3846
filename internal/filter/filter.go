// Package filter turns query parameters or free-text queries into predicates
// over stored strings. Filters can be evaluated in memory with Match or
// compiled into a parameterized SQL clause with Compile.
package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/runnerr0/strand/internal/analyzer"
	"github.com/runnerr0/strand/internal/storage"
)

// ErrInvalidParam is returned when a structured parameter cannot be parsed.
var ErrInvalidParam = errors.New("invalid filter parameter")

// Filters is a conjunction of optional predicates. A nil field does not
// constrain the result.
type Filters struct {
	WordCount         *int   `json:"word_count,omitempty"`
	IsPalindrome      *bool  `json:"is_palindrome,omitempty"`
	MinLength         *int   `json:"min_length,omitempty"`
	MaxLength         *int   `json:"max_length,omitempty"`
	ContainsCharacter string `json:"contains_character,omitempty"`

	// Conflict marks a min_length greater than max_length. It is reported
	// back to the caller and does not stop evaluation.
	Conflict bool `json:"conflict,omitempty"`
}

// IsEmpty reports whether no predicate is set.
func (f Filters) IsEmpty() bool {
	return f.WordCount == nil && f.IsPalindrome == nil &&
		f.MinLength == nil && f.MaxLength == nil && f.ContainsCharacter == ""
}

// FromQuery parses the structured list parameters: min_length, max_length,
// is_palindrome, word_count and contains_character. Unknown keys are ignored.
func FromQuery(q url.Values) (Filters, error) {
	var f Filters

	for _, key := range []string{"min_length", "max_length", "word_count"} {
		if !q.Has(key) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
		if err != nil {
			return Filters{}, fmt.Errorf("%w: %s must be an integer", ErrInvalidParam, key)
		}
		switch key {
		case "min_length":
			f.MinLength = &n
		case "max_length":
			f.MaxLength = &n
		case "word_count":
			f.WordCount = &n
		}
	}

	if q.Has("is_palindrome") {
		b := parseTruthy(q.Get("is_palindrome"))
		f.IsPalindrome = &b
	}

	f.ContainsCharacter = q.Get("contains_character")
	return f, nil
}

// parseTruthy accepts 1, true, on and yes in any case; everything else is false.
func parseTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// storedView is the subset of stored properties the matcher reads. Pointer
// fields distinguish an absent key from a zero value.
type storedView struct {
	Length       *int  `json:"length"`
	IsPalindrome *bool `json:"is_palindrome"`
	WordCount    *int  `json:"word_count"`
}

// Match evaluates f against rec in memory. Stored properties are preferred;
// a field missing from the stored JSON, or JSON that does not decode, is
// recomputed from the value.
func (f Filters) Match(rec storage.Record) bool {
	var view storedView
	if len(rec.Properties) > 0 {
		if err := json.Unmarshal(rec.Properties, &view); err != nil {
			view = storedView{}
		}
	}

	length := analyzer.Length(rec.Value)
	if view.Length != nil {
		length = *view.Length
	}

	minLength, maxLength := 0, math.MaxInt
	if f.MinLength != nil {
		minLength = *f.MinLength
	}
	if f.MaxLength != nil {
		maxLength = *f.MaxLength
	}
	if length < minLength || length > maxLength {
		return false
	}

	if f.IsPalindrome != nil {
		isPal := false
		if view.IsPalindrome != nil {
			isPal = *view.IsPalindrome
		} else {
			isPal = analyzer.IsPalindrome(rec.Value)
		}
		if isPal != *f.IsPalindrome {
			return false
		}
	}

	if f.WordCount != nil {
		wc := analyzer.WordCount(rec.Value)
		if view.WordCount != nil {
			wc = *view.WordCount
		}
		if wc != *f.WordCount {
			return false
		}
	}

	if f.ContainsCharacter != "" {
		if !strings.Contains(analyzer.Lower(rec.Value), analyzer.Lower(f.ContainsCharacter)) {
			return false
		}
	}

	return true
}

// Apply returns the records that match f, preserving order.
func (f Filters) Apply(records []storage.Record) []storage.Record {
	out := make([]storage.Record, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
