package filter

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNatural(t *testing.T) {
	tests := []struct {
		query string
		want  Filters
	}{
		{"all single word palindromic strings", Filters{WordCount: intPtr(1), IsPalindrome: boolPtr(true)}},
		{"two word strings", Filters{WordCount: intPtr(2)}},
		{"single word and two word", Filters{WordCount: intPtr(1)}},
		{"strings that are palindromes", Filters{IsPalindrome: boolPtr(true)}},
		{"strings longer than 10 characters", Filters{MinLength: intPtr(11)}},
		{"strings shorter than 5", Filters{MaxLength: intPtr(4)}},
		{"strings containing the letter z", Filters{ContainsCharacter: "z"}},
		{"strings that contain the letter Q", Filters{ContainsCharacter: "q"}},
		{"palindromic strings that contain the first vowel", Filters{IsPalindrome: boolPtr(true), ContainsCharacter: "a"}},
		{"containing the letter x with the first vowel", Filters{ContainsCharacter: "a"}},
		{"LONGER THAN 2 AND SHORTER THAN 8", Filters{MinLength: intPtr(3), MaxLength: intPtr(7)}},
		{"longer than 10 and shorter than 5", Filters{MinLength: intPtr(11), MaxLength: intPtr(4), Conflict: true}},
		{"longer than 3 and shorter than 5", Filters{MinLength: intPtr(4), MaxLength: intPtr(4)}},
		{"shorter than 0", Filters{MaxLength: intPtr(-1)}},
		{"something unrelated", Filters{}},
	}

	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseNatural(tc.query))
		})
	}
}

func TestParseNatural_HugeNumberIgnored(t *testing.T) {
	f := ParseNatural("longer than 99999999999999999999999")
	assert.Nil(t, f.MinLength)
}

func TestParseNatural_EmptyQueryHasNoFilters(t *testing.T) {
	assert.True(t, ParseNatural("").IsEmpty())
	assert.True(t, ParseNatural("   ").IsEmpty())
}

func TestParseNatural_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	cases := map[string]string{
		"palindromic_longer_than": "palindromic strings longer than 3",
		"single_word_palindromic": "all single word palindromic strings",
		"conflicting_lengths":     "longer than 10 and shorter than 5",
		"containing_letter":       "strings containing the letter z",
		"unrecognised":            "show me everything",
	}

	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			data, err := json.Marshal(ParseNatural(query))
			require.NoError(t, err)
			g.Assert(t, name, data)
		})
	}
}

func boolPtr(b bool) *bool { return &b }
