package filter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/runnerr0/strand/internal/analyzer"
)

var (
	longerThan  = regexp.MustCompile(`longer than (\d+)`)
	shorterThan = regexp.MustCompile(`shorter than (\d+)`)
	letter      = regexp.MustCompile(`contain(?:ing)? the letter (\w)`)
)

// ParseNatural translates a free-text query into Filters using fixed phrase
// heuristics on the lower-cased text. Every recognised phrase sets one
// field; a later phrase for the same field wins. A query with no
// recognised phrase yields empty Filters.
func ParseNatural(query string) Filters {
	text := analyzer.Lower(strings.TrimSpace(query))
	var f Filters

	switch {
	case strings.Contains(text, "single word"):
		f.WordCount = intPtr(1)
	case strings.Contains(text, "two word"):
		f.WordCount = intPtr(2)
	}

	if strings.Contains(text, "palindromic") || strings.Contains(text, "palindrome") {
		t := true
		f.IsPalindrome = &t
	}

	if n, ok := matchNumber(longerThan, text); ok {
		f.MinLength = intPtr(n + 1)
	}
	if n, ok := matchNumber(shorterThan, text); ok {
		f.MaxLength = intPtr(n - 1)
	}

	if m := letter.FindStringSubmatch(text); m != nil {
		f.ContainsCharacter = m[1]
	}
	if strings.Contains(text, "first vowel") {
		f.ContainsCharacter = "a"
	}

	if f.MinLength != nil && f.MaxLength != nil && *f.MinLength > *f.MaxLength {
		f.Conflict = true
	}

	return f
}

// matchNumber returns the first capture of re as an int. Numbers too large
// for int are treated as no match.
func matchNumber(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func intPtr(n int) *int { return &n }
