package analyzer

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Properties holds the values derived from a stored string.
type Properties struct {
	Length                int            `json:"length"`
	IsPalindrome          bool           `json:"is_palindrome"`
	UniqueCharacters      int            `json:"unique_characters"`
	WordCount             int            `json:"word_count"`
	SHA256Hash            string         `json:"sha256_hash"`
	CharacterFrequencyMap map[string]int `json:"character_frequency_map"`
}

// wordPattern matches runs of letters, apostrophes and hyphens.
var wordPattern = regexp.MustCompile(`[\p{L}'-]+`)

// Analyze computes the Properties of value. It never fails: empty and
// whitespace-only input produce a complete, zero-valued result.
func Analyze(value string) Properties {
	freq := make(map[string]int)
	for _, r := range value {
		freq[string(r)]++
	}

	return Properties{
		Length:                Length(value),
		IsPalindrome:          IsPalindrome(value),
		UniqueCharacters:      len(freq),
		WordCount:             WordCount(value),
		SHA256Hash:            Hash(value),
		CharacterFrequencyMap: freq,
	}
}

// Hash returns the hex-encoded SHA-256 digest of value.
func Hash(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Length counts code points, not bytes.
func Length(value string) int {
	return utf8.RuneCountInString(value)
}

// IsPalindrome reports whether value reads the same in both directions once
// whitespace is removed and letters are lower-cased.
func IsPalindrome(value string) bool {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)

	runes := []rune(Lower(stripped))
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		if runes[i] != runes[j] {
			return false
		}
	}
	return true
}

// WordCount counts words the way a classic str_word_count does: a leading
// apostrophe or hyphen and a trailing hyphen on the whole string are ignored,
// then every maximal run of letters, apostrophes and hyphens is one word.
func WordCount(value string) int {
	if r, size := utf8.DecodeRuneInString(value); r == '\'' || r == '-' {
		value = value[size:]
	}
	value = strings.TrimSuffix(value, "-")
	return len(wordPattern.FindAllStringIndex(value, -1))
}

// Lower maps s to lower case using language-neutral rules. A new Caser is
// built per call because Casers are stateful.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
