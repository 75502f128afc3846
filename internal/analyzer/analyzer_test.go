package analyzer

import (
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAnalyze_Basic(t *testing.T) {
	p := Analyze("hello world")

	assert.Equal(t, 11, p.Length)
	assert.False(t, p.IsPalindrome)
	assert.Equal(t, 8, p.UniqueCharacters)
	assert.Equal(t, 2, p.WordCount)
	assert.Equal(t, "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", p.SHA256Hash)
	assert.Equal(t, 3, p.CharacterFrequencyMap["l"])
	assert.Equal(t, 1, p.CharacterFrequencyMap[" "])
}

func TestAnalyze_EmptyString(t *testing.T) {
	p := Analyze("")

	assert.Equal(t, 0, p.Length)
	assert.True(t, p.IsPalindrome)
	assert.Equal(t, 0, p.UniqueCharacters)
	assert.Equal(t, 0, p.WordCount)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", p.SHA256Hash)
	assert.NotNil(t, p.CharacterFrequencyMap)
	assert.Empty(t, p.CharacterFrequencyMap)
}

func TestAnalyze_WhitespaceOnly(t *testing.T) {
	p := Analyze(" \t ")

	assert.Equal(t, 3, p.Length)
	assert.True(t, p.IsPalindrome)
	assert.Equal(t, 2, p.UniqueCharacters)
	assert.Equal(t, 0, p.WordCount)
	assert.Equal(t, 2, p.CharacterFrequencyMap[" "])
	assert.Equal(t, 1, p.CharacterFrequencyMap["\t"])
}

func TestIsPalindrome(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"A man a plan a canal Panama", true},
		{"racecar", true},
		{"RaceCar", true},
		{"hello", false},
		{"Was it a car or a cat I saw", true},
		{"été", true},
		{"日本日", true},
		{"日本", false},
		{"ab\nba", true},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, IsPalindrome(tc.in), "IsPalindrome(%q)", tc.in)
	}
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"hello", 1},
		{"hello world", 2},
		{"  spaced   out  ", 2},
		{"can't stop", 2},
		{"state-of-the-art design", 2},
		{"abc123def", 2},
		{"123 456", 0},
		{"hello, world!", 2},
		{"'quoted", 1},
		{"trailing-", 1},
		{"a - b", 3},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, WordCount(tc.in), "WordCount(%q)", tc.in)
	}
}

func TestLength_CountsRunesNotBytes(t *testing.T) {
	assert.Equal(t, 5, Length("héllo"))
	assert.Equal(t, 2, Length("日本"))
	assert.Equal(t, 6, len("日本"))
}

func TestHash_IsDeterministic(t *testing.T) {
	assert.Equal(t, Hash("abc"), Hash("abc"))
	assert.NotEqual(t, Hash("abc"), Hash("abd"))
	assert.Len(t, Hash("abc"), 64)
}

// --- Properties ---

func TestLength_MatchesRuneCount_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		if got := Analyze(s).Length; got != utf8.RuneCountInString(s) {
			t.Fatalf("length %d != rune count %d for %q", got, utf8.RuneCountInString(s), s)
		}
	})
}

func TestFrequencyMap_SumsToLength_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		p := Analyze(s)

		sum := 0
		for _, n := range p.CharacterFrequencyMap {
			sum += n
		}
		if sum != p.Length {
			t.Fatalf("frequency sum %d != length %d for %q", sum, p.Length, s)
		}
		if len(p.CharacterFrequencyMap) != p.UniqueCharacters {
			t.Fatalf("unique %d != map size %d", p.UniqueCharacters, len(p.CharacterFrequencyMap))
		}
	})
}

func TestPalindrome_MirrorIsPalindrome_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		half := rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "half")
		runes := []rune(half)
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		s := half + string(runes)
		if !IsPalindrome(s) {
			t.Fatalf("%q should be a palindrome", s)
		}
		if !IsPalindrome(strings.ToUpper(s)) {
			t.Fatalf("%q should be a palindrome regardless of case", strings.ToUpper(s))
		}
	})
}

func TestPalindrome_IgnoresWhitespace_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-zA-Z \t]{0,30}`).Draw(t, "s")
		squeezed := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, s)
		if IsPalindrome(s) != IsPalindrome(squeezed) {
			t.Fatalf("whitespace changed the palindrome verdict for %q", s)
		}
	})
}
