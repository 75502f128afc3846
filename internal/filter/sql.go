package filter

import (
	"strings"

	"github.com/runnerr0/strand/internal/storage"
)

// likeEscaper escapes LIKE wildcards; the compiled clause declares '\' as
// the escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Compile converts f into a parameterized WHERE clause for the strings
// table. Values are always bound, never interpolated.
//
// Length is compared against the character count of the raw value and the
// palindrome flag against the stored JSON. Word count uses the space-count
// heuristic (spaces + 1), which differs from the analyzer's word_count for
// values with repeated, leading or trailing spaces or with punctuation-only
// tokens. LIKE folds case for ASCII letters only.
func Compile(f Filters) storage.Clause {
	var clauses []string
	var args []any

	if f.IsPalindrome != nil {
		clauses = append(clauses, "json_extract(properties, '$.is_palindrome') = ?")
		args = append(args, boolArg(*f.IsPalindrome))
	}
	if f.MinLength != nil {
		clauses = append(clauses, "length(value) >= ?")
		args = append(args, *f.MinLength)
	}
	if f.MaxLength != nil {
		clauses = append(clauses, "length(value) <= ?")
		args = append(args, *f.MaxLength)
	}
	if f.WordCount != nil {
		clauses = append(clauses, "(length(value) - length(replace(value, ' ', '')) + 1) = ?")
		args = append(args, *f.WordCount)
	}
	if f.ContainsCharacter != "" {
		clauses = append(clauses, `value LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(f.ContainsCharacter)+"%")
	}

	return storage.Clause{
		Where: strings.Join(clauses, " AND "),
		Args:  args,
	}
}

// boolArg encodes b the way json_extract reports JSON booleans.
func boolArg(b bool) int {
	if b {
		return 1
	}
	return 0
}
