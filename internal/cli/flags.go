package cli

import "io"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// ServeCommand: run the HTTP service until interrupted.
type ServeCommand struct {
	Host     string `long:"host" description:"Override listen host"`
	Port     int    `long:"port" description:"Override listen port"`
	LogLevel string `long:"log-level" description:"Override log level"`

	globals *GlobalFlags
	version string
}

// AddCommand: analyze and store a string.
type AddCommand struct {
	File string `long:"file" description:"Read the value from a file instead of the argument"`

	globals *GlobalFlags
	version string
}

// ShowCommand: print one stored string.
type ShowCommand struct {
	ID string `long:"id" description:"Look up by SHA-256 id instead of value"`

	globals *GlobalFlags
	version string
}

// ListCommand: list stored strings with structured filters.
type ListCommand struct {
	IsPalindrome      string `long:"is-palindrome" description:"Only palindromes (true) or non-palindromes (false)"`
	MinLength         string `long:"min-length" description:"Minimum length in characters"`
	MaxLength         string `long:"max-length" description:"Maximum length in characters"`
	WordCount         string `long:"word-count" description:"Exact word count"`
	ContainsCharacter string `long:"contains-character" description:"Only values containing this character (case-insensitive)"`

	globals *GlobalFlags
	version string
}

// QueryCommand: natural-language filtering.
type QueryCommand struct {
	globals *GlobalFlags
	version string
}

// DeleteCommand: delete a string by exact value.
type DeleteCommand struct {
	globals *GlobalFlags
	version string
}

// StatusCommand: show database stats, config summary and service health.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// PruneCommand: apply retention pruning to remove old strings.
type PruneCommand struct {
	OlderThan string `long:"older-than" description:"Override retention period (e.g., 30d)"`

	globals *GlobalFlags
	version string
}

// PurgeCommand: delete ALL stored strings with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	stdin   io.Reader // injectable for testing; nil means os.Stdin
}
