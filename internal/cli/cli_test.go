package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	var err error
	output := captureOutput(t, func() {
		err = RunWithArgs("0.1.0-test", []string{"--version"})
	})

	assert.NoError(t, err)
	assert.Contains(t, output, "strand 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})

	assert.Equal(t, "strand 1.2.3", strings.TrimSpace(output))
}

func TestAllSubcommandsExist(t *testing.T) {
	expected := []string{"serve", "add", "show", "list", "query", "delete", "status", "prune", "purge"}
	parser, _, _ := buildParser("test")

	for _, name := range expected {
		cmd := parser.Find(name)
		assert.NotNil(t, cmd, "subcommand %q should exist", name)
	}
}

func TestUnknownSubcommandFails(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"nonexistent"})
	require.Error(t, err)
}

func TestHelpFlagDoesNotError(t *testing.T) {
	err := RunWithArgs("test", []string{"--help"})
	assert.NoError(t, err)
}

func TestGlobalFlagsJSON(t *testing.T) {
	parser, globals, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"--json", "purge", "--all", "--force", "--config", "/nonexistent/strand.yaml"})
	require.Error(t, err)
	assert.True(t, globals.JSON)
}

func TestGlobalFlagsConfig(t *testing.T) {
	parser, globals, _ := buildParser("test")
	_, _ = parser.ParseArgs([]string{"--config", "/nonexistent/strand.yaml", "status"})
	assert.Equal(t, "/nonexistent/strand.yaml", globals.Config)
}

func TestServeFlags(t *testing.T) {
	p, _, c := buildParser("test")
	// The missing config file fails before anything binds.
	_, err := p.ParseArgs([]string{"serve", "--host", "0.0.0.0", "--port", "70000", "--config", "/nonexistent/strand.yaml"})
	require.Error(t, err)
	assert.Equal(t, "0.0.0.0", c.Serve.Host)
	assert.Equal(t, 70000, c.Serve.Port)
}

func TestListFlagsParse(t *testing.T) {
	p, _, c := buildParser("test")
	// Malformed integers are rejected before the store is opened.
	_, err := p.ParseArgs([]string{"list", "--min-length", "abc", "--contains-character", "z"})
	require.Error(t, err)
	assert.Equal(t, "abc", c.List.MinLength)
	assert.Equal(t, "z", c.List.ContainsCharacter)
}

func TestPruneOlderThanFlag(t *testing.T) {
	p, _, c := buildParser("test")
	_, err := p.ParseArgs([]string{"prune", "--older-than", "7x"})
	require.Error(t, err)
	assert.Equal(t, "7x", c.Prune.OlderThan)
}

func TestPurgeForceFlag(t *testing.T) {
	p, _, c := buildParser("test")
	_, err := p.ParseArgs([]string{"purge", "--all", "--force", "--config", "/nonexistent/strand.yaml"})
	require.Error(t, err)
	assert.True(t, c.Purge.All)
	assert.True(t, c.Purge.Force)
}

func TestAddRequiresValue(t *testing.T) {
	err := RunWithArgs("test", []string{"add"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one value")
}

func TestShowRequiresValueOrID(t *testing.T) {
	err := RunWithArgs("test", []string{"show"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "value argument or --id")
}

func TestDeleteRequiresValue(t *testing.T) {
	err := RunWithArgs("test", []string{"delete"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one value")
}

func TestQueryRequiresText(t *testing.T) {
	err := RunWithArgs("test", []string{"query"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "natural-language query")
}

func TestListRejectsMalformedInteger(t *testing.T) {
	err := RunWithArgs("test", []string{"list", "--min-length", "abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_length")
}

func TestPruneRejectsBadDuration(t *testing.T) {
	err := RunWithArgs("test", []string{"prune", "--older-than", "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestPurgeRequiresAll(t *testing.T) {
	err := RunWithArgs("test", []string{"purge"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purge requires --all flag for safety")
}

func TestEndToEndWithConfigFile(t *testing.T) {
	cfgPath := writeTestConfig(t)
	run := func(args ...string) (string, error) {
		var err error
		out := captureOutput(t, func() {
			err = RunWithArgs("test", append([]string{"--config", cfgPath}, args...))
		})
		return out, err
	}

	out, err := run("add", "racecar")
	require.NoError(t, err)
	assert.Contains(t, out, "Added string")

	_, err = run("add", "hello world")
	require.NoError(t, err)

	_, err = run("add", "racecar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = run("list", "--is-palindrome", "true")
	require.NoError(t, err)
	assert.Contains(t, out, `"racecar"`)
	assert.NotContains(t, out, `"hello world"`)

	out, err = run("query", "two", "word", "strings")
	require.NoError(t, err)
	assert.Contains(t, out, `"hello world"`)

	_, err = run("delete", "racecar")
	require.NoError(t, err)

	_, err = run("show", "racecar")
	require.Error(t, err)

	out, err = run("status")
	require.NoError(t, err)
	assert.Contains(t, out, "Strings:       1")
}
