package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Serve  *ServeCommand
	Add    *AddCommand
	Show   *ShowCommand
	List   *ListCommand
	Query  *QueryCommand
	Delete *DeleteCommand
	Status *StatusCommand
	Prune  *PruneCommand
	Purge  *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "strand"
	parser.LongDescription = "Store strings, analyze their properties and query them over HTTP or from the shell."

	cmds := &commands{
		Serve:  &ServeCommand{globals: &globals, version: version},
		Add:    &AddCommand{globals: &globals, version: version},
		Show:   &ShowCommand{globals: &globals, version: version},
		List:   &ListCommand{globals: &globals, version: version},
		Query:  &QueryCommand{globals: &globals, version: version},
		Delete: &DeleteCommand{globals: &globals, version: version},
		Status: &StatusCommand{globals: &globals, version: version},
		Prune:  &PruneCommand{globals: &globals, version: version},
		Purge:  &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("serve", "Start the HTTP service", "Start the strand HTTP/JSON service in the foreground.", cmds.Serve)
	parser.AddCommand("add", "Analyze and store a string", "Analyze a string and store it with its computed properties.", cmds.Add)
	parser.AddCommand("show", "Print a stored string", "Print a stored string and its properties, looked up by value or by --id.", cmds.Show)
	parser.AddCommand("list", "List stored strings", "List stored strings, optionally filtered by their properties.", cmds.List)
	parser.AddCommand("query", "Filter with a natural-language query", "Interpret a natural-language query and print the matching strings.", cmds.Query)
	parser.AddCommand("delete", "Delete a stored string", "Delete a stored string by its exact value.", cmds.Delete)
	parser.AddCommand("status", "Show store statistics", "Show database statistics, configuration summary and service health.", cmds.Status)
	parser.AddCommand("prune", "Apply retention pruning", "Delete strings older than the retention period.", cmds.Prune)
	parser.AddCommand("purge", "Delete ALL stored strings", "Delete ALL stored strings. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the strand CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("strand %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
