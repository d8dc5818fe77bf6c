// Package cli is the command-tree layer of agentflow: nested commands,
// flag sets bound from parameter structs, help text and typo suggestions.
package cli

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/daap14/agentflow/internal/apperror"
)

// Command is one node of the command tree. A node either dispatches to
// Subcommands or has a Run function.
type Command struct {
	Name string

	// Summary appears next to the name in the parent's command list.
	Summary string
	// Description replaces Summary at the top of the command's own help.
	Description string
	// Usage overrides the generated usage line.
	Usage    string
	Examples []Example

	// Flags builds a fresh flag set bound to the command's parameters.
	// Nil means the command takes no flags and receives args verbatim.
	Flags func() *pflag.FlagSet

	Subcommands []*Command
	Run         func(args []string) error

	// Output receives help text. Unset nodes use their parent's; the
	// root falls back to stderr.
	Output io.Writer

	parent *Command
}

// Example is one sample invocation listed in help.
type Example struct {
	Description string
	Command     string
}

// UsageError reports a command line that does not fit the tree: an unknown
// command or flag, or a group invoked without a subcommand. It unwraps to a
// validation error.
type UsageError struct {
	// Command is the path of the node that rejected the input, such as
	// "agentflow org".
	Command string
	Err     error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Execute walks args down the tree and runs the selected command with the
// positional arguments left after flag parsing. A help request at any level
// prints that level's help and returns nil.
func (c *Command) Execute(args []string) error {
	cmd := c
	for {
		if len(args) > 0 && isHelpFlag(args[0]) {
			cmd.PrintHelp(cmd.output())
			return nil
		}
		if len(cmd.Subcommands) == 0 || len(args) == 0 || strings.HasPrefix(args[0], "-") {
			break
		}

		sub := cmd.subcommand(args[0])
		if sub == nil {
			msg := fmt.Sprintf("unknown command %q", args[0])
			if guess := suggestCommand(args[0], cmd.Subcommands); guess != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", guess)
			}
			return cmd.usageError(msg)
		}
		sub.parent = cmd
		cmd, args = sub, args[1:]
	}

	if cmd.Run == nil {
		cmd.PrintHelp(cmd.output())
		if len(cmd.Subcommands) > 0 {
			return cmd.usageError("missing subcommand for '" + cmd.fullName() + "'")
		}
		return cmd.usageError("nothing to run for '" + cmd.fullName() + "'")
	}

	positional, err := cmd.parseFlags(args)
	if errors.Is(err, pflag.ErrHelp) {
		cmd.PrintHelp(cmd.output())
		return nil
	}
	if err != nil {
		return err
	}
	return cmd.Run(positional)
}

func (c *Command) subcommand(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub
		}
	}
	return nil
}

func (c *Command) parseFlags(args []string) ([]string, error) {
	if c.Flags == nil {
		return args, nil
	}

	flagSet := c.Flags()
	flagSet.SetOutput(io.Discard)
	err := flagSet.Parse(args)
	switch {
	case err == nil:
		return flagSet.Args(), nil
	case errors.Is(err, pflag.ErrHelp):
		return nil, err
	}

	msg := err.Error()
	if strings.HasPrefix(msg, "unknown") {
		if guess := suggestFlag(args, c.Flags()); guess != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", guess)
		}
	}
	return nil, c.usageError(msg)
}

func (c *Command) usageError(msg string) *UsageError {
	return &UsageError{Command: c.fullName(), Err: apperror.Validation("%s", msg)}
}

// PrintHelp writes the command's help to w.
func (c *Command) PrintHelp(w io.Writer) {
	path := c.fullName()

	if intro := cmp.Or(c.Description, c.Summary); intro != "" {
		fmt.Fprintln(w, intro)
		fmt.Fprintln(w)
	}

	usage := c.Usage
	if usage == "" {
		usage = path + " [flags]"
		if len(c.Subcommands) > 0 {
			usage = path + " <command> [flags]"
		}
	}
	fmt.Fprintf(w, "Usage:\n  %s\n", usage)

	if len(c.Subcommands) > 0 {
		fmt.Fprint(w, "\nCommands:\n")
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		for _, sub := range c.Subcommands {
			fmt.Fprintf(tw, "  %s\t%s\n", sub.Name, sub.Summary)
		}
		tw.Flush()
	}

	if c.Flags != nil {
		if usages := c.Flags().FlagUsages(); usages != "" {
			fmt.Fprint(w, "\nFlags:\n"+usages)
		}
	}

	if len(c.Examples) > 0 {
		fmt.Fprint(w, "\nExamples:\n")
		for _, ex := range c.Examples {
			if ex.Description != "" {
				fmt.Fprintf(w, "  # %s\n", ex.Description)
			}
			fmt.Fprintf(w, "  %s\n", ex.Command)
		}
	}

	if len(c.Subcommands) > 0 {
		fmt.Fprintf(w, "\nRun '%s <command> --help' for details on a command.\n", path)
	}
}

// fullName is the space-separated path from the root, e.g. "agentflow org use".
func (c *Command) fullName() string {
	names := []string{c.Name}
	for p := c.parent; p != nil; p = p.parent {
		names = append([]string{p.Name}, names...)
	}
	return strings.Join(names, " ")
}

func (c *Command) output() io.Writer {
	for cmd := c; cmd != nil; cmd = cmd.parent {
		if cmd.Output != nil {
			return cmd.Output
		}
	}
	return os.Stderr
}

func isHelpFlag(arg string) bool {
	switch arg {
	case "help", "-h", "--help":
		return true
	}
	return false
}
