package commands

import (
	"errors"
	"fmt"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/cli"
)

func (inv *invocation) rootCommand() *cli.Command {
	return &cli.Command{
		Name:        "agentflow",
		Description: "AgentFlow CLI: manage users, organizations and projects.",
		Subcommands: []*cli.Command{
			inv.authCommand(),
			inv.orgCommand(),
			inv.projectCommand(),
			inv.versionCommand(),
		},
	}
}

func (inv *invocation) versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Summary: "Print the agentflow version",
		Run: func(args []string) error {
			fmt.Fprintf(inv.out.Out(), "agentflow %s\n", inv.cfg.Version)
			return nil
		},
	}
}

// requireFlag fails when a mandatory flag was not given.
func requireFlag(name, value string) error {
	if value == "" {
		return apperror.Validation("Missing option '--%s'", name)
	}
	return nil
}

// requireArg returns the single positional argument a command expects.
func requireArg(name string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", apperror.Validation("Missing argument '%s'", name)
	case 1:
		return args[0], nil
	default:
		return "", apperror.Validation("Unexpected extra argument '%s'", args[1])
	}
}

// password returns the flag value, or prompts for it when the flag is
// empty and stdin is a terminal.
func (inv *invocation) password(value string) (string, error) {
	if value != "" {
		return value, nil
	}
	pw, err := inv.readPassword("Password: ")
	if errors.Is(err, cli.ErrNotInteractive) {
		return "", requireFlag("password", "")
	}
	if err != nil {
		return "", apperror.Internal("%w", err)
	}
	return pw, nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
