// Package commands builds the agentflow command tree and runs one
// invocation: load the session, dispatch, report, persist the session.
package commands

import (
	"errors"
	"io"
	"log/slog"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/auth"
	"github.com/daap14/agentflow/internal/cli"
	"github.com/daap14/agentflow/internal/config"
	"github.com/daap14/agentflow/internal/organization"
	"github.com/daap14/agentflow/internal/project"
	"github.com/daap14/agentflow/internal/session"
	"github.com/daap14/agentflow/internal/store"
)

// App runs agentflow commands against the files named in its config.
type App struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	// readPassword prompts for a password when --password is omitted.
	readPassword func(prompt string) (string, error)
}

// NewApp creates an App writing command output to stdout and errors to
// stderr.
func NewApp(cfg *config.Config, stdout, stderr io.Writer, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		stdout: stdout,
		stderr: stderr,
		logger: logger,
		readPassword: func(prompt string) (string, error) {
			return cli.ReadPassword(stderr, prompt)
		},
	}
}

// invocation holds what one command run shares between handlers.
type invocation struct {
	cfg          *config.Config
	out          *cli.Printer
	state        *session.State
	auth         *auth.Service
	orgs         *organization.Service
	projects     *project.Service
	readPassword func(prompt string) (string, error)
}

// Run executes args (without the program name) and returns the process
// exit code. The session context is saved only when the command succeeds
// and changed it.
func (a *App) Run(args []string) int {
	printer := cli.NewPrinter(a.stdout, a.stderr)

	state, err := session.Load(a.cfg.ContextFile)
	if err != nil {
		return a.fail(printer, err)
	}
	st := store.NewFileStore(a.cfg.DataFile, a.logger)

	inv := &invocation{
		cfg:          a.cfg,
		out:          printer,
		state:        state,
		auth:         auth.NewService(st, state, a.cfg.BcryptCost, a.logger),
		orgs:         organization.NewService(st, state, a.logger),
		projects:     project.NewService(st, state, a.logger),
		readPassword: a.readPassword,
	}

	root := inv.rootCommand()
	root.Output = a.stdout

	if err := a.execute(root, args); err != nil {
		return a.fail(printer, err)
	}

	if state.Dirty() {
		if err := state.Save(); err != nil {
			return a.fail(printer, err)
		}
		a.logger.Debug("context saved", "path", state.Path())
	}
	return 0
}

// execute runs the command tree, turning a panic into an internal error so
// the session is not saved and the process still exits 1.
func (a *App) execute(root *cli.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic recovered", "error", r)
			err = apperror.Internal("An unexpected error occurred")
		}
	}()
	return root.Execute(args)
}

// fail reports err as one "✗" line and returns its exit code.
func (a *App) fail(printer *cli.Printer, err error) int {
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		printer.Error("%s", err.Error())
	}

	attrs := []any{"kind", apperror.KindOf(err), "error", err}
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		attrs = append(attrs, "command", usageErr.Command)
	}
	a.logger.Debug("command failed", attrs...)
	return apperror.ExitCode(err)
}
