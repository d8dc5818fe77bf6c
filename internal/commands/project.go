package commands

import (
	"github.com/spf13/pflag"

	"github.com/daap14/agentflow/internal/cli"
	"github.com/daap14/agentflow/internal/project"
)

const maxGithubColumn = 40

func (inv *invocation) projectCommand() *cli.Command {
	return &cli.Command{
		Name:    "project",
		Summary: "Project commands",
		Subcommands: []*cli.Command{
			inv.projectListCommand(),
			inv.projectCreateCommand(),
			inv.projectViewCommand(),
			inv.projectUseCommand(),
		},
	}
}

// orgFlag selects the organization for project commands.
type orgFlag struct {
	Org string `flag:"org,o" desc:"organization slug (defaults to the current organization)"`
}

func (inv *invocation) projectListCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		orgFlag
	}

	return &cli.Command{
		Name:    "list",
		Summary: "List projects in the current or given organization",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
		Run: func(args []string) error {
			listing, err := inv.projects.List(params.Org)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(inv.out.Out(), listing.Projects); done {
				return err
			}

			out := inv.out
			if len(listing.Projects) == 0 {
				out.Info("No projects found in %s", listing.Organization.Slug)
				out.Blank()
				out.Info("Create one:")
				out.Info("  agentflow project create --name 'My Project' --slug 'my-project'")
				return nil
			}

			rows := make([][]string, 0, len(listing.Projects))
			for _, p := range listing.Projects {
				rows = append(rows, []string{
					p.Name,
					p.Slug,
					cli.CheckMark(p.IsActive),
					cli.TruncateLeft(deref(p.GithubURL, "-"), maxGithubColumn),
				})
			}
			out.Table([]string{"NAME", "SLUG", "ACTIVE", "GITHUB"}, rows)
			return nil
		},
	}
}

func (inv *invocation) projectCreateCommand() *cli.Command {
	var params struct {
		orgFlag
		Name        string `flag:"name,n" desc:"project name"`
		Slug        string `flag:"slug,s" desc:"URL-friendly slug"`
		Description string `flag:"description,d" desc:"project description"`
		GithubURL   string `flag:"github-url,g" desc:"GitHub repository URL"`
	}

	return &cli.Command{
		Name:    "create",
		Summary: "Create a new project",
		Usage:   "agentflow project create --name <name> --slug <slug> [--org <slug>] [--description <text>] [--github-url <url>]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
		Examples: []cli.Example{
			{Command: "agentflow project create --org acme --name 'Web App' --slug web --github-url https://github.com/acme/web"},
		},
		Run: func(args []string) error {
			if err := requireFlag("name", params.Name); err != nil {
				return err
			}
			if err := requireFlag("slug", params.Slug); err != nil {
				return err
			}

			d, err := inv.projects.Create(project.CreateInput{
				Org:         params.Org,
				Name:        params.Name,
				Slug:        params.Slug,
				Description: params.Description,
				GithubURL:   params.GithubURL,
			})
			if err != nil {
				return err
			}

			out := inv.out
			out.Success("Project created in %s", d.Organization.Slug)
			out.Blank()
			out.Info("  Name:       %s", d.Name)
			out.Info("  Slug:       %s", d.Slug)
			out.Info("  GitHub:     %s", deref(d.GithubURL, "(none)"))
			out.Info("  Active:     %s", yesNo(d.IsActive))
			out.Blank()
			out.Info("Project is now active %s", inv.state.Label())
			return nil
		},
	}
}

func (inv *invocation) projectViewCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		orgFlag
	}

	return &cli.Command{
		Name:    "view",
		Summary: "View project details",
		Usage:   "agentflow project view <slug> [--org <slug>] [--json]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("view", &params) },
		Run: func(args []string) error {
			slug, err := requireArg("SLUG", args)
			if err != nil {
				return err
			}

			d, err := inv.projects.View(slug, params.Org)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(inv.out.Out(), d); done {
				return err
			}

			out := inv.out
			out.Blank()
			out.Info("Project: %s (%s)", d.Name, d.Slug)
			out.Blank()
			out.Info("Organization:  %s (%s)", d.Organization.Slug, d.Organization.Name)
			out.Info("Description:   %s", deref(d.Description, "(none)"))
			out.Info("GitHub URL:    %s", deref(d.GithubURL, "(none)"))
			out.Info("Active:        %s", yesNo(d.IsActive))
			out.Info("Created:       %s", d.CreatedAt.UTC().Format(detailTimeLayout))
			return nil
		},
	}
}

func (inv *invocation) projectUseCommand() *cli.Command {
	var params struct {
		orgFlag
	}

	return &cli.Command{
		Name:    "use",
		Summary: "Set the active project",
		Usage:   "agentflow project use <slug> [--org <slug>]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("use", &params) },
		Run: func(args []string) error {
			slug, err := requireArg("SLUG", args)
			if err != nil {
				return err
			}

			d, err := inv.projects.Use(slug, params.Org)
			if err != nil {
				return err
			}

			out := inv.out
			out.Success("Now using project: %s (%s)", d.Slug, d.Name)
			out.Blank()
			out.Info("Working in: %s", inv.state.Label())
			return nil
		},
	}
}
