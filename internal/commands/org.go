package commands

import (
	"strconv"

	"github.com/spf13/pflag"

	"github.com/daap14/agentflow/internal/cli"
	"github.com/daap14/agentflow/internal/organization"
)

const (
	detailTimeLayout     = "2006-01-02 15:04:05 UTC"
	maxDescriptionColumn = 50
)

func (inv *invocation) orgCommand() *cli.Command {
	return &cli.Command{
		Name:    "org",
		Summary: "Organization commands",
		Subcommands: []*cli.Command{
			inv.orgListCommand(),
			inv.orgCreateCommand(),
			inv.orgViewCommand(),
			inv.orgUseCommand(),
		},
	}
}

func (inv *invocation) orgListCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		All bool `flag:"all,a" desc:"show every organization with its owner"`
	}

	return &cli.Command{
		Name:    "list",
		Summary: "List your organizations",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("list", &params) },
		Run: func(args []string) error {
			summaries, err := inv.orgs.List(params.All)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(inv.out.Out(), summaries); done {
				return err
			}

			out := inv.out
			if len(summaries) == 0 {
				out.Info("No organizations found")
				out.Blank()
				out.Info("Create one:")
				out.Info("  agentflow org create --name 'My Org' --slug 'my-org'")
				return nil
			}

			columns := []string{"NAME", "SLUG", "DESCRIPTION", "PROJECTS"}
			if params.All {
				columns = append(columns, "OWNER")
			}
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				row := []string{
					s.Name,
					s.Slug,
					cli.Truncate(deref(s.Description, "-"), maxDescriptionColumn),
					strconv.Itoa(s.ProjectCount),
				}
				if params.All {
					row = append(row, orNone(s.OwnerEmail))
				}
				rows = append(rows, row)
			}
			out.Table(columns, rows)
			return nil
		},
	}
}

func (inv *invocation) orgCreateCommand() *cli.Command {
	var params struct {
		Name        string `flag:"name,n" desc:"organization name"`
		Slug        string `flag:"slug,s" desc:"URL-friendly slug"`
		Description string `flag:"description,d" desc:"organization description"`
	}

	return &cli.Command{
		Name:    "create",
		Summary: "Create a new organization",
		Usage:   "agentflow org create --name <name> --slug <slug> [--description <text>]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("create", &params) },
		Examples: []cli.Example{
			{Command: "agentflow org create --name 'Acme Corp' --slug acme"},
		},
		Run: func(args []string) error {
			if err := requireFlag("name", params.Name); err != nil {
				return err
			}
			if err := requireFlag("slug", params.Slug); err != nil {
				return err
			}

			org, err := inv.orgs.Create(organization.CreateInput{
				Name:        params.Name,
				Slug:        params.Slug,
				Description: params.Description,
			})
			if err != nil {
				return err
			}

			out := inv.out
			out.Success("Organization created")
			out.Blank()
			out.Info("  Name:     %s", org.Name)
			out.Info("  Slug:     %s", org.Slug)
			out.Info("  Projects: 0")
			out.Blank()
			out.Info("Set as active:")
			out.Info("  agentflow org use %s", org.Slug)
			return nil
		},
	}
}

func (inv *invocation) orgViewCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
	}

	return &cli.Command{
		Name:    "view",
		Summary: "View organization details",
		Usage:   "agentflow org view <slug> [--json]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("view", &params) },
		Run: func(args []string) error {
			slug, err := requireArg("SLUG", args)
			if err != nil {
				return err
			}

			detail, err := inv.orgs.View(slug)
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(inv.out.Out(), detail); done {
				return err
			}

			out := inv.out
			out.Blank()
			out.Info("Organization: %s (%s)", detail.Name, detail.Slug)
			out.Blank()
			out.Info("Description:    %s", deref(detail.Description, "(none)"))
			out.Info("Created:        %s", detail.CreatedAt.UTC().Format(detailTimeLayout))
			out.Blank()

			if len(detail.Projects) > 0 {
				out.Info("Projects (%d):", len(detail.Projects))
				out.Blank()
				rows := make([][]string, 0, len(detail.Projects))
				for _, p := range detail.Projects {
					rows = append(rows, []string{p.Name, p.Slug, cli.CheckMark(p.IsActive)})
				}
				out.Table([]string{"NAME", "SLUG", "ACTIVE"}, rows)
			} else {
				out.Info("Projects: 0")
			}
			out.Blank()

			out.Info("Manage projects:")
			out.Info("  agentflow project create --org %s --name 'New Project' --slug new-project", detail.Slug)
			return nil
		},
	}
}

func (inv *invocation) orgUseCommand() *cli.Command {
	return &cli.Command{
		Name:    "use",
		Summary: "Set the active organization",
		Usage:   "agentflow org use <slug>",
		Run: func(args []string) error {
			slug, err := requireArg("SLUG", args)
			if err != nil {
				return err
			}

			org, err := inv.orgs.Use(slug)
			if err != nil {
				return err
			}

			out := inv.out
			out.Success("Now using organization: %s (%s)", org.Slug, org.Name)
			out.Blank()
			out.Info("Next steps:")
			out.Info("  agentflow project list")
			out.Info("  agentflow project create --name 'My Project' --slug my-project")
			return nil
		},
	}
}
