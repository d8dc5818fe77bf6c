package commands

import (
	"github.com/spf13/pflag"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/auth"
	"github.com/daap14/agentflow/internal/cli"
	"github.com/daap14/agentflow/internal/store"
)

const keyTimeLayout = "2006-01-02 15:04"

func (inv *invocation) authCommand() *cli.Command {
	return &cli.Command{
		Name:    "auth",
		Summary: "Authentication commands",
		Subcommands: []*cli.Command{
			inv.registerCommand(),
			inv.loginCommand(),
			inv.apiKeysCommand(),
			inv.statusCommand(),
		},
	}
}

func (inv *invocation) registerCommand() *cli.Command {
	var params struct {
		Email    string `flag:"email,e" desc:"user email address"`
		Password string `flag:"password,p" desc:"user password (prompted when omitted)"`
		Name     string `flag:"name,n" desc:"user display name"`
	}

	return &cli.Command{
		Name:    "register",
		Summary: "Register a new user account",
		Usage:   "agentflow auth register --email <email> --name <name> [--password <password>]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("register", &params) },
		Examples: []cli.Example{
			{Command: "agentflow auth register --email ada@example.com --name 'Ada Lovelace'"},
		},
		Run: func(args []string) error {
			if err := requireFlag("email", params.Email); err != nil {
				return err
			}
			if err := requireFlag("name", params.Name); err != nil {
				return err
			}
			password, err := inv.password(params.Password)
			if err != nil {
				return err
			}

			reg, err := inv.auth.Register(auth.RegisterInput{
				Email:    params.Email,
				Password: password,
				Name:     params.Name,
			})
			if err != nil {
				return err
			}

			out := inv.out
			out.Success("User registered successfully")
			out.Blank()
			out.Info("  Email:    %s", reg.User.Email)
			out.Info("  Name:     %s", reg.User.Name)
			out.Blank()
			out.Warning("Save your API key now. You won't see it again!")
			out.Blank()
			out.Info("  API Key:  %s", reg.APIKey.Key)
			return nil
		},
	}
}

func (inv *invocation) loginCommand() *cli.Command {
	var params struct {
		Email    string `flag:"email,e" desc:"user email address"`
		Password string `flag:"password,p" desc:"user password (prompted when omitted)"`
	}

	return &cli.Command{
		Name:    "login",
		Summary: "Login with existing credentials",
		Usage:   "agentflow auth login --email <email> [--password <password>]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("login", &params) },
		Run: func(args []string) error {
			if err := requireFlag("email", params.Email); err != nil {
				return err
			}
			password, err := inv.password(params.Password)
			if err != nil {
				return err
			}

			res, err := inv.auth.Login(params.Email, password)
			if err != nil {
				return err
			}

			out := inv.out
			out.Success("Logged in successfully as %s", res.User.Email)
			out.Blank()
			out.Info("  Current Organization:  %s", orNone(res.Organization))
			out.Info("  Current Project:       %s", orNone(res.Project))
			out.Blank()
			out.Info("Set your context:")
			out.Info("  agentflow org list")
			out.Info("  agentflow org use <slug>")
			return nil
		},
	}
}

// apiKeyView is the JSON shape of a listed key. The key string itself is
// only ever shown at creation.
type apiKeyView struct {
	Name       string           `json:"name"`
	IsActive   bool             `json:"is_active"`
	CreatedAt  store.Timestamp  `json:"created_at"`
	LastUsedAt *store.Timestamp `json:"last_used_at"`
}

func (inv *invocation) apiKeysCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		Name string `flag:"name,n" desc:"API key name (create)"`
	}

	return &cli.Command{
		Name:    "api-keys",
		Summary: "Manage API keys",
		Usage:   "agentflow auth api-keys <list|create> [--name <name>] [--json]",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("api-keys", &params) },
		Examples: []cli.Example{
			{Description: "List your keys", Command: "agentflow auth api-keys list"},
			{Description: "Issue a key for CI", Command: "agentflow auth api-keys create --name ci"},
		},
		Run: func(args []string) error {
			action, err := requireArg("ACTION", args)
			if err != nil {
				return err
			}

			switch action {
			case "list":
				return inv.listAPIKeys(&params.JSONOutput)
			case "create":
				return inv.createAPIKey(params.Name)
			default:
				return apperror.Validation("Unknown action: %s (use 'list' or 'create')", action)
			}
		},
	}
}

func (inv *invocation) listAPIKeys(jsonOut *cli.JSONOutput) error {
	keys, err := inv.auth.ListAPIKeys()
	if err != nil {
		return err
	}

	views := make([]apiKeyView, 0, len(keys))
	for _, k := range keys {
		views = append(views, apiKeyView{Name: k.Name, IsActive: k.IsActive, CreatedAt: k.CreatedAt, LastUsedAt: k.LastUsedAt})
	}
	if done, err := jsonOut.EmitJSON(inv.out.Out(), views); done {
		return err
	}

	if len(keys) == 0 {
		inv.out.Info("No API keys found")
		return nil
	}

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		lastUsed := "Never"
		if k.LastUsedAt != nil {
			lastUsed = k.LastUsedAt.UTC().Format(keyTimeLayout)
		}
		rows = append(rows, []string{k.Name, lastUsed, k.CreatedAt.UTC().Format(keyTimeLayout), cli.CheckMark(k.IsActive)})
	}
	inv.out.Table([]string{"NAME", "LAST USED", "CREATED", "ACTIVE"}, rows)
	return nil
}

func (inv *invocation) createAPIKey(name string) error {
	key, err := inv.auth.CreateAPIKey(name)
	if err != nil {
		return err
	}

	out := inv.out
	out.Success("API key created")
	out.Blank()
	out.Info("  Name:     %s", key.Name)
	out.Blank()
	out.Warning("Save your API key now. You won't see it again!")
	out.Blank()
	out.Info("  API Key:  %s", key.Key)
	return nil
}

func (inv *invocation) statusCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
	}

	return &cli.Command{
		Name:    "status",
		Summary: "Show current authentication status",
		Flags:   func() *pflag.FlagSet { return cli.FlagsFromParams("status", &params) },
		Run: func(args []string) error {
			status, err := inv.auth.Status()
			if err != nil {
				return err
			}

			result := struct {
				Version string `json:"version"`
				*auth.Status
			}{Version: inv.cfg.Version, Status: status}
			if done, err := params.EmitJSON(inv.out.Out(), result); done {
				return err
			}

			out := inv.out
			out.Blank()
			out.Info("AgentFlow CLI v%s", inv.cfg.Version)
			out.Blank()

			if status.Authenticated {
				out.Success("Authentication: ✓ Authenticated")
				out.Info("User:           %s", status.Email)
				if status.Name != "" {
					out.Info("Name:           %s", status.Name)
				}
			} else {
				out.Warning("Authentication: ✗ Not authenticated")
			}
			out.Blank()

			out.Info("Current Organization:  %s", orNone(status.Organization))
			out.Info("Current Project:       %s", orNone(status.Project))
			out.Blank()

			out.Info("Config File:    %s", status.ContextFile)
			out.Info("Data File:      %s", status.DataFile)
			return nil
		},
	}
}
