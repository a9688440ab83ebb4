// Command karat is a terminal client for the karat jewelry-business
// CRM. Run without arguments it opens the interactive interface;
// subcommands cover scripted use (login, export, import).
package main

import (
	"fmt"
	"os"

	"karat/cmd/karat/tui"
	"karat/internal/api"
	"karat/internal/config"
	"karat/internal/logging"
	"karat/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	flagAPIURL string
	flagDebug  bool
)

// app bundles everything a command needs after boot.
type app struct {
	cfg      *config.Config
	sessions *session.Store
	client   *api.Client
}

// boot loads config, initializes logging, and wires the api client to
// the persisted session.
func boot() (*app, error) {
	home := config.Home()

	cfg, err := config.Load(config.Path(home))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagAPIURL != "" {
		cfg.API.BaseURL = flagAPIURL
	}
	if flagDebug {
		cfg.Logging.Debug = true
	}

	if err := logging.Initialize(home, cfg.Logging.Debug, cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}

	sessions, err := session.NewStore(home)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	apiCfg := api.DefaultConfig(cfg.API.BaseURL)
	apiCfg.Timeout = cfg.APITimeout()
	apiCfg.Session = sessions

	return &app{
		cfg:      cfg,
		sessions: sessions,
		client:   api.New(apiCfg),
	}, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "karat",
		Short: "Terminal client for the karat jewelry CRM",
		Long: `karat connects to a karat CRM backend and gives you the full
dashboard in your terminal: clients, products, sales pipeline,
appointments, announcements, and team management.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer logging.CloseAll()
			logging.Boot("starting interactive mode against %s", a.cfg.API.BaseURL)

			model := tui.New(a.cfg, a.client, a.sessions)
			program := tea.NewProgram(model, tea.WithAltScreen())
			_, err = program.Run()
			return err
		},
	}

	root.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "backend base URL (overrides config)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newExportCmd(),
		newImportCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
