package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/todocal/internal/update"
)

// NewRootCmd builds the command tree. Configuration is read from the
// environment first; flags given on the command line win.
func NewRootCmd(version string) *cobra.Command {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	root := &cobra.Command{
		Use:   "todocal",
		Short: "Calendar to-do list backed by a remote document store",
		Long: `todocal keeps a personal to-do list where every item has a due date.

Sign in anonymously, pick a date on the calendar and add, complete or
delete the to-dos due that day. Running todocal without a subcommand
opens the terminal UI.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd, &cfg)
		},
	}
	root.SetVersionTemplate(`{{printf "todocal version %s\n" .Version}}`)

	flags := root.PersistentFlags()
	flags.StringVar(&cfg.Backend, "backend", cfg.Backend, "document store backend: firestore or sqlite")
	flags.StringVar(&cfg.ProjectID, "project-id", cfg.ProjectID, "firebase project id")
	flags.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "firebase web api key")
	flags.StringVar(&cfg.Collection, "collection", cfg.Collection, "document collection name")
	flags.IntVar(&cfg.FetchLimit, "fetch-limit", cfg.FetchLimit, "maximum records fetched per refresh")
	flags.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite database path for the sqlite backend")
	flags.StringVar(&cfg.CredentialsPath, "credentials-path", cfg.CredentialsPath, "file holding the signed-in session")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "JSON log file (empty disables logging)")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	flags.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "timeout for each remote call")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address for the /metrics listener (empty disables it)")

	root.AddCommand(newUICmd(&cfg))
	root.AddCommand(newLoginCmd(&cfg))
	root.AddCommand(newLogoutCmd(&cfg))
	root.AddCommand(newWhoamiCmd(&cfg))
	root.AddCommand(newListCmd(&cfg))
	root.AddCommand(newAddCmd(&cfg))
	root.AddCommand(newToggleCmd(&cfg))
	root.AddCommand(newDeleteCmd(&cfg))
	return root
}

// Execute is the main entry point for the CLI application
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}
