// Package cli implements the techjobs command tree for querying job data
// from the terminal.
package cli

import (
	"fmt"

	"github.com/JonMunkholm/techjobs/internal/config"
	"github.com/JonMunkholm/techjobs/internal/datasource"
	"github.com/JonMunkholm/techjobs/internal/jobs"
	"github.com/JonMunkholm/techjobs/internal/logging"
	"github.com/spf13/cobra"
)

// NewRootCommand returns the "techjobs" command with all subcommands wired in.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "techjobs",
		Short:         "Browse and search tech job listings",
		Long:          "List distinct values of a job column, list every job, or search jobs by one column or all of them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch f := outputFormat(cmd); f {
			case "table", "json":
				return nil
			default:
				return fmt.Errorf("unknown output format %q: want table or json", f)
			}
		},
	}

	cmd.PersistentFlags().String("data", "", "CSV file to read (default from JOBS_DATA_FILE)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table or json")
	cmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newListCmd(),
		newSearchCmd(),
	)

	return cmd
}

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	return f
}

// storeFromCmd builds a Store from the environment config and the
// persistent flags on cmd. A --data flag forces the csv source.
func storeFromCmd(cmd *cobra.Command) (*jobs.Store, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.Data.Source = config.SourceCSV
		cfg.Data.File = data
	}

	level, _ := cmd.Flags().GetString("log-level")
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.Logging.Format)

	src, closeFn, err := datasource.Open(cmd.Context(), cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open data source: %w", err)
	}
	return jobs.NewStore(src, jobs.WithLogger(logger), jobs.WithLoadTimeout(cfg.Data.LoadTimeout)), closeFn, nil
}
