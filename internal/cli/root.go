// Package cli provides the command-line interface for sqlbuild.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbuild/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var (
	cfgFile string
	cfg     *config.ProjectConfig
	logger  *slog.Logger
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlbuild",
		Short: "sqlbuild - dependency-ordered SQL script runner",
		Long: `sqlbuild applies SQL scripts from a directory in dependency order.

Scripts declare prerequisites with a "-- Require: name, ..." header line.
Requiring a script applies its transitive requirements first, depth-first
and left to right, each script at most once per run.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlbuild.yaml)")
	rootCmd.PersistentFlags().String("scripts-dir", "", "Path to scripts directory")
	rootCmd.PersistentFlags().String("target-type", "", "Database target type (duckdb|postgres|sqlite)")
	rootCmd.PersistentFlags().String("database", "", "Database path or name (\":memory:\" for in-memory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("target-type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"duckdb", "postgres", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newDagCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
