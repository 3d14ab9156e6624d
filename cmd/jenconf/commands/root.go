package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jenconf/jenconf/pkg/telemetry"
)

var (
	// Global flags
	verbose    bool
	jsonOutput bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jenconf",
		Short: "jenconf - Jenkins XML configuration reconciler",
		Long: `jenconf reconciles a Jenkins server's on-disk XML configuration files
against a desired declarative state. It is invoked by an external
configuration-management agent once per managed node per run.

Each run loads the declared resources, locates or creates the XML
elements representing them, computes a unified before/after diff, and
either previews the change (dry-run) or writes it back to disk.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := telemetry.DefaultLoggingConfig()
			if verbose {
				cfg.Level = "debug"
			}
			logger, err := telemetry.NewLogger(cfg)
			if err != nil {
				return err
			}
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output outcomes in JSON format")

	// Add subcommands
	rootCmd.AddCommand(newApplyCommand())
	rootCmd.AddCommand(newPreviewCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}
