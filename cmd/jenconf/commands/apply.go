package commands

import (
	"github.com/spf13/cobra"

	"github.com/jenconf/jenconf/pkg/telemetry"
)

func newApplyCommand() *cobra.Command {
	var (
		homeDir   string
		stateFile string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Reconcile config files against the declared state",
		Long: `Reconcile every resource in the state file against the Jenkins home
directory.

For each resource this command:
  - Resolves the logical config file under the home directory
  - Parses it and validates the expected root tag
  - Runs the resource's mutation against the in-memory tree
  - Diffs the canonical before/after serializations
  - Writes the file back (or previews with --dry-run)`,
		Example: `  # Apply the declared state
  jenconf apply --home /var/lib/jenkins --state state.yaml

  # Preview without touching any file
  jenconf apply --home /var/lib/jenkins --state state.yaml --dry-run

  # Machine-readable outcomes for the calling agent
  jenconf apply --home /var/lib/jenkins --state state.yaml --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := telemetry.FromContext(cmd.Context()).NewComponentLogger("apply")
			log.WithField("home", homeDir).WithField("state", stateFile).
				WithField("dry_run", dryRun).Info("reconciling")
			return runReconciliation(cmd.Context(), cmd.OutOrStdout(), homeDir, stateFile, dryRun)
		},
	}

	cmd.Flags().StringVar(&homeDir, "home", "", "Jenkins home directory holding the config files")
	cmd.Flags().StringVarP(&stateFile, "state", "s", "state.yaml", "declarative state file")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and report changes without writing")
	cmd.MarkFlagRequired("home")

	return cmd
}
