package commands

import (
	"github.com/spf13/cobra"

	"github.com/jenconf/jenconf/pkg/telemetry"
)

func newPreviewCommand() *cobra.Command {
	var (
		homeDir   string
		stateFile string
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the changes apply would make",
		Long: `Preview reconciliation without persisting anything. Equivalent to
'apply --dry-run': every resource is loaded, validated, and mutated in
memory, and the resulting diff is reported, but no config file is
written.`,
		Example: `  # Show what would change
  jenconf preview --home /var/lib/jenkins --state state.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := telemetry.FromContext(cmd.Context()).NewComponentLogger("preview")
			log.WithField("home", homeDir).WithField("state", stateFile).Info("previewing")
			return runReconciliation(cmd.Context(), cmd.OutOrStdout(), homeDir, stateFile, true)
		},
	}

	cmd.Flags().StringVar(&homeDir, "home", "", "Jenkins home directory holding the config files")
	cmd.Flags().StringVarP(&stateFile, "state", "s", "state.yaml", "declarative state file")
	cmd.MarkFlagRequired("home")

	return cmd
}
