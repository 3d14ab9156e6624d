package commands

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/jenconf/jenconf/pkg/telemetry"
)

func newWatchCommand() *cobra.Command {
	var (
		homeDir   string
		stateFile string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run a preview whenever the state file changes",
		Long: `Watch the state file and re-run a preview on every change. Nothing is
ever applied from this command; it is a development aid for iterating on
a state file while the agent remains the only writer.`,
		Example: `  # Live-preview edits to the state file
  jenconf watch --home /var/lib/jenkins --state state.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := telemetry.FromContext(ctx).NewComponentLogger("watch")

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			// Watch the directory so editor rename-into-place saves are seen.
			absState, err := filepath.Abs(stateFile)
			if err != nil {
				return err
			}
			if err := watcher.Add(filepath.Dir(absState)); err != nil {
				return err
			}

			runPreview := func() {
				if err := runReconciliation(ctx, cmd.OutOrStdout(), homeDir, stateFile, true); err != nil {
					log.WithError(err).Warn("preview failed")
				}
			}
			log.WithField("state", stateFile).Info("watching state file")
			runPreview()

			for {
				select {
				case <-ctx.Done():
					return nil
				case event, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(event.Name) != absState {
						continue
					}
					if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
						continue
					}
					log.WithField("event", event.Op.String()).Debug("state file changed")
					runPreview()
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					log.WithError(err).Warn("watch error")
				}
			}
		},
	}

	cmd.Flags().StringVar(&homeDir, "home", "", "Jenkins home directory holding the config files")
	cmd.Flags().StringVarP(&stateFile, "state", "s", "state.yaml", "declarative state file")
	cmd.MarkFlagRequired("home")

	return cmd
}
