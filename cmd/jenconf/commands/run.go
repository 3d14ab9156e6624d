package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jenconf/jenconf/pkg/reconcile"
	"github.com/jenconf/jenconf/pkg/state"
	"github.com/jenconf/jenconf/pkg/telemetry"
)

// runReconciliation loads the state file and reconciles every resource,
// writing outcomes to w. It returns an error when any resource failed so
// the process exits nonzero for the calling agent.
func runReconciliation(ctx context.Context, w io.Writer, homeDir, stateFile string, dryRun bool) error {
	outcomes, err := reconcileStateFile(ctx, homeDir, stateFile, dryRun)
	if err != nil {
		return err
	}
	if err := renderOutcomes(w, outcomes); err != nil {
		return err
	}

	failed := 0
	for _, out := range outcomes {
		if out.Result == reconcile.StatusFailed {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d resources failed", failed, len(outcomes))
	}
	return nil
}

func reconcileStateFile(ctx context.Context, homeDir, stateFile string, dryRun bool) ([]reconcile.Outcome, error) {
	f, err := state.Load(stateFile)
	if err != nil {
		return nil, err
	}
	r, err := reconcile.New(reconcile.Config{
		HomeDir: homeDir,
		DryRun:  dryRun,
	}, telemetry.FromContext(ctx))
	if err != nil {
		return nil, err
	}
	return r.ReconcileAll(ctx, f.Resources), nil
}

// renderOutcomes prints outcomes either as indented JSON (--json) or in
// a compact human-readable form with the diff indented beneath each
// resource.
func renderOutcomes(w io.Writer, outcomes []reconcile.Outcome) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outcomes)
	}
	for _, out := range outcomes {
		fmt.Fprintf(w, "%s: %s - %s\n", out.Name, out.Result, out.Comment)
		for _, line := range out.Changes {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	return nil
}
