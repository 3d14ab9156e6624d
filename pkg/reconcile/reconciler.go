package reconcile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jenconf/jenconf/pkg/diff"
	"github.com/jenconf/jenconf/pkg/mutators"
	"github.com/jenconf/jenconf/pkg/state"
	"github.com/jenconf/jenconf/pkg/telemetry"
	"github.com/jenconf/jenconf/pkg/xmldoc"
)

// Config carries the per-run settings the external agent supplies. The
// home directory and mode travel here explicitly; nothing is read from
// ambient state.
type Config struct {
	// HomeDir is the Jenkins home directory holding the config files.
	HomeDir string

	// DryRun previews changes without persisting them.
	DryRun bool
}

// Reconciler runs reconciliations against one home directory. It holds
// no document state between invocations; each call parses the target
// file fresh and discards the tree when done.
type Reconciler struct {
	config Config
	logger *telemetry.Logger
}

// New creates a Reconciler. The home directory is required; its contents
// are only checked per config file at reconcile time.
func New(cfg Config, logger *telemetry.Logger) (*Reconciler, error) {
	if cfg.HomeDir == "" {
		return nil, fmt.Errorf("home directory is required")
	}
	if logger == nil {
		logger = telemetry.Disabled()
	}
	return &Reconciler{
		config: cfg,
		logger: logger.NewComponentLogger("reconciler"),
	}, nil
}

// Reconcile runs one mutator against one logical config file and returns
// the standardized outcome. An empty conffile selects the mutator's
// default. Failures before mutation leave the file byte-identical.
func (r *Reconciler) Reconcile(ctx context.Context, m mutators.Mutator, conffile string) Outcome {
	if conffile == "" {
		conffile = m.DefaultConffile()
	}
	out := Outcome{
		Name:     m.Name(),
		RunID:    uuid.NewString(),
		Conffile: conffile,
		Result:   StatusFailed,
	}
	log := r.logger.WithRunID(out.RunID).WithResource(m.Name()).WithConffile(conffile)

	if err := ctx.Err(); err != nil {
		out.failed(NewIOError("invocation canceled", err).WithResource(m.Name()).WithConffile(conffile))
		return out
	}

	// Resolve
	path, err := xmldoc.ResolveConfigFile(r.config.HomeDir, conffile)
	if err != nil {
		rerr := NewNotFoundError(
			fmt.Sprintf("%s not found in Jenkins home directory %s", conffile, r.config.HomeDir), err).
			WithResource(m.Name()).WithConffile(conffile)
		log.WithError(rerr).Error("config file missing")
		out.failed(rerr)
		return out
	}

	// Load
	doc, err := xmldoc.Load(path)
	if err != nil {
		rerr := NewParseError(
			fmt.Sprintf("failed to parse configuration file %s", conffile), err).
			WithResource(m.Name()).WithConffile(conffile)
		log.WithError(rerr).Error("config file unparsable")
		out.failed(rerr)
		return out
	}

	// Validate root tag
	if root := doc.Root(); root.Tag != m.RootTag() {
		rerr := NewSchemaError(
			fmt.Sprintf("root element is not the <%s> tag", m.RootTag()), nil).
			WithResource(m.Name()).WithConffile(conffile)
		log.WithError(rerr).Error("root tag mismatch")
		out.failed(rerr)
		return out
	}

	// Mutate, diffing canonical serializations around it
	before, err := xmldoc.Serialize(doc)
	if err != nil {
		out.failed(NewIOError("failed to serialize document", err).
			WithResource(m.Name()).WithConffile(conffile))
		return out
	}
	if err := m.Mutate(doc.Document); err != nil {
		out.failed(NewIOError("mutation failed", err).
			WithResource(m.Name()).WithConffile(conffile))
		return out
	}
	after, err := xmldoc.Serialize(doc)
	if err != nil {
		out.failed(NewIOError("failed to serialize document", err).
			WithResource(m.Name()).WithConffile(conffile))
		return out
	}
	changes, err := diff.Unified(before, after, conffile, conffile)
	if err != nil {
		out.failed(NewIOError("failed to compute diff", err).
			WithResource(m.Name()).WithConffile(conffile))
		return out
	}

	comment := m.Describe(conffile)
	out.Changes = changes

	if r.config.DryRun {
		out.Comment = "would " + comment
		out.Result = StatusPreviewed
		log.WithField("changed", len(changes) > 0).Info("previewed change")
		return out
	}

	// Persist
	if err := xmldoc.Write(path, doc); err != nil {
		rerr := NewIOError(
			fmt.Sprintf("failed to write configuration file %s", conffile), err).
			WithResource(m.Name()).WithConffile(conffile)
		log.WithError(rerr).Error("write failed")
		out.failed(rerr)
		return out
	}
	out.Comment = comment
	out.Result = StatusApplied
	log.WithField("changed", len(changes) > 0).Info("applied change")
	return out
}

// ReconcileAll reconciles every resource of a state file in order,
// returning one outcome per resource. A resource whose mutator cannot be
// built fails on its own; the remaining resources still run. Context
// cancellation stops the run between resources.
func (r *Reconciler) ReconcileAll(ctx context.Context, resources []state.Resource) []Outcome {
	outcomes := make([]Outcome, 0, len(resources))
	for _, res := range resources {
		if err := ctx.Err(); err != nil {
			break
		}
		m, err := res.Mutator()
		if err != nil {
			rerr := NewInvalidError(err.Error(), err).WithResource(res.Name).WithConffile(res.Conffile)
			r.logger.WithResource(res.Name).WithError(rerr).Error("invalid resource")
			out := Outcome{
				Name:     res.Name,
				RunID:    uuid.NewString(),
				Conffile: res.Conffile,
			}
			out.failed(rerr)
			outcomes = append(outcomes, out)
			continue
		}
		outcomes = append(outcomes, r.Reconcile(ctx, m, res.Conffile))
	}
	return outcomes
}
