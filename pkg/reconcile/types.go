package reconcile

import "fmt"

// Status is the tri-state result of one reconciliation. It marshals to
// the JSON the calling agent expects: true (applied), false (failed), or
// null (previewed).
type Status string

const (
	// StatusApplied means the change was written to disk.
	StatusApplied Status = "applied"

	// StatusFailed means the invocation aborted; the file is untouched.
	StatusFailed Status = "failed"

	// StatusPreviewed means dry-run mode computed the change without
	// persisting it.
	StatusPreviewed Status = "previewed"
)

// MarshalJSON renders the agent-facing tri-state value.
func (s Status) MarshalJSON() ([]byte, error) {
	switch s {
	case StatusApplied:
		return []byte("true"), nil
	case StatusFailed:
		return []byte("false"), nil
	case StatusPreviewed:
		return []byte("null"), nil
	}
	return nil, fmt.Errorf("unknown status %q", string(s))
}

// UnmarshalJSON accepts the tri-state value back into a Status.
func (s *Status) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "true":
		*s = StatusApplied
	case "false":
		*s = StatusFailed
	case "null":
		*s = StatusPreviewed
	default:
		return fmt.Errorf("unknown status value %s", string(b))
	}
	return nil
}

// Outcome is the standardized record returned for one reconciliation.
type Outcome struct {
	// Name is the resource name from the state file.
	Name string `json:"name"`

	// RunID uniquely identifies this invocation in logs and output.
	RunID string `json:"run_id"`

	// Conffile is the logical config file that was reconciled.
	Conffile string `json:"conffile"`

	// Comment describes what happened in the original's phrasing, e.g.
	// "updated configuration file config.xml" or, in preview mode,
	// "would set admin email to ops@example.com".
	Comment string `json:"comment"`

	// Result is the tri-state outcome.
	Result Status `json:"result"`

	// Changes is the unified diff between the canonical before and
	// after serializations; empty on failure or when nothing changed.
	Changes []string `json:"changes"`
}

// failed fills in the failure fields from a classified error.
func (o *Outcome) failed(err *ReconcileError) {
	o.Result = StatusFailed
	o.Comment = err.Message
	o.Changes = nil
}
