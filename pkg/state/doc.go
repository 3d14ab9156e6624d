// Package state loads the declarative YAML state file that names the
// resources one agent run reconciles. Loading validates structure and
// rejects unknown resource types before any reconciliation starts.
package state
