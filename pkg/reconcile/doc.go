// Package reconcile drives one reconciliation of a Jenkins XML config
// file against a declared resource. The pipeline is an explicit sequence
// of typed stages: resolve the config file, load it, validate its root
// tag, run the mutator, diff the canonical before/after serializations,
// then either preview or persist. Every invocation returns exactly one
// Outcome; there are no retries and no state survives between calls.
package reconcile
