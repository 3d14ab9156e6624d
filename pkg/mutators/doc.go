// Package mutators implements the domain mutations jenconf can apply to
// Jenkins XML configuration files. Each mutator declares the root tag it
// expects, a default config file, and an idempotent in-memory mutation;
// the reconciler drives loading, validation, diffing, and persistence
// around it. Mutators are registered by resource type and built from the
// declarative state file.
package mutators
