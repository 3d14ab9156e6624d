// Package xmldoc provides the on-disk XML document layer for jenconf.
// It resolves logical config file names under a Jenkins home directory,
// parses files into element trees with insignificant whitespace removed,
// renders a canonical pretty-printed form used both for diffing and for
// persistence, and offers the child-element upsert primitives the
// mutators are built on.
package xmldoc
