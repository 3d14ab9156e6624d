// Package diff renders unified line diffs between the canonical
// serializations of a config document before and after mutation.
package diff
