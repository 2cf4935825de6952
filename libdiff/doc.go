// Package libdiff computes textual differences for diagnostics.
//
// [Chars] diffs two strings character by character and is used to explain
// a string mismatch between two trees. [Lines] produces a unified diff of
// two documents and is used to show how a re-serialized document differs
// from its original. Both can be rendered with [Colors] for terminals.
package libdiff
