// Package roundtrip checks that node trees survive serialization.
//
// A [Checker] writes a tree with its converter, reads the document back and
// compares both trees. When they differ the returned [*Failure] carries the
// documents and a unified diff of both trees rendered by [Dump].
package roundtrip
