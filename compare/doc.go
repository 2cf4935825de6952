// Package compare checks two node trees for structural equivalence.
//
// Two trees are equivalent when, recursively,
//
//   - their types are identical
//   - their children match pairwise and in order
//   - their properties have the same names and equal values, where a null
//     property and a missing property are the same thing
//   - optionally, their attributes have the same names and values,
//     including null-valued ones
//   - optionally, their locations are equal
//
// Arrays are compared by length and then element by element, so nesting
// and order both matter.
//
// [Compare] stops at the first difference and reports it as a
// [*Mismatch] carrying the path of the difference, the expected and the
// actual value. Callers that only need a yes or no use [Equal].
package compare
