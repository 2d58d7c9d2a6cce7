// Package record defines the flat record model shared by the snapshot and
// restore pipelines.
//
// A Record is a flat mapping from column name to scalar value. Records are
// produced by two sources that do not agree on types: the live database
// (integers, floats, []byte, NULL) and CSV snapshots (everything is a string).
// The package therefore centralizes value normalization, so that both sides
// are compared through exactly one canonical form.
//
// # Normalization
//
// Normalize converts any scalar to its canonical string form: nil becomes the
// empty string, floats drop trailing zeros, times render as RFC 3339, and the
// result is whitespace-trimmed. The function is idempotent, and every
// comparison and key lookup in the reconcile engine goes through it. This is
// what guarantees that the restore preview predicts the apply outcome: there
// is no second, slightly different comparison path.
//
// # Equality
//
// Equal adds numeric equivalence on top of normalization: "5", 5 and 5.0 are
// the same value, as are NULL, "" and "   ". This absorbs the type drift
// introduced by round-tripping rows through a CSV file.
package record
