// Package reconcile implements the smart-merge engine: a differential
// comparison between a snapshot record set and the live table it was taken
// from.
//
// The engine never mutates anything by itself. A reconciliation produces a
// Plan that partitions every snapshot record into exactly one of three
// buckets:
//
//   - Inserts: no live record shares the snapshot record's identifier
//   - Updates: a live record matches, but at least one field differs
//   - Unchanged: a live record matches and every field is equal
//
// The Plan is the single source of truth for both the preview shown to the
// operator and the apply step executed after confirmation. Because both flow
// from the same Plan (and the same normalization in core/record), what the
// preview shows is exactly what apply does.
//
// # Identifier inference
//
// Snapshot and live rows are joined on one identifier column, picked from the
// live schema by an ordered list of predicate rules (exact "id", exact
// "uuid", suffix "_id", and so on; see rules.go). The rules are data, the
// evaluation loop is fixed, so the priority order is explicit and testable.
// When no rule matches either schema the engine refuses to merge and returns
// ErrNoIdentifier: guessing a join key would risk silent data corruption.
//
// # Known degradations
//
// Duplicate identifier values in the live table are not fatal: the lookup
// keeps the last record seen and a duplicate_identifier warning is attached
// to the plan. Disambiguating duplicates needs domain knowledge the engine
// does not have, so it reports instead of deciding.
//
// # Usage
//
//	plan, err := reconcile.Reconcile(backupSet, liveSet, reconcile.Options{})
//	if err != nil {
//	    return err // e.g. ErrNoIdentifier
//	}
//	fmt.Println(plan.Preview(10))
//
//	// after explicit confirmation:
//	result, err := reconcile.Apply(ctx, plan, store, reconcile.ApplyOptions{Confirmed: true})
package reconcile
