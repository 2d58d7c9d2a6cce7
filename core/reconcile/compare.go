package reconcile

import "inventory-vault/core/record"

// CompareRecords computes the field-level diff between a snapshot record and
// its live counterpart. Every field in the union of both records is compared
// (sorted order, so diffs iterate deterministically); a field missing on one
// side compares as NULL. Equality is record.Equal, i.e. normalization plus
// numeric equivalence.
//
// The returned diff maps field name to {Old: live value, New: snapshot
// value}. An empty diff means the records are equal.
func CompareRecords(backup, live record.Record) Diff {
	diff := Diff{}
	for _, field := range record.UnionFields(backup, live) {
		newVal := backup[field]
		oldVal := live[field]
		if !record.Equal(newVal, oldVal) {
			diff[field] = FieldChange{Old: oldVal, New: newVal}
		}
	}
	return diff
}

// oneSidedColumns returns the columns present in a but not in b, preserving
// a's order. Used to report schema mismatches once per run.
func oneSidedColumns(a, b []string) []string {
	other := make(map[string]struct{}, len(b))
	for _, c := range b {
		other[c] = struct{}{}
	}
	var out []string
	for _, c := range a {
		if _, ok := other[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}
