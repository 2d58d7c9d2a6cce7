package archive

import (
	"inventory-vault/core/reconcile"
	"inventory-vault/core/record"
)

// DefaultCompareSampleLimit bounds the sample lists in a snapshot diff.
const DefaultCompareSampleLimit = 5

// ChangedSample is one bounded diff entry between two snapshots of the same
// collection.
type ChangedSample struct {
	Key  string         `json:"key"`
	Diff reconcile.Diff `json:"diff"`
}

// SnapshotDiff summarizes how one collection changed between two snapshots.
// "Added" and "Removed" are relative to the older snapshot: a record present
// only in the newer one was added.
type SnapshotDiff struct {
	Identifier     string          `json:"identifier"`
	OlderCount     int             `json:"older_count"`
	NewerCount     int             `json:"newer_count"`
	Added          int             `json:"added"`
	Removed        int             `json:"removed"`
	Changed        int             `json:"changed"`
	NewColumns     []string        `json:"new_columns,omitempty"`
	RemovedColumns []string        `json:"removed_columns,omitempty"`
	AddedSamples   []record.Record `json:"added_samples,omitempty"`
	RemovedSamples []record.Record `json:"removed_samples,omitempty"`
	ChangedSamples []ChangedSample `json:"changed_samples,omitempty"`
}

// CompareSnapshots diffs two snapshots of the same collection, joined on the
// inferred identifier (newer schema first, older as fallback). Sample lists
// are bounded by limit; a non-positive limit falls back to
// DefaultCompareSampleLimit.
func CompareSnapshots(older, newer *record.Set, limit int) (*SnapshotDiff, error) {
	if limit <= 0 {
		limit = DefaultCompareSampleLimit
	}
	if older == nil {
		older = record.NewSet()
	}
	if newer == nil {
		newer = record.NewSet()
	}

	identifier, err := reconcile.InferIdentifier(newer.Columns)
	if err != nil {
		if identifier, err = reconcile.InferIdentifier(older.Columns); err != nil {
			return nil, err
		}
	}

	diff := &SnapshotDiff{
		Identifier: identifier,
		OlderCount: older.Len(),
		NewerCount: newer.Len(),
	}

	// Column drift between the two snapshots.
	for _, c := range newer.Columns {
		if !older.HasColumn(c) {
			diff.NewColumns = append(diff.NewColumns, c)
		}
	}
	for _, c := range older.Columns {
		if !newer.HasColumn(c) {
			diff.RemovedColumns = append(diff.RemovedColumns, c)
		}
	}

	olderByKey := make(map[string]record.Record, older.Len())
	for _, rec := range older.Records {
		if key := record.Normalize(rec[identifier]); key != "" {
			olderByKey[key] = rec
		}
	}
	newerKeys := make(map[string]struct{}, newer.Len())

	for _, rec := range newer.Records {
		key := record.Normalize(rec[identifier])
		if key == "" {
			continue
		}
		newerKeys[key] = struct{}{}

		old, found := olderByKey[key]
		if !found {
			diff.Added++
			if len(diff.AddedSamples) < limit {
				diff.AddedSamples = append(diff.AddedSamples, rec)
			}
			continue
		}
		if changes := reconcile.CompareRecords(rec, old); len(changes) > 0 {
			diff.Changed++
			if len(diff.ChangedSamples) < limit {
				diff.ChangedSamples = append(diff.ChangedSamples, ChangedSample{Key: key, Diff: changes})
			}
		}
	}

	for _, rec := range older.Records {
		key := record.Normalize(rec[identifier])
		if key == "" {
			continue
		}
		if _, found := newerKeys[key]; !found {
			diff.Removed++
			if len(diff.RemovedSamples) < limit {
				diff.RemovedSamples = append(diff.RemovedSamples, rec)
			}
		}
	}

	return diff, nil
}
