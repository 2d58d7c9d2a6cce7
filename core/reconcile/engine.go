package reconcile

import (
	"fmt"
	"strings"

	"inventory-vault/core/record"

	"github.com/google/uuid"
)

// Reconcile compares a snapshot set against the live set and returns the
// three-way plan. It is a pure function of its inputs: no I/O, no state kept
// between calls.
//
// The identifier is taken from opts.Identifier when set; otherwise it is
// inferred from the live schema first and the snapshot schema as a fallback.
// If both fail, ErrNoIdentifier is returned and no partitioning happens.
func Reconcile(backup, live *record.Set, opts Options) (*Plan, error) {
	if backup == nil {
		backup = record.NewSet()
	}
	if live == nil {
		live = record.NewSet()
	}

	identifier, err := resolveIdentifier(backup, live, opts)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Collection: opts.Collection,
		Identifier: identifier,
		Inserts:    []record.Record{},
		Updates:    []Update{},
		Unchanged:  []record.Record{},
		Summary: Summary{
			BackupRecords: backup.Len(),
			LiveRecords:   live.Len(),
		},
	}

	// Columns present on only one side are compared as NULL on the missing
	// side; surface that once instead of failing.
	if only := oneSidedColumns(backup.Columns, live.Columns); len(only) > 0 {
		plan.warn(WarnSchemaMismatch, "", fmt.Sprintf("columns only in snapshot: %s", strings.Join(only, ", ")))
	}
	if only := oneSidedColumns(live.Columns, backup.Columns); len(only) > 0 {
		plan.warn(WarnSchemaMismatch, "", fmt.Sprintf("columns only in live set: %s", strings.Join(only, ", ")))
	}

	lookup := buildLookup(identifier, live, plan)

	for _, backupRec := range backup.Records {
		key := record.Normalize(backupRec[identifier])

		if key == "" {
			plan.Summary.MissingIdentifiers++
			if opts.AssignMissingIDs {
				// Backfill at plan time so preview and apply see the same
				// record.
				backupRec = backupRec.Clone()
				backupRec[identifier] = uuid.NewString()
				plan.warn(WarnMissingIdentifier, "", "snapshot record without identifier assigned a new uuid")
			} else {
				plan.warn(WarnMissingIdentifier, "", "snapshot record without identifier classified as insert")
			}
			plan.Inserts = append(plan.Inserts, backupRec)
			continue
		}

		liveRec, found := lookup[key]
		if !found {
			plan.Inserts = append(plan.Inserts, backupRec)
			continue
		}

		diff := CompareRecords(backupRec, liveRec)
		if len(diff) == 0 {
			plan.Unchanged = append(plan.Unchanged, backupRec)
			continue
		}
		plan.Updates = append(plan.Updates, Update{Backup: backupRec, Live: liveRec, Diff: diff})
	}

	plan.Summary.Inserts = len(plan.Inserts)
	plan.Summary.Updates = len(plan.Updates)
	plan.Summary.Unchanged = len(plan.Unchanged)

	return plan, nil
}

// resolveIdentifier picks the join column: explicit override, then live
// schema, then snapshot schema.
func resolveIdentifier(backup, live *record.Set, opts Options) (string, error) {
	if opts.Identifier != "" {
		return opts.Identifier, nil
	}
	if id, err := InferIdentifier(live.Columns); err == nil {
		return id, nil
	}
	if id, err := InferIdentifier(backup.Columns); err == nil {
		return id, nil
	}
	return "", fmt.Errorf("collection %q: %w", opts.Collection, ErrNoIdentifier)
}

// buildLookup indexes the live set by normalized identifier value.
// Duplicate keys keep the last record seen (known degradation, reported per
// key); records with an empty identifier are excluded since they can never
// match.
func buildLookup(identifier string, live *record.Set, plan *Plan) map[string]record.Record {
	lookup := make(map[string]record.Record, live.Len())
	for _, rec := range live.Records {
		key := record.Normalize(rec[identifier])
		if key == "" {
			plan.Summary.MissingIdentifiers++
			plan.warn(WarnMissingIdentifier, "", "live record without identifier excluded from matching")
			continue
		}
		if _, exists := lookup[key]; exists {
			plan.Summary.DuplicateKeys++
			plan.warn(WarnDuplicateIdentifier, key, "multiple live records share this identifier; last one wins")
		}
		lookup[key] = rec
	}
	return lookup
}

func (p *Plan) warn(kind WarningKind, key, detail string) {
	p.Warnings = append(p.Warnings, Warning{Kind: kind, Key: key, Detail: detail})
}
