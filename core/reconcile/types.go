package reconcile

import "inventory-vault/core/record"

// FieldChange holds the before/after values of one differing field.
// Old is the live value, New is the snapshot value that would replace it.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// Diff maps field name to its change for every field whose normalized values
// differ between a snapshot record and its live counterpart. An empty diff
// means the records are equal.
type Diff map[string]FieldChange

// Update pairs a snapshot record with the live record it would overwrite,
// plus the field-level diff between them.
type Update struct {
	// Backup is the snapshot record (the desired state).
	Backup record.Record `json:"backup"`

	// Live is the current database record (the state being replaced).
	Live record.Record `json:"live"`

	// Diff lists exactly the fields that differ. Apply writes only these.
	Diff Diff `json:"diff"`
}

// WarningKind classifies non-fatal degradations detected during planning.
type WarningKind string

const (
	// WarnDuplicateIdentifier flags an identifier value shared by more than
	// one live record. The lookup keeps the last record seen; earlier ones
	// are silently superseded.
	WarnDuplicateIdentifier WarningKind = "duplicate_identifier"

	// WarnMissingIdentifier flags a record whose identifier value is empty.
	// Live records with no identifier can never match; snapshot records with
	// no identifier are classified as inserts.
	WarnMissingIdentifier WarningKind = "missing_identifier"

	// WarnSchemaMismatch flags columns present on only one side. The missing
	// side is compared as NULL rather than rejected.
	WarnSchemaMismatch WarningKind = "schema_mismatch"
)

// Warning is one non-fatal finding attached to a plan.
type Warning struct {
	// Kind classifies the warning.
	Kind WarningKind `json:"kind"`

	// Key is the identifier value involved, when applicable.
	Key string `json:"key,omitempty"`

	// Detail is a human-readable description.
	Detail string `json:"detail"`
}

// Summary provides aggregate counts for a plan.
type Summary struct {
	// BackupRecords is the number of records in the snapshot set.
	BackupRecords int `json:"backup_records"`

	// LiveRecords is the number of records in the live set.
	LiveRecords int `json:"live_records"`

	// Inserts counts snapshot records with no live match.
	Inserts int `json:"inserts"`

	// Updates counts snapshot records whose live match differs.
	Updates int `json:"updates"`

	// Unchanged counts snapshot records equal to their live match.
	Unchanged int `json:"unchanged"`

	// DuplicateKeys counts identifier values shared by multiple live records.
	DuplicateKeys int `json:"duplicate_keys"`

	// MissingIdentifiers counts records (either side) with an empty
	// identifier value.
	MissingIdentifiers int `json:"missing_identifiers"`
}

// Plan is the result of one reconciliation: three disjoint partitions of the
// snapshot set, warnings, and aggregate counts. Every snapshot record appears
// in exactly one partition. A plan holds no references back to the engine;
// it is plain data shared by the preview and the apply step.
type Plan struct {
	// Collection names the logical collection the plan was computed for.
	Collection string `json:"collection"`

	// Identifier is the join column (inferred or overridden).
	Identifier string `json:"identifier"`

	// Inserts are snapshot records absent from the live set.
	Inserts []record.Record `json:"inserts"`

	// Updates are snapshot records whose live counterpart differs.
	Updates []Update `json:"updates"`

	// Unchanged are snapshot records identical to their live counterpart.
	Unchanged []record.Record `json:"unchanged"`

	// Warnings lists non-fatal degradations found while planning.
	Warnings []Warning `json:"warnings,omitempty"`

	// Summary holds the aggregate counts.
	Summary Summary `json:"summary"`
}

// Options controls a single reconciliation run.
type Options struct {
	// Collection names the logical collection (report/labelling only).
	Collection string

	// Identifier, when non-empty, bypasses inference and joins on the given
	// column. Used for collections whose key does not match any rule (the
	// select-options table keys on an explicit UUID column).
	Identifier string

	// AssignMissingIDs backfills a fresh UUID into snapshot records whose
	// identifier value is empty, instead of inserting them as-is. The
	// backfill happens at plan time so preview and apply see the same record.
	AssignMissingIDs bool
}
