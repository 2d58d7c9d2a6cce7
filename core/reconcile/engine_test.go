package reconcile

import (
	"testing"

	"inventory-vault/core/record"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBuilder(columns []string, rows ...record.Record) *record.Set {
	s := record.NewSet(columns...)
	for _, r := range rows {
		s.Append(r)
	}
	return s
}

func TestReconcile(t *testing.T) {
	t.Run("EndToEnd", func(t *testing.T) {
		backup := setBuilder([]string{"id", "qty"},
			record.Record{"id": 1, "qty": 10},
			record.Record{"id": 2, "qty": 5},
			record.Record{"id": 3, "qty": 7},
		)
		live := setBuilder([]string{"id", "qty"},
			record.Record{"id": 1, "qty": 10},
			record.Record{"id": 2, "qty": 8},
		)

		plan, err := Reconcile(backup, live, Options{Collection: "equipment"})
		require.NoError(t, err)

		assert.Equal(t, "id", plan.Identifier)
		require.Len(t, plan.Unchanged, 1)
		assert.Equal(t, 1, plan.Unchanged[0]["id"])

		require.Len(t, plan.Updates, 1)
		assert.Equal(t, 2, plan.Updates[0].Backup["id"])
		assert.Equal(t, 8, plan.Updates[0].Diff["qty"].Old)
		assert.Equal(t, 5, plan.Updates[0].Diff["qty"].New)

		require.Len(t, plan.Inserts, 1)
		assert.Equal(t, 3, plan.Inserts[0]["id"])

		assert.Equal(t, 3, plan.Summary.BackupRecords)
		assert.Equal(t, 2, plan.Summary.LiveRecords)
	})

	t.Run("PartitionCompleteness", func(t *testing.T) {
		backup := setBuilder([]string{"id", "qty"},
			record.Record{"id": 1, "qty": 1},
			record.Record{"id": 2, "qty": 2},
			record.Record{"id": 3, "qty": 3},
			record.Record{"id": 4, "qty": 4},
			record.Record{"id": nil, "qty": 5},
		)
		live := setBuilder([]string{"id", "qty"},
			record.Record{"id": 2, "qty": 2},
			record.Record{"id": 3, "qty": 99},
		)

		plan, err := Reconcile(backup, live, Options{})
		require.NoError(t, err)

		// Every snapshot record lands in exactly one partition.
		total := len(plan.Inserts) + len(plan.Updates) + len(plan.Unchanged)
		assert.Equal(t, backup.Len(), total)
		assert.Equal(t, plan.Summary.Inserts+plan.Summary.Updates+plan.Summary.Unchanged, backup.Len())
	})

	t.Run("NormalizationEquivalence", func(t *testing.T) {
		backup := setBuilder([]string{"id", "qty"}, record.Record{"id": "1", "qty": " 5 "})
		live := setBuilder([]string{"id", "qty"}, record.Record{"id": 1, "qty": 5})

		plan, err := Reconcile(backup, live, Options{})
		require.NoError(t, err)
		assert.Len(t, plan.Unchanged, 1)
		assert.Empty(t, plan.Updates)
		assert.Empty(t, plan.Inserts)
	})

	t.Run("NoIdentifierAborts", func(t *testing.T) {
		backup := setBuilder([]string{"name", "quantity", "location"},
			record.Record{"name": "scope", "quantity": 2, "location": "lab"},
		)
		live := setBuilder([]string{"name", "quantity", "location"})

		plan, err := Reconcile(backup, live, Options{Collection: "equipment"})
		assert.ErrorIs(t, err, ErrNoIdentifier)
		assert.Nil(t, plan)
	})

	t.Run("IdentifierFallsBackToBackupSchema", func(t *testing.T) {
		// Live set is empty with no schema; the snapshot schema still yields
		// a key, so everything becomes an insert.
		backup := setBuilder([]string{"id", "qty"}, record.Record{"id": 1, "qty": 2})
		live := record.NewSet()

		plan, err := Reconcile(backup, live, Options{})
		require.NoError(t, err)
		assert.Equal(t, "id", plan.Identifier)
		assert.Len(t, plan.Inserts, 1)
	})

	t.Run("IdentifierOverride", func(t *testing.T) {
		// Explicit override bypasses inference even when a rule would match.
		backup := setBuilder([]string{"id", "tag"}, record.Record{"id": 1, "tag": "a"})
		live := setBuilder([]string{"id", "tag"}, record.Record{"id": 2, "tag": "a"})

		plan, err := Reconcile(backup, live, Options{Identifier: "tag"})
		require.NoError(t, err)
		assert.Equal(t, "tag", plan.Identifier)
		require.Len(t, plan.Updates, 1)
		assert.Equal(t, 2, plan.Updates[0].Diff["id"].Old)
	})

	t.Run("DuplicateLiveIdentifiers", func(t *testing.T) {
		backup := setBuilder([]string{"id", "qty"}, record.Record{"id": 1, "qty": 7})
		live := setBuilder([]string{"id", "qty"},
			record.Record{"id": 1, "qty": 5},
			record.Record{"id": 1, "qty": 7}, // last one wins
		)

		plan, err := Reconcile(backup, live, Options{})
		require.NoError(t, err)
		assert.Equal(t, 1, plan.Summary.DuplicateKeys)
		// Matched against the last-seen live record, which is identical.
		assert.Len(t, plan.Unchanged, 1)

		var kinds []WarningKind
		for _, w := range plan.Warnings {
			kinds = append(kinds, w.Kind)
		}
		assert.Contains(t, kinds, WarnDuplicateIdentifier)
	})

	t.Run("MissingIdentifierBackfill", func(t *testing.T) {
		backup := setBuilder([]string{"option_uuid", "value"},
			record.Record{"option_uuid": "", "value": "red"},
		)
		live := setBuilder([]string{"option_uuid", "value"})

		plan, err := Reconcile(backup, live, Options{Identifier: "option_uuid", AssignMissingIDs: true})
		require.NoError(t, err)
		require.Len(t, plan.Inserts, 1)
		assert.NotEmpty(t, plan.Inserts[0]["option_uuid"])
		assert.Equal(t, 1, plan.Summary.MissingIdentifiers)
	})

	t.Run("MissingIdentifierWithoutBackfill", func(t *testing.T) {
		backup := setBuilder([]string{"id", "value"},
			record.Record{"id": nil, "value": "red"},
		)
		live := setBuilder([]string{"id", "value"})

		plan, err := Reconcile(backup, live, Options{})
		require.NoError(t, err)
		require.Len(t, plan.Inserts, 1)
		assert.Nil(t, plan.Inserts[0]["id"])
	})

	t.Run("SchemaMismatchWarns", func(t *testing.T) {
		backup := setBuilder([]string{"id", "legacy_notes"}, record.Record{"id": 1, "legacy_notes": ""})
		live := setBuilder([]string{"id", "location"}, record.Record{"id": 1, "location": ""})

		plan, err := Reconcile(backup, live, Options{})
		require.NoError(t, err)
		// Empty-valued one-sided columns compare as null: unchanged.
		assert.Len(t, plan.Unchanged, 1)

		var mismatches int
		for _, w := range plan.Warnings {
			if w.Kind == WarnSchemaMismatch {
				mismatches++
			}
		}
		assert.Equal(t, 2, mismatches)
	})

	t.Run("NilSets", func(t *testing.T) {
		_, err := Reconcile(nil, nil, Options{})
		assert.ErrorIs(t, err, ErrNoIdentifier)
	})
}

func TestPlanPreview(t *testing.T) {
	backup := record.NewSet("id", "qty")
	live := record.NewSet("id", "qty")
	for i := 1; i <= 30; i++ {
		backup.Append(record.Record{"id": i, "qty": i * 2})
		if i <= 15 {
			live.Append(record.Record{"id": i, "qty": 0})
		}
	}

	plan, err := Reconcile(backup, live, Options{Collection: "equipment"})
	require.NoError(t, err)
	assert.Equal(t, 15, plan.Summary.Updates)
	assert.Equal(t, 15, plan.Summary.Inserts)

	t.Run("BoundedSamples", func(t *testing.T) {
		pv := plan.Preview(5)
		assert.Len(t, pv.UpdateSamples, 5)
		assert.Len(t, pv.InsertSamples, 5)
		// Counts still reflect the full plan.
		assert.Equal(t, 15, pv.Summary.Updates)
	})

	t.Run("DefaultLimit", func(t *testing.T) {
		pv := plan.Preview(0)
		assert.Len(t, pv.UpdateSamples, DefaultPreviewLimit)
	})

	t.Run("HasChanges", func(t *testing.T) {
		assert.True(t, plan.HasChanges())

		empty, err := Reconcile(record.NewSet("id"), record.NewSet("id"), Options{})
		require.NoError(t, err)
		assert.False(t, empty.HasChanges())
	})
}
