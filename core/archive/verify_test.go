package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	ctx := context.Background()
	takenAt := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

	t.Run("IntactSnapshotPasses", func(t *testing.T) {
		store := newFSStore(t.TempDir(), false)
		desc, err := store.Write(ctx, testSnapshot(takenAt))
		require.NoError(t, err)

		report := Verify(ctx, store, desc)
		assert.True(t, report.OK)
		assert.True(t, report.CombinedOK)
		for _, f := range report.Files {
			assert.True(t, f.OK)
		}
	})

	t.Run("CompressedSnapshotPasses", func(t *testing.T) {
		// Hashes cover the uncompressed bytes, so verification must be
		// independent of the compression setting.
		store := newFSStore(t.TempDir(), true)
		desc, err := store.Write(ctx, testSnapshot(takenAt))
		require.NoError(t, err)

		report := Verify(ctx, store, desc)
		assert.True(t, report.OK)
	})

	t.Run("CorruptedFileFlagged", func(t *testing.T) {
		root := t.TempDir()
		store := newFSStore(root, false)
		desc, err := store.Write(ctx, testSnapshot(takenAt))
		require.NoError(t, err)

		// Flip a byte in the equipment CSV.
		cf, _ := desc.File("equipment")
		path := filepath.Join(root, desc.DayOfWeek, cf.File)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		data[len(data)-2] ^= 0xFF
		require.NoError(t, os.WriteFile(path, data, 0o644))

		report := Verify(ctx, store, desc)
		assert.False(t, report.OK)
		assert.False(t, report.CombinedOK)

		var flagged bool
		for _, f := range report.Files {
			if f.Collection == "equipment" {
				flagged = !f.OK
			} else {
				assert.True(t, f.OK)
			}
		}
		assert.True(t, flagged)
	})

	t.Run("MissingFileReported", func(t *testing.T) {
		root := t.TempDir()
		store := newFSStore(root, false)
		desc, err := store.Write(ctx, testSnapshot(takenAt))
		require.NoError(t, err)

		cf, _ := desc.File("select_options")
		require.NoError(t, os.Remove(filepath.Join(root, desc.DayOfWeek, cf.File)))

		report := Verify(ctx, store, desc)
		assert.False(t, report.OK)
		for _, f := range report.Files {
			if f.Collection == "select_options" {
				assert.NotEmpty(t, f.Error)
			}
		}
	})
}

func TestCombinedHashOrderSensitive(t *testing.T) {
	a := CollectionFile{SHA256: "aaa"}
	b := CollectionFile{SHA256: "bbb"}
	assert.NotEqual(t, CombinedHash([]CollectionFile{a, b}), CombinedHash([]CollectionFile{b, a}))
}
