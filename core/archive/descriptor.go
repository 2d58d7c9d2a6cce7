package archive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// StampLayout is the filename timestamp format shared by CSV files and
// descriptors.
const StampLayout = "20060102_150405"

// DayDisplayOrder lists the weekday folders in display order, sunday first.
var DayDisplayOrder = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// DayName returns the weekday folder name for a point in time.
func DayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsValidDay reports whether name is one of the seven weekday folder names.
func IsValidDay(name string) bool {
	for _, d := range DayDisplayOrder {
		if d == name {
			return true
		}
	}
	return false
}

// CollectionFile describes one collection's CSV file within a snapshot.
type CollectionFile struct {
	// Collection is the logical collection name.
	Collection string `json:"collection"`
	// File is the CSV file name (relative to the day folder).
	File string `json:"file"`
	// Records is the row count at backup time.
	Records int `json:"records"`
	// SHA256 is the hash of the uncompressed CSV bytes.
	SHA256 string `json:"sha256"`
}

// Descriptor is the per-snapshot JSON metadata document. It is what the
// listing and restore flows select on; the reconcile engine itself never
// reads it.
type Descriptor struct {
	// BackupTimestamp is the snapshot creation time.
	BackupTimestamp time.Time `json:"backup_timestamp"`
	// Stamp is BackupTimestamp in StampLayout form, as used in file names.
	Stamp string `json:"stamp"`
	// IntervalHours is the configured backup interval at creation time.
	IntervalHours int `json:"backup_interval_hours"`
	// DayOfWeek is the weekday folder holding the snapshot.
	DayOfWeek string `json:"day_of_week"`
	// Collections lists the per-collection files, in snapshot order.
	Collections []CollectionFile `json:"collections"`
	// BackupHash is the combined integrity hash over the per-file hashes.
	BackupHash string `json:"backup_hash"`
}

// File returns the entry for the named collection.
func (d *Descriptor) File(collection string) (CollectionFile, bool) {
	for _, f := range d.Collections {
		if f.Collection == collection {
			return f, true
		}
	}
	return CollectionFile{}, false
}

// CollectionNames returns the collections in snapshot order.
func (d *Descriptor) CollectionNames() []string {
	names := make([]string, 0, len(d.Collections))
	for _, f := range d.Collections {
		names = append(names, f.Collection)
	}
	return names
}

// MetadataFileName builds the descriptor file name for a stamp.
func MetadataFileName(stamp string) string {
	return fmt.Sprintf("backup_metadata_%s.json", stamp)
}

// CollectionFileName builds the CSV file name for a collection and stamp.
func CollectionFileName(collection, stamp string, compressed bool) string {
	name := fmt.Sprintf("%s_backup_%s.csv", collection, stamp)
	if compressed {
		name += ".gz"
	}
	return name
}

// HashBytes returns the hex SHA-256 of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// CombinedHash computes the snapshot-level integrity hash: SHA-256 over the
// per-collection hashes joined in collection order. Order matters, so two
// snapshots with the same files in a different order hash differently.
func CombinedHash(files []CollectionFile) string {
	parts := make([]string, 0, len(files))
	for _, f := range files {
		parts = append(parts, f.SHA256)
	}
	return HashBytes([]byte(strings.Join(parts, "_")))
}
