package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// fsStore is the local filesystem backend. The root directory holds the
// seven weekday folders; folders are created lazily on first write.
type fsStore struct {
	root     string
	compress bool
}

func newFSStore(root string, compress bool) *fsStore {
	return &fsStore{root: root, compress: compress}
}

func (s *fsStore) Write(ctx context.Context, snap *Snapshot) (*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stamp := snap.TakenAt.Format(StampLayout)
	day := DayName(snap.TakenAt)
	dayDir := filepath.Join(s.root, day)
	if err := os.MkdirAll(dayDir, 0o755); err != nil {
		return nil, fmt.Errorf("create day folder: %w", err)
	}

	desc := &Descriptor{
		BackupTimestamp: snap.TakenAt,
		Stamp:           stamp,
		IntervalHours:   snap.IntervalHours,
		DayOfWeek:       day,
	}

	for _, cs := range snap.Collections {
		encoded, err := EncodeSet(cs.Set)
		if err != nil {
			return nil, fmt.Errorf("collection %q: %w", cs.Name, err)
		}

		fileName := CollectionFileName(cs.Name, stamp, s.compress)
		payload := encoded
		if s.compress {
			if payload, err = gzipBytes(encoded); err != nil {
				return nil, fmt.Errorf("collection %q: %w", cs.Name, err)
			}
		}
		if err := os.WriteFile(filepath.Join(dayDir, fileName), payload, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", fileName, err)
		}

		desc.Collections = append(desc.Collections, CollectionFile{
			Collection: cs.Name,
			File:       fileName,
			Records:    cs.Set.Len(),
			SHA256:     HashBytes(encoded),
		})
	}

	desc.BackupHash = CombinedHash(desc.Collections)

	meta, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal descriptor: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dayDir, MetadataFileName(stamp)), meta, 0o644); err != nil {
		return nil, fmt.Errorf("write descriptor: %w", err)
	}

	return desc, nil
}

func (s *fsStore) List(ctx context.Context, day string) ([]*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsValidDay(day) {
		return nil, fmt.Errorf("invalid day %q", day)
	}

	matches, err := filepath.Glob(filepath.Join(s.root, day, "backup_metadata_*.json"))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", day, err)
	}

	descs := make([]*Descriptor, 0, len(matches))
	for _, path := range matches {
		desc, err := readDescriptorFile(path)
		if err != nil {
			// Unreadable descriptors are skipped, matching the tolerant
			// listing behavior of the surrounding tooling.
			continue
		}
		descs = append(descs, desc)
	}

	sortDescriptors(descs)
	return descs, nil
}

func (s *fsStore) Latest(ctx context.Context) (*Descriptor, error) {
	var latest *Descriptor
	for _, day := range DayDisplayOrder {
		descs, err := s.List(ctx, day)
		if err != nil {
			return nil, err
		}
		for _, d := range descs {
			if latest == nil || d.BackupTimestamp.After(latest.BackupTimestamp) {
				latest = d
			}
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (s *fsStore) Find(ctx context.Context, day, stamp string) (*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !IsValidDay(day) {
		return nil, fmt.Errorf("invalid day %q", day)
	}

	desc, err := readDescriptorFile(filepath.Join(s.root, day, MetadataFileName(stamp)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("snapshot %s/%s: %w", day, stamp, ErrNotFound)
		}
		return nil, err
	}
	return desc, nil
}

func (s *fsStore) Open(ctx context.Context, desc *Descriptor, collection string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cf, ok := desc.File(collection)
	if !ok {
		return nil, fmt.Errorf("collection %q in snapshot %s: %w", collection, desc.Stamp, ErrNotFound)
	}
	f, err := os.Open(filepath.Join(s.root, desc.DayOfWeek, cf.File))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file %s: %w", cf.File, ErrNotFound)
		}
		return nil, fmt.Errorf("open %s: %w", cf.File, err)
	}
	return f, nil
}

func (s *fsStore) Prune(ctx context.Context, keep time.Duration) (int, error) {
	cutoff := time.Now().Add(-keep)
	removed := 0

	for _, day := range DayDisplayOrder {
		descs, err := s.List(ctx, day)
		if err != nil {
			return removed, err
		}
		for _, desc := range descs {
			if !desc.BackupTimestamp.Before(cutoff) {
				continue
			}
			dayDir := filepath.Join(s.root, day)
			for _, cf := range desc.Collections {
				// Best effort: a missing CSV must not block descriptor removal.
				_ = os.Remove(filepath.Join(dayDir, cf.File))
			}
			if err := os.Remove(filepath.Join(dayDir, MetadataFileName(desc.Stamp))); err != nil && !os.IsNotExist(err) {
				return removed, fmt.Errorf("prune %s: %w", desc.Stamp, err)
			}
			removed++
		}
	}

	return removed, nil
}

// readDescriptorFile loads and parses one descriptor JSON file.
func readDescriptorFile(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", filepath.Base(path), err)
	}
	return &desc, nil
}

// sortDescriptors orders descriptors newest first. Stamps sort the same way
// as timestamps, but the timestamp is authoritative.
func sortDescriptors(descs []*Descriptor) {
	sort.Slice(descs, func(i, j int) bool {
		if !descs[i].BackupTimestamp.Equal(descs[j].BackupTimestamp) {
			return descs[i].BackupTimestamp.After(descs[j].BackupTimestamp)
		}
		return strings.Compare(descs[i].Stamp, descs[j].Stamp) > 0
	})
}
