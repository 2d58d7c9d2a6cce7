package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"inventory-vault/core/storage"

	"github.com/minio/minio-go/v7"
)

// s3Store is the object-storage backend over the minio-based storage client.
// Keys follow <prefix>/<day>/<file>, mirroring the filesystem layout.
type s3Store struct {
	client   storage.Client
	bucket   string
	prefix   string
	compress bool
}

func newS3Store(client storage.Client, bucket, prefix string, compress bool) *s3Store {
	return &s3Store{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/"), compress: compress}
}

// key builds the object name for a file in a day folder.
func (s *s3Store) key(day, file string) string {
	return path.Join(s.prefix, day, file)
}

func (s *s3Store) put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (s *s3Store) Write(ctx context.Context, snap *Snapshot) (*Descriptor, error) {
	stamp := snap.TakenAt.Format(StampLayout)
	day := DayName(snap.TakenAt)

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
		contentType := "text/csv"
		if s.compress {
			if payload, err = gzipBytes(encoded); err != nil {
				return nil, fmt.Errorf("collection %q: %w", cs.Name, err)
			}
			contentType = "application/gzip"
		}
		if err := s.put(ctx, s.key(day, fileName), payload, contentType); err != nil {
			return nil, err
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
	if err := s.put(ctx, s.key(day, MetadataFileName(stamp)), meta, "application/json"); err != nil {
		return nil, err
	}

	return desc, nil
}

func (s *s3Store) List(ctx context.Context, day string) ([]*Descriptor, error) {
	if !IsValidDay(day) {
		return nil, fmt.Errorf("invalid day %q", day)
	}

	listPrefix := s.key(day, "backup_metadata_")
	descs := []*Descriptor{}

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    listPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list %s: %w", day, obj.Err)
		}
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		desc, err := s.readDescriptor(ctx, obj.Key)
		if err != nil {
			// Tolerant listing: skip unreadable descriptors.
			continue
		}
		descs = append(descs, desc)
	}

	sortDescriptors(descs)
	return descs, nil
}

func (s *s3Store) Latest(ctx context.Context) (*Descriptor, error) {
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

func (s *s3Store) Find(ctx context.Context, day, stamp string) (*Descriptor, error) {
	if !IsValidDay(day) {
		return nil, fmt.Errorf("invalid day %q", day)
	}
	desc, err := s.readDescriptor(ctx, s.key(day, MetadataFileName(stamp)))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s/%s: %w", day, stamp, ErrNotFound)
	}
	return desc, nil
}

func (s *s3Store) Open(ctx context.Context, desc *Descriptor, collection string) (io.ReadCloser, error) {
	cf, ok := desc.File(collection)
	if !ok {
		return nil, fmt.Errorf("collection %q in snapshot %s: %w", collection, desc.Stamp, ErrNotFound)
	}
	rc, err := s.client.GetObject(ctx, s.bucket, s.key(desc.DayOfWeek, cf.File), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", cf.File, err)
	}
	return rc, nil
}

func (s *s3Store) Prune(ctx context.Context, keep time.Duration) (int, error) {
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
			for _, cf := range desc.Collections {
				_ = s.client.RemoveObject(ctx, s.bucket, s.key(day, cf.File), minio.RemoveObjectOptions{})
			}
			if err := s.client.RemoveObject(ctx, s.bucket, s.key(day, MetadataFileName(desc.Stamp)), minio.RemoveObjectOptions{}); err != nil {
				return removed, fmt.Errorf("prune %s: %w", desc.Stamp, err)
			}
			removed++
		}
	}

	return removed, nil
}

// readDescriptor fetches and parses one descriptor object.
func (s *s3Store) readDescriptor(ctx context.Context, key string) (*Descriptor, error) {
	rc, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse descriptor %s: %w", key, err)
	}
	return &desc, nil
}
