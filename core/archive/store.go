package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"inventory-vault/core/record"
	"inventory-vault/core/storage"
)

// ErrNotFound is returned when a requested snapshot, descriptor or
// collection file does not exist in the store.
var ErrNotFound = errors.New("snapshot not found")

// CollectionSet pairs a collection name with its materialized records.
// Snapshot order is significant: the combined integrity hash is computed
// over the per-collection hashes in this order.
type CollectionSet struct {
	Name string
	Set  *record.Set
}

// Snapshot is one backup's in-memory form, before writing or after loading.
type Snapshot struct {
	// TakenAt is the snapshot creation time; it determines the weekday
	// folder and the file name stamp.
	TakenAt time.Time

	// IntervalHours is recorded into the descriptor for bookkeeping.
	IntervalHours int

	// Collections holds the record sets in snapshot order.
	Collections []CollectionSet
}

// Store persists snapshots. Implementations: filesystem (fs.go) and
// S3-compatible object storage (s3.go).
type Store interface {
	// Write persists a snapshot into its weekday folder and returns the
	// descriptor it wrote.
	Write(ctx context.Context, snap *Snapshot) (*Descriptor, error)

	// List returns the descriptors in one weekday folder, newest first.
	List(ctx context.Context, day string) ([]*Descriptor, error)

	// Latest returns the most recent descriptor across all days, or
	// ErrNotFound if no snapshot exists.
	Latest(ctx context.Context) (*Descriptor, error)

	// Find returns the descriptor with the given stamp in the given day.
	Find(ctx context.Context, day, stamp string) (*Descriptor, error)

	// Open returns the raw (possibly compressed) bytes of one collection
	// file belonging to a descriptor.
	Open(ctx context.Context, desc *Descriptor, collection string) (io.ReadCloser, error)

	// Prune deletes snapshots older than the retention window and returns
	// how many snapshots were removed.
	Prune(ctx context.Context, keep time.Duration) (int, error)
}

// NewStore builds the configured store backend. The storage client is only
// required for the s3 backend.
func NewStore(cfg Config, client storage.Client, bucket string) (Store, error) {
	switch cfg.Backend {
	case BackendFS:
		return newFSStore(cfg.Dir, cfg.Compress), nil
	case BackendS3:
		if client == nil {
			return nil, fmt.Errorf("archive backend %q requires a storage client", cfg.Backend)
		}
		return newS3Store(client, bucket, cfg.Prefix, cfg.Compress), nil
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.Backend)
	}
}

// ReadSet loads and decodes one collection's record set from a snapshot,
// transparently decompressing .gz payloads.
func ReadSet(ctx context.Context, store Store, desc *Descriptor, collection string) (*record.Set, error) {
	raw, err := readFileBytes(ctx, store, desc, collection)
	if err != nil {
		return nil, err
	}
	return DecodeSet(bytes.NewReader(raw))
}

// readFileBytes returns the uncompressed CSV bytes of one collection file.
// Integrity hashes are computed over exactly these bytes.
func readFileBytes(ctx context.Context, store Store, desc *Descriptor, collection string) ([]byte, error) {
	cf, ok := desc.File(collection)
	if !ok {
		return nil, fmt.Errorf("collection %q in snapshot %s: %w", collection, desc.Stamp, ErrNotFound)
	}

	rc, err := store.Open(ctx, desc, collection)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cf.File, err)
	}
	if isCompressed(cf.File) {
		return gunzipBytes(raw)
	}
	return raw, nil
}
