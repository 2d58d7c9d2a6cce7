package backup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inventory-vault/core/archive"
	"inventory-vault/core/collection"
	"inventory-vault/core/record"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrSkipped is returned by Create when the latest snapshot is still within
// the configured interval and the run was not forced.
var ErrSkipped = errors.New("backup skipped: latest snapshot is within the interval")

// Service handles snapshot operations.
type Service struct {
	cfg         archive.Config
	store       archive.Store
	db          *gorm.DB
	collections []collection.Config
	logger      *zap.Logger
}

// NewService creates a new backup service.
func NewService(cfg archive.Config, store archive.Store, db *gorm.DB, collections []collection.Config, logger *zap.Logger) *Service {
	return &Service{
		cfg:         cfg,
		store:       store,
		db:          db,
		collections: collections,
		logger:      logger,
	}
}

// Create takes a snapshot of every configured collection. Unless force is
// set, the run is skipped with ErrSkipped when the latest snapshot is younger
// than the configured interval. After a successful write expired snapshots
// are pruned.
func (s *Service) Create(ctx context.Context, force bool) (*archive.Descriptor, error) {
	if s.db == nil {
		return nil, errors.New("database not configured")
	}

	if !force {
		latest, err := s.store.Latest(ctx)
		if err != nil && !errors.Is(err, archive.ErrNotFound) {
			return nil, fmt.Errorf("check latest snapshot: %w", err)
		}
		if err == nil {
			age := time.Since(latest.BackupTimestamp)
			if age < time.Duration(s.cfg.IntervalHours)*time.Hour {
				s.logger.Info("Backup skipped, latest snapshot within interval",
					zap.String("stamp", latest.Stamp),
					zap.Duration("age", age))
				return latest, ErrSkipped
			}
		}
	}

	// Collections load in parallel; snapshot order stays config order so the
	// combined hash is deterministic.
	sets := make([]archive.CollectionSet, len(s.collections))
	g, gctx := errgroup.WithContext(ctx)
	for i, cfg := range s.collections {
		g.Go(func() error {
			set, err := collection.NewStore(s.db, cfg).Load(gctx)
			if err != nil {
				return fmt.Errorf("load collection %s: %w", cfg.Name, err)
			}
			sets[i] = archive.CollectionSet{Name: cfg.Name, Set: set}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap := &archive.Snapshot{
		TakenAt:       time.Now(),
		IntervalHours: s.cfg.IntervalHours,
		Collections:   sets,
	}

	desc, err := s.store.Write(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}

	s.logger.Info("Snapshot created",
		zap.String("day", desc.DayOfWeek),
		zap.String("stamp", desc.Stamp),
		zap.Int("collections", len(desc.Collections)))

	if removed, err := s.Prune(ctx); err != nil {
		// Pruning is housekeeping; a failure must not fail the backup.
		s.logger.Warn("Retention pruning failed", zap.Error(err))
	} else if removed > 0 {
		s.logger.Info("Expired snapshots pruned", zap.Int("removed", removed))
	}

	return desc, nil
}

// DayGroup is one weekday's snapshots, newest first.
type DayGroup struct {
	Day       string                `json:"day"`
	Snapshots []*archive.Descriptor `json:"snapshots"`
}

// List returns all snapshots grouped by weekday in display order (sunday
// first). Days without snapshots are omitted.
func (s *Service) List(ctx context.Context) ([]DayGroup, error) {
	groups := make([]DayGroup, 0, len(archive.DayDisplayOrder))
	for _, day := range archive.DayDisplayOrder {
		descs, err := s.store.List(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", day, err)
		}
		if len(descs) == 0 {
			continue
		}
		groups = append(groups, DayGroup{Day: day, Snapshots: descs})
	}
	return groups, nil
}

// ListDay returns one weekday's snapshots, newest first.
func (s *Service) ListDay(ctx context.Context, day string) ([]*archive.Descriptor, error) {
	if !archive.IsValidDay(day) {
		return nil, fmt.Errorf("invalid day %q", day)
	}
	return s.store.List(ctx, day)
}

// SnapshotPreview is the first few rows of one snapshot collection file.
type SnapshotPreview struct {
	Collection string          `json:"collection"`
	File       string          `json:"file"`
	Records    int             `json:"records"`
	Columns    []string        `json:"columns"`
	Rows       []record.Record `json:"rows"`
}

// Preview returns the first limit rows of a snapshot collection. A
// non-positive limit falls back to 10 rows.
func (s *Service) Preview(ctx context.Context, day, stamp, collectionName string, limit int) (*SnapshotPreview, error) {
	if limit <= 0 {
		limit = 10
	}

	desc, err := s.store.Find(ctx, day, stamp)
	if err != nil {
		return nil, err
	}
	cf, ok := desc.File(collectionName)
	if !ok {
		return nil, fmt.Errorf("collection %q in snapshot %s: %w", collectionName, stamp, archive.ErrNotFound)
	}

	set, err := archive.ReadSet(ctx, s.store, desc, collectionName)
	if err != nil {
		return nil, err
	}

	rows := set.Records
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return &SnapshotPreview{
		Collection: collectionName,
		File:       cf.File,
		Records:    set.Len(),
		Columns:    set.Columns,
		Rows:       rows,
	}, nil
}

// Verify re-checks the integrity hashes of one snapshot.
func (s *Service) Verify(ctx context.Context, day, stamp string) (*archive.VerifyReport, error) {
	desc, err := s.store.Find(ctx, day, stamp)
	if err != nil {
		return nil, err
	}
	return archive.Verify(ctx, s.store, desc), nil
}

// Compare diffs one collection between two snapshots of the same day. "from"
// is treated as the older snapshot, "to" as the newer one.
func (s *Service) Compare(ctx context.Context, day, fromStamp, toStamp, collectionName string, limit int) (*archive.SnapshotDiff, error) {
	fromDesc, err := s.store.Find(ctx, day, fromStamp)
	if err != nil {
		return nil, fmt.Errorf("from snapshot: %w", err)
	}
	toDesc, err := s.store.Find(ctx, day, toStamp)
	if err != nil {
		return nil, fmt.Errorf("to snapshot: %w", err)
	}

	older, err := archive.ReadSet(ctx, s.store, fromDesc, collectionName)
	if err != nil {
		return nil, err
	}
	newer, err := archive.ReadSet(ctx, s.store, toDesc, collectionName)
	if err != nil {
		return nil, err
	}

	return archive.CompareSnapshots(older, newer, limit)
}

// Prune removes snapshots older than the retention window and returns how
// many were removed.
func (s *Service) Prune(ctx context.Context) (int, error) {
	keep := time.Duration(s.cfg.RetentionDays) * 24 * time.Hour
	return s.store.Prune(ctx, keep)
}
