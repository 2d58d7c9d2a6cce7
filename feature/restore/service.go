package restore

import (
	"context"
	"fmt"
	"time"

	"inventory-vault/core/archive"
	"inventory-vault/core/collection"
	"inventory-vault/core/reconcile"
	"inventory-vault/core/record"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service handles restore operations.
type Service struct {
	cfg         archive.Config
	store       archive.Store
	db          *gorm.DB
	collections []collection.Config
	logger      *zap.Logger
}

// NewService creates a new restore service.
func NewService(cfg archive.Config, store archive.Store, db *gorm.DB, collections []collection.Config, logger *zap.Logger) *Service {
	return &Service{
		cfg:         cfg,
		store:       store,
		db:          db,
		collections: collections,
		logger:      logger,
	}
}

// collectionStore resolves a configured collection into its live-table store.
func (s *Service) collectionStore(name string) (*collection.Store, collection.Config, error) {
	cfg, ok := collection.Find(s.collections, name)
	if !ok {
		return nil, collection.Config{}, fmt.Errorf("collection %q is not configured", name)
	}
	if s.db == nil {
		return nil, collection.Config{}, fmt.Errorf("database not configured")
	}
	return collection.NewStore(s.db, cfg), cfg, nil
}

// planCacheKey builds the plan cache key. Invalidation after an apply matches
// on the collection prefix.
func planCacheKey(collection, day, stamp string) string {
	return collection + "|" + day + "|" + stamp
}

// Plan reconciles one snapshot collection against the live table and returns
// the full plan. The snapshot and the live table load concurrently. Plans are
// cached per (collection, day, stamp) when a cache TTL is configured.
func (s *Service) Plan(ctx context.Context, day, stamp, collectionName string) (*reconcile.Plan, error) {
	store, cfg, err := s.collectionStore(collectionName)
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(s.cfg.PlanCacheSeconds) * time.Second
	return reconcile.GetOrBuildPlan(planCacheKey(collectionName, day, stamp), ttl, func() (*reconcile.Plan, error) {
		desc, err := s.store.Find(ctx, day, stamp)
		if err != nil {
			return nil, err
		}

		var snapshot, live *record.Set
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			snapshot, err = archive.ReadSet(gctx, s.store, desc, collectionName)
			return err
		})
		g.Go(func() error {
			var err error
			live, err = store.Load(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return reconcile.Reconcile(snapshot, live, reconcile.Options{
			Collection:       collectionName,
			Identifier:       cfg.Identifier,
			AssignMissingIDs: cfg.AssignMissingIDs,
		})
	})
}

// Apply executes a previously computed plan against the live table. Cached
// plans for the collection are invalidated after a confirmed apply since the
// live table changed underneath them.
func (s *Service) Apply(ctx context.Context, plan *reconcile.Plan, collectionName string, opts reconcile.ApplyOptions) (*reconcile.Result, error) {
	store, _, err := s.collectionStore(collectionName)
	if err != nil {
		return nil, err
	}

	result, err := reconcile.Apply(ctx, plan, store, opts)
	if err != nil {
		return result, err
	}

	if opts.Confirmed && !opts.DryRun {
		reconcile.InvalidatePlans(collectionName + "|")
		s.logger.Info("Restore applied",
			zap.String("collection", collectionName),
			zap.Int("inserted", result.Inserted),
			zap.Int("updated", result.Updated),
			zap.Int("failed", result.Failed))
	}
	return result, nil
}

// Outcome is the combined report of a restore run: the bounded preview of
// what was planned plus the apply result.
type Outcome struct {
	Preview reconcile.Preview `json:"preview"`
	Result  *reconcile.Result `json:"result"`
}

// Restore plans and applies in one call (smart merge).
func (s *Service) Restore(ctx context.Context, day, stamp, collectionName string, opts reconcile.ApplyOptions) (*Outcome, error) {
	plan, err := s.Plan(ctx, day, stamp, collectionName)
	if err != nil {
		return nil, err
	}
	result, err := s.Apply(ctx, plan, collectionName, opts)
	if err != nil {
		return nil, err
	}
	return &Outcome{Preview: plan.Preview(0), Result: result}, nil
}

// ReplaceResult reports a replace-mode run.
type ReplaceResult struct {
	// SnapshotRecords is the snapshot's record count, reported even when the
	// run is gated so a dry run shows what would be inserted.
	SnapshotRecords int `json:"snapshot_records"`
	// Deleted counts removed live rows. Zero when gated.
	Deleted int64 `json:"deleted"`
	// Inserted counts reinserted snapshot rows.
	Inserted int `json:"inserted"`
	// Failures lists per-batch insert errors.
	Failures []string `json:"failures,omitempty"`
}

// Replace wipes the live table and reinserts the snapshot. Without explicit
// confirmation (or with dry-run) nothing is written and only the snapshot
// count is reported.
func (s *Service) Replace(ctx context.Context, day, stamp, collectionName string, opts reconcile.ApplyOptions) (*ReplaceResult, error) {
	store, _, err := s.collectionStore(collectionName)
	if err != nil {
		return nil, err
	}

	desc, err := s.store.Find(ctx, day, stamp)
	if err != nil {
		return nil, err
	}
	snapshot, err := archive.ReadSet(ctx, s.store, desc, collectionName)
	if err != nil {
		return nil, err
	}

	result := &ReplaceResult{SnapshotRecords: snapshot.Len()}
	if opts.DryRun || !opts.Confirmed {
		return result, nil
	}

	deleted, err := store.DeleteAll(ctx)
	if err != nil {
		return result, err
	}
	result.Deleted = deleted

	if err := store.InsertBatch(ctx, snapshot.Records, 0); err != nil {
		// The table was already wiped; report the partial state instead of
		// hiding it behind the error.
		result.Failures = append(result.Failures, err.Error())
		return result, fmt.Errorf("replace %s: %w", collectionName, err)
	}
	result.Inserted = snapshot.Len()

	reconcile.InvalidatePlans(collectionName + "|")
	s.logger.Info("Replace completed",
		zap.String("collection", collectionName),
		zap.Int64("deleted", deleted),
		zap.Int("inserted", result.Inserted))
	return result, nil
}

// DuplicateGroup is one set of live records sharing a normalized identifier
// value.
type DuplicateGroup struct {
	Key     string          `json:"key"`
	Count   int             `json:"count"`
	Records []record.Record `json:"records"`
}

// DuplicatesReport is the read-only duplicate-identifier report for one live
// collection. Duplicates matter because snapshot matching keeps only the last
// record per key.
type DuplicatesReport struct {
	Collection   string           `json:"collection"`
	Identifier   string           `json:"identifier"`
	TotalRecords int              `json:"total_records"`
	Groups       []DuplicateGroup `json:"groups"`
}

// Duplicates scans the live table for records sharing an identifier value.
func (s *Service) Duplicates(ctx context.Context, collectionName string) (*DuplicatesReport, error) {
	store, cfg, err := s.collectionStore(collectionName)
	if err != nil {
		return nil, err
	}

	live, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	identifier := cfg.Identifier
	if identifier == "" {
		if identifier, err = reconcile.InferIdentifier(live.Columns); err != nil {
			return nil, err
		}
	}

	report := &DuplicatesReport{
		Collection:   collectionName,
		Identifier:   identifier,
		TotalRecords: live.Len(),
		Groups:       []DuplicateGroup{},
	}

	byKey := make(map[string][]record.Record, live.Len())
	order := make([]string, 0, live.Len())
	for _, rec := range live.Records {
		key := record.Normalize(rec[identifier])
		if key == "" {
			continue
		}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], rec)
	}

	for _, key := range order {
		if recs := byKey[key]; len(recs) > 1 {
			report.Groups = append(report.Groups, DuplicateGroup{
				Key:     key,
				Count:   len(recs),
				Records: recs,
			})
		}
	}

	return report, nil
}
