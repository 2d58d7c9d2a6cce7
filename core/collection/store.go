package collection

import (
	"context"
	"fmt"

	"inventory-vault/core/database"
	"inventory-vault/core/record"

	"gorm.io/gorm"
)

// Store is the live-table side of a collection: reads for planning, writes
// for applying. It satisfies reconcile.Applier.
type Store struct {
	db  *gorm.DB
	cfg Config
}

// NewStore creates a store for one collection.
func NewStore(db *gorm.DB, cfg Config) *Store {
	return &Store{db: db, cfg: cfg}
}

// Name returns the logical collection name.
func (s *Store) Name() string {
	return s.cfg.Name
}

// Config returns the collection configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// Columns returns the table's column names in schema order.
func (s *Store) Columns(ctx context.Context) ([]string, error) {
	infos, err := database.GetTableColumns(s.db.WithContext(ctx), s.cfg.Table)
	if err != nil {
		return nil, err
	}
	columns := make([]string, 0, len(infos))
	for _, info := range infos {
		columns = append(columns, info.Field)
	}
	return columns, nil
}

// Load materializes the whole table as a record set. Rows are scanned
// generically so the store works against any schema; driver []byte values
// are mapped to strings.
func (s *Store) Load(ctx context.Context) (*record.Set, error) {
	rows, err := s.db.WithContext(ctx).Table(s.cfg.Table).Rows()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.cfg.Table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("load %s columns: %w", s.cfg.Table, err)
	}

	set := record.NewSet(columns...)
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("load %s scan: %w", s.cfg.Table, err)
		}
		rec := make(record.Record, len(columns))
		for i, col := range columns {
			rec[col] = normalizeDriverValue(values[i])
		}
		set.Append(rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load %s rows: %w", s.cfg.Table, err)
	}

	return set, nil
}

// Count returns the table's row count.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Table(s.cfg.Table).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", s.cfg.Table, err)
	}
	return count, nil
}

// Insert writes one full record.
func (s *Store) Insert(ctx context.Context, rec record.Record) error {
	if err := s.db.WithContext(ctx).Table(s.cfg.Table).Create(map[string]any(rec)).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", s.cfg.Table, err)
	}
	return nil
}

// InsertBatch writes a slice of records in chunks. Used by replace mode.
func (s *Store) InsertBatch(ctx context.Context, recs []record.Record, batchSize int) error {
	if batchSize <= 0 {
		batchSize = 100
	}
	for start := 0; start < len(recs); start += batchSize {
		end := start + batchSize
		if end > len(recs) {
			end = len(recs)
		}
		batch := make([]map[string]any, 0, end-start)
		for _, rec := range recs[start:end] {
			batch = append(batch, map[string]any(rec))
		}
		if err := s.db.WithContext(ctx).Table(s.cfg.Table).Create(batch).Error; err != nil {
			return fmt.Errorf("insert batch into %s: %w", s.cfg.Table, err)
		}
	}
	return nil
}

// Update writes changes to the row whose field equals key. Only the fields
// in changes are touched, so the write matches the plan's diff exactly.
func (s *Store) Update(ctx context.Context, field string, key any, changes map[string]any) error {
	result := s.db.WithContext(ctx).Table(s.cfg.Table).
		Where(fmt.Sprintf("`%s` = ?", field), key).
		Updates(changes)
	if result.Error != nil {
		return fmt.Errorf("update %s: %w", s.cfg.Table, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("update %s: no row with %s = %v", s.cfg.Table, field, key)
	}
	return nil
}

// DeleteAll removes every row. Only replace mode calls this, and only after
// explicit confirmation.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Table(s.cfg.Table).Where("1 = 1").Delete(nil)
	if result.Error != nil {
		return 0, fmt.Errorf("delete from %s: %w", s.cfg.Table, result.Error)
	}
	return result.RowsAffected, nil
}

// normalizeDriverValue maps driver-level types to record scalars.
// MySQL returns []byte for most textual columns.
func normalizeDriverValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
