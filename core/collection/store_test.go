package collection

import (
	"context"
	"testing"

	"inventory-vault/core/database"
	"inventory-vault/core/record"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec(`CREATE TABLE equipment (
		id TEXT PRIMARY KEY,
		name TEXT,
		quantity INTEGER
	)`).Error
	require.NoError(t, err)

	return NewStore(db, Config{Name: "equipment", Table: "equipment"})
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	t.Run("EmptyLoad", func(t *testing.T) {
		set, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name", "quantity"}, set.Columns)
		assert.Equal(t, 0, set.Len())
	})

	t.Run("InsertAndLoad", func(t *testing.T) {
		err := store.Insert(ctx, record.Record{"id": "eq-1", "name": "Laptop", "quantity": 3})
		require.NoError(t, err)
		err = store.Insert(ctx, record.Record{"id": "eq-2", "name": "Monitor", "quantity": 7})
		require.NoError(t, err)

		set, err := store.Load(ctx)
		require.NoError(t, err)
		require.Equal(t, 2, set.Len())

		byID := map[string]record.Record{}
		for _, rec := range set.Records {
			byID[record.Normalize(rec["id"])] = rec
		}
		assert.Equal(t, "Laptop", record.Normalize(byID["eq-1"]["name"]))
		assert.Equal(t, "7", record.Normalize(byID["eq-2"]["quantity"]))
	})

	t.Run("Count", func(t *testing.T) {
		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("UpdateTouchesOnlyGivenFields", func(t *testing.T) {
		err := store.Update(ctx, "id", "eq-1", map[string]any{"quantity": 5})
		require.NoError(t, err)

		set, err := store.Load(ctx)
		require.NoError(t, err)
		for _, rec := range set.Records {
			if record.Normalize(rec["id"]) == "eq-1" {
				assert.Equal(t, "5", record.Normalize(rec["quantity"]))
				assert.Equal(t, "Laptop", record.Normalize(rec["name"]))
			}
		}
	})

	t.Run("UpdateMissingRow", func(t *testing.T) {
		err := store.Update(ctx, "id", "eq-404", map[string]any{"quantity": 1})
		assert.Error(t, err)
	})

	t.Run("Columns", func(t *testing.T) {
		columns, err := store.Columns(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"id", "name", "quantity"}, columns)
	})

	t.Run("DeleteAll", func(t *testing.T) {
		deleted, err := store.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestStoreInsertBatch(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)

	recs := make([]record.Record, 0, 250)
	for i := 0; i < 250; i++ {
		recs = append(recs, record.Record{
			"id":       "eq-" + record.Normalize(float64(i)),
			"name":     "Item",
			"quantity": i,
		})
	}
	require.NoError(t, store.InsertBatch(ctx, recs, 100))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(250), count)
}

// mockStore wires the collection store to go-sqlmock so driver-level
// failures can be exercised without a real server.
func mockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewStore(db, Config{Name: "equipment", Table: "equipment"}), mock
}

func TestStoreLoadQueryError(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectQuery("SELECT \\* FROM `equipment`").
		WillReturnError(assert.AnError)

	_, err := store.Load(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCountQueryError(t *testing.T) {
	store, mock := mockStore(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `equipment`").
		WillReturnError(assert.AnError)

	_, err := store.Count(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
