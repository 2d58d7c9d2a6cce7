package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"inventory-vault/core/archive"
	"inventory-vault/core/collection"
	"inventory-vault/core/config"
	"inventory-vault/core/database"
	"inventory-vault/core/logger"
	"inventory-vault/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every CLI command needs: loaded configuration, a
// logger, the archive store and the parsed collection list. The database is
// connected separately since listing and verification work without one.
type runtime struct {
	cfg         *config.Config
	logger      *zap.Logger
	store       archive.Store
	collections []collection.Config
}

// newRuntime loads configuration and wires the archive store.
func newRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if !cfg.Archive.IsValidBackend() {
		return nil, fmt.Errorf("invalid archive backend %q", cfg.Archive.Backend)
	}

	// The storage client only matters for the s3 backend; the filesystem
	// backend must work without any object-storage configuration.
	var client storage.Client
	if cfg.Archive.Backend == archive.BackendS3 {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	store, err := archive.NewStore(cfg.Archive, client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}

	collections, err := collection.ParseList(cfg.Archive.Collections)
	if err != nil {
		return nil, fmt.Errorf("invalid collections config: %w", err)
	}

	return &runtime{cfg: cfg, logger: l, store: store, collections: collections}, nil
}

// connectDB opens the live database. Commands that write require it;
// the caller decides whether a failure is fatal.
func (r *runtime) connectDB() (*gorm.DB, error) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(autoConfirm bool) bool {
	if autoConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm destructive actions: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
