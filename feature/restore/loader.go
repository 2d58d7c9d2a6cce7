package restore

import (
	"inventory-vault/core/archive"
	"inventory-vault/core/collection"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new restore feature.
func NewFeature(cfg archive.Config, store archive.Store, db *gorm.DB, collections []collection.Config, logger *zap.Logger) *Feature {
	svc := NewService(cfg, store, db, collections, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for the CLI.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "restore"
}

// IsEnabled checks if the feature is enabled. Restoring needs both the
// archive and a live database.
func (f *Feature) IsEnabled() bool {
	return f.service.store != nil && f.service.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
