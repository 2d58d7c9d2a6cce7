package archive

// Backend names for Config.Backend.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Config holds configuration for snapshot storage and backup policy.
type Config struct {
	// Backend selects the snapshot store implementation (fs, s3).
	Backend string `mapstructure:"backend" default:"fs"`
	// Dir is the root directory for the filesystem backend.
	Dir string `mapstructure:"dir" default:"restore_data_to_db"`
	// Prefix is the object key prefix for the s3 backend.
	Prefix string `mapstructure:"prefix" default:"backups"`
	// Compress enables gzip compression of snapshot CSV files.
	Compress bool `mapstructure:"compress" default:"false"`
	// RetentionDays is how long snapshots are kept before pruning.
	RetentionDays int `mapstructure:"retention_days" default:"7"`
	// IntervalHours is the minimum spacing between automatic backups.
	IntervalHours int `mapstructure:"interval_hours" default:"1"`
	// Collections is the comma-separated list of collections to snapshot.
	// Each entry is "table" or "table:identifier"; an explicit identifier
	// implies uuid backfill on restore.
	Collections string `mapstructure:"collections" default:"equipment,select_options:option_uuid"`
	// PlanCacheSeconds is the TTL for cached restore plans (0 disables).
	PlanCacheSeconds int `mapstructure:"plan_cache_seconds" default:"0"`
	// SchedulerEnabled starts the background backup ticker with the server.
	SchedulerEnabled bool `mapstructure:"scheduler_enabled" default:"true"`
}

// IsValidBackend checks if the configured backend is valid.
func (c Config) IsValidBackend() bool {
	switch c.Backend {
	case BackendFS, BackendS3:
		return true
	default:
		return false
	}
}
