// Package config provides configuration management for inventory-vault.
//
// It utilizes Viper for loading configuration from environment variables
// and a local .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: MySQL/sqlite connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Archive: snapshot backend, retention, backup interval, collections
//   - Log: Logging level and format
//
// Defaults come from `default` struct tags; every key can be overridden by
// an environment variable with the section prefix (ARCHIVE_BACKEND,
// DATABASE_HOST, ...).
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
