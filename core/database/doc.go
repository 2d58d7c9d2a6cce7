// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to
// properly configure MySQL connections (production) and sqlite connections
// (tests and small single-host deployments) based on the application's
// configuration.
//
// # Connect
//
// The generic Connect function establishes a connection for the configured
// driver. It is agnostic to the inventory schema: the collection layer works
// on raw rows, so no GORM models are required.
//
// # Schema Inspection
//
// The package includes tools to inspect table schemas, which the collection
// layer uses to report column order without loading any rows. It abstracts
// over MySQL's SHOW COLUMNS and sqlite's PRAGMA table_info.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "equipment")
package database
