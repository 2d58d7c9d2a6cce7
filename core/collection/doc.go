// Package collection provides generic, schema-agnostic access to the live
// database tables that snapshots are taken from and restored into.
//
// The restore pipeline cannot assume a fixed schema: equipment tables differ
// between deployments and grow columns over time. Store therefore works on
// raw rows (SELECT * with column-order-preserving scanning into records)
// instead of GORM models, and writes through maps so only the fields named in
// a plan's diff are touched.
//
// # Configuration
//
// The set of managed collections comes from one flat config string, e.g.
//
//	equipment,select_options:option_uuid
//
// Each entry is "table" or "table:identifier". An explicit identifier
// bypasses key inference on restore and additionally enables uuid backfill
// for records missing their key, matching the select-options semantics.
package collection
