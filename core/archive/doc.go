// Package archive persists and retrieves CSV snapshots of inventory
// collections.
//
// Snapshots are organised into seven weekday folders (monday..sunday, with a
// sunday-first display order). One snapshot consists of one CSV file per
// collection plus a JSON descriptor carrying the timestamp, per-file record
// counts and SHA-256 hashes, and a combined integrity hash over the whole
// snapshot.
//
// # Layout
//
//	<root>/monday/equipment_backup_20250301_120000.csv
//	<root>/monday/select_options_backup_20250301_120000.csv
//	<root>/monday/backup_metadata_20250301_120000.json
//
// # Backends
//
// The Store interface has two implementations: a local filesystem store and
// an S3-compatible store built on the minio client in core/storage. Both
// support optional gzip compression of the CSV payloads; hashes are always
// computed over the uncompressed CSV bytes so verification is independent of
// the compression setting.
//
// # Decoding
//
// Snapshot files are written as UTF-8, but files produced by older exports
// may carry Windows-1252 or Latin-1 bytes. DecodeSet retries through that
// encoding chain and also drops stray index columns ("index", "Unnamed: 0",
// bare short digit headers) that flat exports tend to accumulate.
package archive
