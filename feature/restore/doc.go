// Package restore brings a snapshot back into the live database. The default
// mode is smart merge: the snapshot is reconciled against the live table into
// inserts, updates and unchanged records, a bounded preview is shown, and the
// plan is applied only after explicit confirmation. Replace mode wipes the
// table and reinserts the snapshot. A read-only duplicates report surfaces
// live records sharing an identifier value.
package restore
