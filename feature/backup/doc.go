// Package backup creates and manages inventory snapshots: interval-gated
// creation, weekday-grouped listing, previews, integrity verification,
// snapshot comparison and retention pruning. It exposes the operations over
// HTTP and runs the background scheduler.
package backup
