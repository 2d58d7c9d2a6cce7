package reconcile

import (
	"context"
	"errors"

	"inventory-vault/core/record"
)

// Applier is the write side of a live collection. core/collection.Store
// satisfies it; tests substitute their own.
type Applier interface {
	// Insert writes one full record.
	Insert(ctx context.Context, rec record.Record) error

	// Update writes changes to the record whose field equals key.
	Update(ctx context.Context, field string, key any, changes map[string]any) error
}

// ApplyOptions gates the apply step.
type ApplyOptions struct {
	// DryRun suppresses all writes regardless of Confirmed.
	DryRun bool

	// Confirmed indicates the operator explicitly approved the plan.
	// Without it nothing is written.
	Confirmed bool
}

// ApplyFailure records one per-record write that was rejected by the store.
// The batch continues past failures; partial success is reported, never
// swallowed.
type ApplyFailure struct {
	// Key is the identifier value of the failing record.
	Key string `json:"key"`

	// Op is "insert" or "update".
	Op string `json:"op"`

	// Err is the store's error message.
	Err string `json:"error"`
}

// Result summarizes one apply run.
type Result struct {
	// Inserted counts successful inserts.
	Inserted int `json:"inserted"`

	// Updated counts successful updates.
	Updated int `json:"updated"`

	// Failed counts rejected writes.
	Failed int `json:"failed"`

	// Failures lists every rejected write.
	Failures []ApplyFailure `json:"failures,omitempty"`
}

// Apply executes a plan against a target store: one insert per Inserts entry,
// one targeted update per Updates entry. Updates write only the diff's
// fields, keyed by the plan's identifier, so the apply outcome is exactly
// what the preview predicted.
//
// Per-record failures are collected into the result and the batch continues;
// the error return is reserved for total failures (nil target, unconfirmed
// or cancelled run). No multi-record transaction is attempted: each write is
// atomic on its own, per the host store's guarantees.
func Apply(ctx context.Context, plan *Plan, target Applier, opts ApplyOptions) (*Result, error) {
	if plan == nil {
		return nil, errors.New("apply: nil plan")
	}
	if target == nil {
		return nil, errors.New("apply: nil target store")
	}

	result := &Result{}

	// Gate: a plan is only ever applied after explicit confirmation.
	if opts.DryRun || !opts.Confirmed {
		return result, nil
	}

	for _, rec := range plan.Inserts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := target.Insert(ctx, rec); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ApplyFailure{
				Key: record.Normalize(rec[plan.Identifier]),
				Op:  "insert",
				Err: err.Error(),
			})
			continue
		}
		result.Inserted++
	}

	for _, u := range plan.Updates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		key := u.Backup[plan.Identifier]
		changes := make(map[string]any, len(u.Diff))
		for field, change := range u.Diff {
			changes[field] = change.New
		}
		if err := target.Update(ctx, plan.Identifier, key, changes); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ApplyFailure{
				Key: record.Normalize(key),
				Op:  "update",
				Err: err.Error(),
			})
			continue
		}
		result.Updated++
	}

	return result, nil
}
