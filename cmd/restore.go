package cmd

import (
	"context"
	"fmt"

	"inventory-vault/core/reconcile"
	"inventory-vault/feature/restore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	restoreDay        string
	restoreStamp      string
	restoreLatest     bool
	restoreCollection string
	restoreMode       string
	restoreDryRun     bool
	restoreYes        bool
)

// restoreCmd restores one snapshot collection into the live database.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a snapshot collection into the live database",
	Long: `Restore one collection from an archived snapshot.

Smart merge (the default) reconciles the snapshot against the live table,
prints a bounded preview of the planned inserts and updates and applies them
after confirmation. Replace mode wipes the table and reinserts the snapshot.

Examples:
  # Preview only (dry-run)
  restore --latest --collection equipment --dry-run

  # Smart merge with interactive confirmation
  restore --day monday --stamp 20250303_120000 --collection equipment

  # Replace mode, auto-confirmed
  restore --latest --collection equipment --mode replace --yes`,
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVar(&restoreDay, "day", "", "Weekday folder of the snapshot")
	restoreCmd.Flags().StringVar(&restoreStamp, "stamp", "", "Snapshot stamp (YYYYMMDD_HHMMSS)")
	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "Use the most recent snapshot")
	restoreCmd.Flags().StringVar(&restoreCollection, "collection", "", "Collection to restore (required)")
	restoreCmd.Flags().StringVar(&restoreMode, "mode", restore.ModeSmartMerge, "Restore mode: smart_merge or replace")
	restoreCmd.Flags().BoolVar(&restoreDryRun, "dry-run", false, "Preview only, write nothing")
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "Auto-confirm destructive actions (non-interactive)")
	_ = restoreCmd.MarkFlagRequired("collection")
	RootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	db, err := rt.connectDB()
	if err != nil {
		return err
	}

	day, stamp := restoreDay, restoreStamp
	if restoreLatest {
		latest, err := rt.store.Latest(ctx)
		if err != nil {
			return fmt.Errorf("no snapshot to restore: %w", err)
		}
		day, stamp = latest.DayOfWeek, latest.Stamp
	}
	if day == "" || stamp == "" {
		return fmt.Errorf("either --latest or both --day and --stamp are required")
	}

	svc := restore.NewService(rt.cfg.Archive, rt.store, db, rt.collections, rt.logger)

	switch restoreMode {
	case restore.ModeSmartMerge:
		return runSmartMerge(ctx, rt.logger, svc, day, stamp)
	case restore.ModeReplace:
		return runReplace(ctx, rt.logger, svc, day, stamp)
	default:
		return fmt.Errorf("unknown mode %q (expected %s or %s)", restoreMode, restore.ModeSmartMerge, restore.ModeReplace)
	}
}

func runSmartMerge(ctx context.Context, l *zap.Logger, svc *restore.Service, day, stamp string) error {
	plan, err := svc.Plan(ctx, day, stamp, restoreCollection)
	if err != nil {
		return fmt.Errorf("failed to plan restore: %w", err)
	}

	printPlanPreview(plan)

	if !plan.HasChanges() {
		l.Info("Live table already matches the snapshot. Nothing to do.")
		return nil
	}
	if restoreDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmDestructiveAction(restoreYes) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	result, err := svc.Apply(ctx, plan, restoreCollection, reconcile.ApplyOptions{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply restore: %w", err)
	}

	l.Info("Restore completed",
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed))
	for _, f := range result.Failures {
		l.Warn("Record rejected",
			zap.String("op", f.Op),
			zap.String("key", f.Key),
			zap.String("error", f.Err))
	}
	return nil
}

func runReplace(ctx context.Context, l *zap.Logger, svc *restore.Service, day, stamp string) error {
	// Show what replace would do before asking.
	gated, err := svc.Replace(ctx, day, stamp, restoreCollection, reconcile.ApplyOptions{DryRun: true})
	if err != nil {
		return err
	}
	fmt.Printf("\nReplace %s from %s/%s: the live table will be wiped and %d snapshot records inserted.\n",
		restoreCollection, day, stamp, gated.SnapshotRecords)

	if restoreDryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if !confirmDestructiveAction(restoreYes) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	result, err := svc.Replace(ctx, day, stamp, restoreCollection, reconcile.ApplyOptions{Confirmed: true})
	if err != nil {
		return fmt.Errorf("replace failed: %w", err)
	}

	l.Info("Replace completed",
		zap.Int64("deleted", result.Deleted),
		zap.Int("inserted", result.Inserted))
	return nil
}

// printPlanPreview prints the bounded plan preview the way the HTTP preview
// reports it.
func printPlanPreview(plan *reconcile.Plan) {
	pv := plan.Preview(0)
	s := pv.Summary

	fmt.Printf("\nRestore plan for %s (joined on %s):\n", pv.Collection, pv.Identifier)
	fmt.Printf("  snapshot records: %d, live records: %d\n", s.BackupRecords, s.LiveRecords)
	fmt.Printf("  inserts: %d, updates: %d, unchanged: %d\n", s.Inserts, s.Updates, s.Unchanged)
	if s.DuplicateKeys > 0 || s.MissingIdentifiers > 0 {
		fmt.Printf("  duplicate keys: %d, missing identifiers: %d\n", s.DuplicateKeys, s.MissingIdentifiers)
	}

	for _, sample := range pv.UpdateSamples {
		fmt.Printf("  update %s:\n", sample.Key)
		for field, change := range sample.Diff {
			fmt.Printf("    %s: %v → %v\n", field, change.Old, change.New)
		}
	}
	if len(pv.InsertSamples) > 0 {
		fmt.Printf("  first inserts:\n")
		for _, rec := range pv.InsertSamples {
			fmt.Printf("    %v\n", rec)
		}
	}
	if extra := s.Updates - len(pv.UpdateSamples); extra > 0 {
		fmt.Printf("  … %d more updates not shown\n", extra)
	}
	if extra := s.Inserts - len(pv.InsertSamples); extra > 0 {
		fmt.Printf("  … %d more inserts not shown\n", extra)
	}
}
