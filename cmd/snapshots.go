package cmd

import (
	"context"
	"fmt"

	"inventory-vault/feature/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCollection string

// snapshotsCmd is the parent command for archive inspection.
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List and inspect archived snapshots",
	Long: `List archived snapshots grouped by weekday, verify their integrity
hashes, compare two snapshots or prune expired ones.

Examples:
  # List everything
  snapshots

  # Verify one snapshot
  snapshots verify monday 20250303_120000

  # Compare one collection between two snapshots of the same day
  snapshots compare monday 20250303_100000 20250303_120000 --collection equipment

  # Remove snapshots older than the retention window
  snapshots prune`,
	RunE: runSnapshotsList,
}

var snapshotsVerifyCmd = &cobra.Command{
	Use:   "verify <day> <stamp>",
	Short: "Verify a snapshot's integrity hashes",
	Args:  cobra.ExactArgs(2),
	RunE:  runSnapshotsVerify,
}

var snapshotsCompareCmd = &cobra.Command{
	Use:   "compare <day> <from> <to>",
	Short: "Compare one collection between two snapshots",
	Args:  cobra.ExactArgs(3),
	RunE:  runSnapshotsCompare,
}

var snapshotsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove snapshots older than the retention window",
	RunE:  runSnapshotsPrune,
}

func init() {
	snapshotsCompareCmd.Flags().StringVar(&compareCollection, "collection", "", "Collection to compare (required)")
	_ = snapshotsCompareCmd.MarkFlagRequired("collection")

	snapshotsCmd.AddCommand(snapshotsVerifyCmd)
	snapshotsCmd.AddCommand(snapshotsCompareCmd)
	snapshotsCmd.AddCommand(snapshotsPruneCmd)
	RootCmd.AddCommand(snapshotsCmd)
}

// snapshotService builds the backup service without a database: listing,
// verification and comparison only read the archive.
func snapshotService() (*backup.Service, *zap.Logger, error) {
	rt, err := newRuntime()
	if err != nil {
		return nil, nil, err
	}
	return backup.NewService(rt.cfg.Archive, rt.store, nil, rt.collections, rt.logger), rt.logger, nil
}

func runSnapshotsList(cmd *cobra.Command, args []string) error {
	svc, _, err := snapshotService()
	if err != nil {
		return err
	}

	groups, err := svc.List(context.Background())
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("No snapshots found.")
		return nil
	}

	for _, group := range groups {
		fmt.Printf("%s:\n", group.Day)
		for _, desc := range group.Snapshots {
			fmt.Printf("  %s  (%d collections, hash %.12s…)\n",
				desc.Stamp, len(desc.Collections), desc.BackupHash)
			for _, cf := range desc.Collections {
				fmt.Printf("    %-20s %6d records  %s\n", cf.Collection, cf.Records, cf.File)
			}
		}
	}
	return nil
}

func runSnapshotsVerify(cmd *cobra.Command, args []string) error {
	svc, l, err := snapshotService()
	if err != nil {
		return err
	}
	day, stamp := args[0], args[1]

	report, err := svc.Verify(context.Background(), day, stamp)
	if err != nil {
		return err
	}

	for _, f := range report.Files {
		status := "OK"
		if !f.OK {
			status = "CORRUPT"
		}
		fmt.Printf("  %-8s %-20s %s\n", status, f.Collection, f.File)
		if f.Error != "" {
			fmt.Printf("           %s\n", f.Error)
		}
	}
	if !report.OK {
		l.Error("Snapshot verification failed",
			zap.String("day", day),
			zap.String("stamp", stamp),
			zap.Bool("combined_hash_ok", report.CombinedOK))
		return fmt.Errorf("snapshot %s/%s failed verification", day, stamp)
	}

	fmt.Printf("Snapshot %s/%s verified: all hashes match.\n", day, stamp)
	return nil
}

func runSnapshotsCompare(cmd *cobra.Command, args []string) error {
	svc, _, err := snapshotService()
	if err != nil {
		return err
	}
	day, from, to := args[0], args[1], args[2]

	diff, err := svc.Compare(context.Background(), day, from, to, compareCollection, 0)
	if err != nil {
		return err
	}

	fmt.Printf("Comparing %s: %s → %s (joined on %s)\n", compareCollection, from, to, diff.Identifier)
	fmt.Printf("  records: %d → %d\n", diff.OlderCount, diff.NewerCount)
	fmt.Printf("  added: %d, removed: %d, changed: %d\n", diff.Added, diff.Removed, diff.Changed)
	if len(diff.NewColumns) > 0 {
		fmt.Printf("  new columns: %v\n", diff.NewColumns)
	}
	if len(diff.RemovedColumns) > 0 {
		fmt.Printf("  removed columns: %v\n", diff.RemovedColumns)
	}
	for _, sample := range diff.ChangedSamples {
		fmt.Printf("  changed %s:\n", sample.Key)
		for field, change := range sample.Diff {
			fmt.Printf("    %s: %v → %v\n", field, change.Old, change.New)
		}
	}
	return nil
}

func runSnapshotsPrune(cmd *cobra.Command, args []string) error {
	svc, l, err := snapshotService()
	if err != nil {
		return err
	}

	removed, err := svc.Prune(context.Background())
	if err != nil {
		return err
	}
	l.Info("Pruning completed", zap.Int("removed", removed))
	return nil
}
