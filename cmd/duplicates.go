package cmd

import (
	"context"
	"fmt"

	"inventory-vault/feature/restore"

	"github.com/spf13/cobra"
)

var duplicatesCollection string

// duplicatesCmd reports live records sharing an identifier value.
var duplicatesCmd = &cobra.Command{
	Use:   "duplicates",
	Short: "Report live records sharing an identifier value",
	Long: `Scan one live collection for records whose normalized identifier value
is shared by more than one row. Duplicates matter because snapshot matching
keeps only the last record per key. Read-only.`,
	RunE: runDuplicates,
}

func init() {
	duplicatesCmd.Flags().StringVar(&duplicatesCollection, "collection", "", "Collection to scan (required)")
	_ = duplicatesCmd.MarkFlagRequired("collection")
	RootCmd.AddCommand(duplicatesCmd)
}

func runDuplicates(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	db, err := rt.connectDB()
	if err != nil {
		return err
	}

	svc := restore.NewService(rt.cfg.Archive, rt.store, db, rt.collections, rt.logger)

	report, err := svc.Duplicates(context.Background(), duplicatesCollection)
	if err != nil {
		return err
	}

	fmt.Printf("Collection %s: %d records, keyed on %s.\n",
		report.Collection, report.TotalRecords, report.Identifier)
	if len(report.Groups) == 0 {
		fmt.Println("No duplicate identifiers found.")
		return nil
	}

	fmt.Printf("%d duplicated identifier(s):\n", len(report.Groups))
	for _, group := range report.Groups {
		fmt.Printf("  %s (%d records):\n", group.Key, group.Count)
		for _, rec := range group.Records {
			fmt.Printf("    %v\n", rec)
		}
	}
	return nil
}
