package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"inventory-vault/core/archive"
	"inventory-vault/core/reconcile"
	"inventory-vault/core/record"
)

// Standalone merge debugger: reconcile two CSV files without a database and
// print the resulting plan. Useful for checking what a restore would do to a
// table exported by hand.
//
// Usage: debug_merge [-identifier col] [-limit n] <backup.csv> <live.csv>
func main() {
	identifier := flag.String("identifier", "", "identifier column override (default: inferred)")
	limit := flag.Int("limit", 10, "preview sample limit")
	out := flag.String("out", "", "write the full plan as JSON to this file")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: debug_merge [-identifier col] [-limit n] [-out plan.json] <backup.csv> <live.csv>")
		os.Exit(2)
	}

	backup := loadCSV(flag.Arg(0))
	live := loadCSV(flag.Arg(1))

	fmt.Printf("=== INPUT ===\n")
	fmt.Printf("backup: %s (%d records, columns %v)\n", flag.Arg(0), backup.Len(), backup.Columns)
	fmt.Printf("live:   %s (%d records, columns %v)\n", flag.Arg(1), live.Len(), live.Columns)

	plan, err := reconcile.Reconcile(backup, live, reconcile.Options{
		Collection: "debug",
		Identifier: *identifier,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("\n=== PLAN (joined on %s) ===\n", plan.Identifier)
	s := plan.Summary
	fmt.Printf("inserts: %d, updates: %d, unchanged: %d\n", s.Inserts, s.Updates, s.Unchanged)
	fmt.Printf("duplicate keys: %d, missing identifiers: %d\n", s.DuplicateKeys, s.MissingIdentifiers)

	for _, w := range plan.Warnings {
		fmt.Printf("warning [%s] %s %s\n", w.Kind, w.Key, w.Detail)
	}

	pv := plan.Preview(*limit)
	for _, sample := range pv.UpdateSamples {
		fmt.Printf("update %s:\n", sample.Key)
		for field, change := range sample.Diff {
			fmt.Printf("  %s: %v -> %v\n", field, change.Old, change.New)
		}
	}
	for _, rec := range pv.InsertSamples {
		fmt.Printf("insert %v\n", rec)
	}

	if *out != "" {
		data, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*out, data, 0644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("\nFull plan written to %s\n", *out)
	}
}

func loadCSV(path string) *record.Set {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	set, err := archive.DecodeSet(f)
	if err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}
	return set
}
