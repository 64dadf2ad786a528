package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sportloan.GO/config"
	equipmentService "sportloan.GO/service/equipment"
)

var (
	importFile   string
	importBatch  int
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "equipment:import",
	Short: "Import equipment items from CSV, keyed by catalog number",
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(importFile)
		if err != nil {
			fmt.Printf("Failed to open CSV: %v\n", err)
			return
		}
		defer f.Close()

		db, err := config.NewDB()
		if err != nil {
			fmt.Printf("Database connection failed: %v\n", err)
			return
		}

		res, err := equipmentService.ImportItems(db, f, equipmentService.ImportOptions{
			BatchSize: importBatch,
			DryRun:    importDryRun,
		})
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}

		for _, w := range res.Warnings {
			fmt.Printf("  [warn] %s\n", w)
		}

		fmt.Printf(`
=== Import Report ===
CSV rows:   %d
Created:    %d
Updated:    %d
Skipped:    %d
Dry run:    %v
Total time: %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped,
			importDryRun, res.TotalTime.Round(time.Millisecond))
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().IntVar(&importBatch, "batch-size", 200, "Batch size for DB operations")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and report without writing")
	rootCmd.AddCommand(importCmd)
}
