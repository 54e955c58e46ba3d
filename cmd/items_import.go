package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"warehouse.GO/config"
	"warehouse.GO/core/cache"
	"warehouse.GO/service/catalog"
	"warehouse.GO/service/search"
)

var (
	importFile        string
	importDefaultUnit string
	importReindex     bool
)

var importCmd = &cobra.Command{
	Use:   "items:import",
	Short: "Import items from CSV (sku,name,unit,packaging_volume,size_text,category,has_shelf_life,description,active)",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open CSV: %w", err)
		}
		defer f.Close()

		db, err := openDB()
		if err != nil {
			return err
		}
		res, err := catalog.ImportItems(db, f, catalog.ImportOptions{DefaultUnit: importDefaultUnit})
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  [warn] %s\n", w)
		}
		fmt.Fprintf(out, `
=== Import Report ===
CSV rows:    %d
Created:     %d
Updated:     %d
Skipped:     %d
Total time:  %s
=====================
`, res.TotalRows, res.Created, res.Updated, res.Skipped, res.TotalTime.Round(time.Millisecond))

		ctx := context.Background()
		cache.Default().DeleteByTag(ctx, cache.TagReports)
		if importReindex {
			s := search.NewFromEnv(db)
			if !s.Enabled() {
				fmt.Fprintln(out, "ELASTICSEARCH_HOST not set, skipping reindex")
				return nil
			}
			n, err := s.Reindex(ctx)
			if err != nil {
				config.LogError(config.GetLogger(), "cmd", "items:import", "reindex", nil, err)
				return err
			}
			fmt.Fprintf(out, "Reindexed %d items\n", n)
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.Flags().StringVar(&importDefaultUnit, "unit", "", "Unit for rows without one (default DEFAULT_UNIT)")
	importCmd.Flags().BoolVar(&importReindex, "reindex", false, "Reindex items in Elasticsearch afterwards")
	importCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(importCmd)
}
