package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"warehouse.GO/core/cache"
	"warehouse.GO/service/report"
)

var exportFile string

var inventoryExportCmd = &cobra.Command{
	Use:   "inventory:export",
	Short: "Write the inventory summary to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportFile == "" {
			exportFile = fmt.Sprintf("inventory-%s.xlsx", time.Now().Format("20060102"))
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		f, err := os.Create(exportFile)
		if err != nil {
			return err
		}
		if err := report.NewService(db, cache.Default()).ExportInventoryXLSX(context.Background(), f); err != nil {
			f.Close()
			return fmt.Errorf("export failed: %w", err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", exportFile)
		return nil
	},
}

func init() {
	inventoryExportCmd.Flags().StringVarP(&exportFile, "out", "o", "", "Output path (default inventory-YYYYMMDD.xlsx)")
	rootCmd.AddCommand(inventoryExportCmd)
}
