package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetInventory  = "Inventory"
	sheetNearExpiry = "Near Expiry"
)

// ExportInventoryXLSX writes the inventory summary as an xlsx workbook with an
// inventory sheet and a near-expiry sheet.
func (s *Service) ExportInventoryXLSX(ctx context.Context, w io.Writer) error {
	summary, err := s.InventorySummary(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetInventory); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetNearExpiry); err != nil {
		return err
	}

	headers := []any{"SKU", "Name", "Category", "Size", "Unit", "Total Units", "Near Expiry Units", "Batches", "Locations"}
	if err := f.SetSheetRow(sheetInventory, "A1", &headers); err != nil {
		return err
	}
	for i, it := range summary.Items {
		locs := make([]string, len(it.Locations))
		for j, l := range it.Locations {
			locs[j] = fmt.Sprintf("%s:%d", l.Code, l.Units)
		}
		row := []any{it.SKUCode, it.Name, it.CategoryName, it.SizeText, it.Unit, it.TotalUnits, it.NearExpiryUnits, it.BatchCount, strings.Join(locs, ", ")}
		if err := f.SetSheetRow(sheetInventory, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	expHeaders := []any{"SKU", "Name", "Batch", "Barcode", "Expiry Date", "Units"}
	if err := f.SetSheetRow(sheetNearExpiry, "A1", &expHeaders); err != nil {
		return err
	}
	for i, b := range summary.NearExpiry {
		expiry := ""
		if b.ExpiryDate != nil {
			expiry = time.Time(*b.ExpiryDate).Format("2006-01-02")
		}
		row := []any{b.Item.SKUCode, b.Item.Name, b.BatchNumber, b.Barcode, expiry, b.QuantityUnits}
		if err := f.SetSheetRow(sheetNearExpiry, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}
