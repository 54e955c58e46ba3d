package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"warehouse.GO/config"
	entity "warehouse.GO/model/entity/warehouse"
	repo "warehouse.GO/model/repository/warehouse"
)

// ImportOptions configures an item import run.
type ImportOptions struct {
	DefaultUnit string
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

var itemColumns = map[string]bool{
	"sku": true, "name": true, "unit": true, "packaging_volume": true,
	"size_text": true, "category": true, "has_shelf_life": true,
	"description": true, "active": true,
}

// ImportItems reads CSV data from r and upserts items by SKU. Rows with a
// missing SKU or name, or an unparsable volume, are skipped with a warning.
func ImportItems(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	if opts.DefaultUnit == "" {
		opts.DefaultUnit = config.App().DefaultUnit
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := colIndex["sku"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'sku' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if !itemColumns[strings.ToLower(strings.TrimSpace(h))] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	get := func(row []string, col string) (string, bool) {
		i, ok := colIndex[col]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		items := repo.NewItemRepository(tx)
		cats := repo.NewCategoryRepository(tx)
		categoryIDs := map[string]uint{}

		for n, row := range rows {
			line := n + 2
			sku, _ := get(row, "sku")
			name, _ := get(row, "name")
			if sku == "" || name == "" {
				result.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: sku and name are required", line))
				continue
			}

			item := &entity.Item{SKUCode: sku, Name: name, Unit: opts.DefaultUnit, PackagingVolume: decimal.NewFromInt(1), HasShelfLife: true, Active: true}
			if v, ok := get(row, "unit"); ok && v != "" {
				item.Unit = v
			}
			if v, ok := get(row, "packaging_volume"); ok && v != "" {
				vol, err := decimal.NewFromString(v)
				if err != nil || vol.IsNegative() {
					result.Skipped++
					result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: invalid packaging_volume %q", line, v))
					continue
				}
				item.PackagingVolume = vol
			}
			if v, ok := get(row, "size_text"); ok {
				item.SizeText = v
			}
			if v, ok := get(row, "description"); ok {
				item.Description = v
			}
			if v, ok := get(row, "has_shelf_life"); ok && v != "" {
				item.HasShelfLife = parseBool(v, true)
			}
			if v, ok := get(row, "active"); ok && v != "" {
				item.Active = parseBool(v, true)
			}
			if v, ok := get(row, "category"); ok && v != "" {
				id, seen := categoryIDs[v]
				if !seen {
					cat, err := cats.FirstOrCreateByName(v)
					if err != nil {
						return fmt.Errorf("line %d: category %q: %w", line, v, err)
					}
					id = cat.ID
					categoryIDs[v] = id
				}
				item.CategoryID = &id
			}

			created, err := items.UpsertBySKU(item)
			if err != nil {
				return fmt.Errorf("line %d: save %s: %w", line, sku, err)
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.TotalTime = time.Since(start)
	return result, nil
}

func parseBool(s string, def bool) bool {
	switch strings.ToLower(s) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}
