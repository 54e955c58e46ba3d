package warehouse

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type volumeRow struct {
	LocationID      uint
	QuantityUnits   int64
	PackagingVolume decimal.Decimal
}

// usedVolumes sums quantity x packaging volume per location. Summing happens in
// Go so decimal volumes do not pick up float error from SQL SUM.
func usedVolumes(ctx context.Context, db *gorm.DB, locationIDs ...uint) (map[uint]decimal.Decimal, error) {
	q := db.WithContext(ctx).Table("batch_location AS bl").
		Select("bl.location_id, bl.quantity_units, i.packaging_volume").
		Joins("JOIN batch b ON b.id = bl.batch_id").
		Joins("JOIN item i ON i.id = b.item_id")
	if len(locationIDs) > 0 {
		q = q.Where("bl.location_id IN ?", locationIDs)
	}
	var rows []volumeRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	used := make(map[uint]decimal.Decimal, len(rows))
	for _, r := range rows {
		used[r.LocationID] = used[r.LocationID].Add(decimal.NewFromInt(r.QuantityUnits).Mul(r.PackagingVolume))
	}
	return used, nil
}
