package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	entity "warehouse.GO/model/entity/warehouse"
)

type LocationUnits struct {
	ItemID uint   `json:"-"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Units  int64  `json:"units"`
}

type ItemSummary struct {
	ItemID          uint            `json:"item_id"`
	Name            string          `json:"name"`
	SKUCode         string          `json:"sku_code"`
	Unit            string          `json:"unit"`
	SizeText        string          `json:"size_text"`
	CategoryName    string          `json:"category_name"`
	TotalUnits      int64           `json:"total_units"`
	NearExpiryUnits int64           `json:"near_expiry_units"`
	BatchCount      int64           `json:"batch_count"`
	Locations       []LocationUnits `json:"locations" gorm:"-"`
}

type InventorySummary struct {
	Threshold  time.Time      `json:"threshold"`
	Items      []ItemSummary  `json:"items"`
	NearExpiry []entity.Batch `json:"near_expiry"`
}

// InventorySummary aggregates stock per item, with per-location units and the
// near-expiry batch list.
func (s *Service) InventorySummary(ctx context.Context) (*InventorySummary, error) {
	threshold := s.Threshold()
	out := &InventorySummary{Threshold: threshold}
	db := s.db.WithContext(ctx)

	var locRows []LocationUnits
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.Table("batch AS b").
			Select(`i.id AS item_id, i.name, i.sku_code, i.unit, COALESCE(i.size_text, '') AS size_text,
				COALESCE(c.name, '') AS category_name,
				SUM(b.quantity_units) AS total_units,
				SUM(CASE WHEN b.expiry_date IS NOT NULL AND b.expiry_date <= ? THEN b.quantity_units ELSE 0 END) AS near_expiry_units,
				COUNT(b.id) AS batch_count`, entity.Date(threshold)).
			Joins("JOIN item i ON i.id = b.item_id").
			Joins("LEFT JOIN category c ON c.id = i.category_id").
			Group("i.id, i.name, i.sku_code, i.unit, i.size_text, c.name").
			Order("i.name ASC").
			Scan(&out.Items).Error
	})
	g.Go(func() error {
		return db.Table("batch_location AS bl").
			Select("b.item_id, l.code, l.name, SUM(bl.quantity_units) AS units").
			Joins("JOIN batch b ON b.id = bl.batch_id").
			Joins("JOIN location l ON l.id = bl.location_id").
			Group("b.item_id, l.code, l.name").
			Order("l.code ASC").
			Scan(&locRows).Error
	})
	g.Go(func() (err error) {
		out.NearExpiry, err = s.NearExpiry(ctx, s.days)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byItem := make(map[uint][]LocationUnits)
	for _, r := range locRows {
		byItem[r.ItemID] = append(byItem[r.ItemID], r)
	}
	for i := range out.Items {
		out.Items[i].Locations = byItem[out.Items[i].ItemID]
		if out.Items[i].Locations == nil {
			out.Items[i].Locations = []LocationUnits{}
		}
	}
	return out, nil
}
