package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "warehouse.GO/model/entity/warehouse"
	"warehouse.GO/service/allocation"
)

// AllocationStore is the gorm implementation of allocation.Store. Build it on
// the transaction handle so every change commits together.
type AllocationStore struct {
	db *gorm.DB
}

var _ allocation.Store = (*AllocationStore)(nil)

func NewAllocationStore(db *gorm.DB) *AllocationStore {
	return &AllocationStore{db: db}
}

func (s *AllocationStore) LocationsByCode(ctx context.Context, excludeID *uint) ([]entity.Location, error) {
	var locs []entity.Location
	q := s.db.WithContext(ctx).Order("code ASC")
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	err := q.Find(&locs).Error
	return locs, err
}

func (s *AllocationStore) AvailableVolume(ctx context.Context, locationID uint) (decimal.Decimal, error) {
	var loc entity.Location
	if err := s.db.WithContext(ctx).Select("id, capacity_volume").First(&loc, locationID).Error; err != nil {
		return decimal.Zero, err
	}
	used, err := usedVolumes(ctx, s.db, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return loc.CapacityVolume.Sub(used[locationID]), nil
}

func (s *AllocationStore) SaveBatchQuantity(ctx context.Context, batch *entity.Batch) error {
	return s.db.WithContext(ctx).Model(&entity.Batch{}).
		Where("id = ?", batch.ID).
		Update("quantity_units", batch.QuantityUnits).Error
}

func (s *AllocationStore) AddUnits(ctx context.Context, batchID, locationID uint, units int) error {
	row := entity.BatchLocation{BatchID: batchID, LocationID: locationID, QuantityUnits: units}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "batch_id"}, {Name: "location_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity_units": gorm.Expr("batch_location.quantity_units + ?", units),
		}),
	}).Create(&row).Error
}

func (s *AllocationStore) FindBatchLocation(ctx context.Context, batchID, locationID uint) (*entity.BatchLocation, error) {
	var row entity.BatchLocation
	err := s.db.WithContext(ctx).Preload("Location").
		Where("batch_id = ? AND location_id = ?", batchID, locationID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *AllocationStore) BatchLocationsByQuantity(ctx context.Context, batchID uint) ([]entity.BatchLocation, error) {
	var rows []entity.BatchLocation
	err := s.db.WithContext(ctx).
		Joins("Location").
		Where("batch_location.batch_id = ?", batchID).
		Order("batch_location.quantity_units DESC").
		Order("Location.code ASC").
		Find(&rows).Error
	return rows, err
}

func (s *AllocationStore) DrainBatchLocation(ctx context.Context, row *entity.BatchLocation, units int) error {
	left := row.QuantityUnits - units
	db := s.db.WithContext(ctx)
	if left <= 0 {
		if err := db.Delete(&entity.BatchLocation{}, row.ID).Error; err != nil {
			return fmt.Errorf("delete batch location %d: %w", row.ID, err)
		}
		row.QuantityUnits = 0
		return nil
	}
	if err := db.Model(&entity.BatchLocation{}).Where("id = ?", row.ID).
		Update("quantity_units", left).Error; err != nil {
		return err
	}
	row.QuantityUnits = left
	return nil
}
