package warehouse

import (
	"context"

	"gorm.io/gorm"

	entity "warehouse.GO/model/entity/warehouse"
)

type LocationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// ListWithUsage returns every location by code with UsedVolume filled.
func (r *LocationRepository) ListWithUsage(ctx context.Context) ([]entity.Location, error) {
	var locs []entity.Location
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&locs).Error; err != nil {
		return nil, err
	}
	used, err := usedVolumes(ctx, r.db)
	if err != nil {
		return nil, err
	}
	for i := range locs {
		locs[i].UsedVolume = used[locs[i].ID]
	}
	return locs, nil
}

func (r *LocationRepository) FindByID(id uint) (*entity.Location, error) {
	var loc entity.Location
	if err := r.db.First(&loc, id).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) FindByCode(code string) (*entity.Location, error) {
	var loc entity.Location
	if err := r.db.Where("code = ?", code).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *LocationRepository) ExistsCode(code string) (bool, error) {
	var n int64
	err := r.db.Model(&entity.Location{}).Where("code = ?", code).Count(&n).Error
	return n > 0, err
}

func (r *LocationRepository) Create(loc *entity.Location) error {
	return r.db.Create(loc).Error
}

// Contents returns the batch rows stored in a location, fullest first.
func (r *LocationRepository) Contents(locationID uint) ([]entity.BatchLocation, error) {
	var rows []entity.BatchLocation
	err := r.db.Preload("Batch.Item").
		Where("location_id = ?", locationID).
		Order("quantity_units DESC").
		Find(&rows).Error
	return rows, err
}
