package warehouse

import (
	"time"

	"gorm.io/gorm"

	entity "warehouse.GO/model/entity/warehouse"
)

type MovementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) *MovementRepository {
	return &MovementRepository{db: db}
}

func (r *MovementRepository) Create(m *entity.Movement) error {
	return r.db.Omit("Batch", "Location").Create(m).Error
}

// ItemMovementCount is one row of the popular items ranking.
type ItemMovementCount struct {
	ItemID        uint   `json:"item_id"`
	Name          string `json:"name"`
	SKUCode       string `json:"sku_code"`
	MovementCount int64  `json:"movement_count"`
}

// PopularItems ranks items by how many movements touched their batches.
func (r *MovementRepository) PopularItems(limit int) ([]ItemMovementCount, error) {
	var out []ItemMovementCount
	err := r.db.Table("movement AS m").
		Select("i.id AS item_id, i.name, i.sku_code, COUNT(m.id) AS movement_count").
		Joins("JOIN batch b ON b.id = m.batch_id").
		Joins("JOIN item i ON i.id = b.item_id").
		Group("i.id, i.name, i.sku_code").
		Order("movement_count DESC").Order("i.name ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// ListByBatch returns a batch's movements, newest first.
func (r *MovementRepository) ListByBatch(batchID uint, limit int) ([]entity.Movement, error) {
	var out []entity.Movement
	q := r.db.Preload("Location").Where("batch_id = ?", batchID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountSince counts movements created at or after since.
func (r *MovementRepository) CountSince(since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&entity.Movement{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}
