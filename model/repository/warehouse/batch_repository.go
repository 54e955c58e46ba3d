package warehouse

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	entity "warehouse.GO/model/entity/warehouse"
)

type BatchRepository struct {
	db *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// FindByID loads the batch with its item.
func (r *BatchRepository) FindByID(id uint) (*entity.Batch, error) {
	var b entity.Batch
	if err := r.db.Preload("Item").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByBarcode loads the batch with its item and location rows.
func (r *BatchRepository) FindByBarcode(barcode string) (*entity.Batch, error) {
	var b entity.Batch
	err := r.db.Preload("Item.Category").
		Preload("Locations", func(db *gorm.DB) *gorm.DB {
			return db.Order("quantity_units DESC")
		}).
		Preload("Locations.Location").
		Where("barcode = ?", barcode).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepository) FindByItemAndNumber(itemID uint, number string) (*entity.Batch, error) {
	var b entity.Batch
	err := r.db.Preload("Item").Where("item_id = ? AND batch_number = ?", itemID, number).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BatchRepository) Create(b *entity.Batch) error {
	return r.db.Omit("Item", "Locations", "Movements").Create(b).Error
}

// UpdateDetails writes the dated fields and barcode, leaving the quantity alone.
func (r *BatchRepository) UpdateDetails(b *entity.Batch) error {
	return r.db.Model(&entity.Batch{}).Where("id = ?", b.ID).Updates(map[string]any{
		"production_date": b.ProductionDate,
		"expiry_date":     b.ExpiryDate,
		"barcode":         b.Barcode,
	}).Error
}

func (r *BatchRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.Batch{}).Count(&n).Error
	return n, err
}

// OnHandBySKU sums batch totals for the item with sku. found is false when no
// such item exists.
func (r *BatchRepository) OnHandBySKU(sku string) (units int64, found bool, err error) {
	var row struct {
		Items int64
		Units int64
	}
	err = r.db.Table("item AS i").
		Select("COUNT(DISTINCT i.id) AS items, COALESCE(SUM(b.quantity_units), 0) AS units").
		Joins("LEFT JOIN batch b ON b.item_id = i.id").
		Where("i.sku_code = ?", sku).
		Scan(&row).Error
	return row.Units, row.Items > 0, err
}

// CountExpiringBy counts batches with an expiry date on or before cutoff.
func (r *BatchRepository) CountExpiringBy(cutoff time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&entity.Batch{}).
		Where("expiry_date IS NOT NULL AND expiry_date <= ?", entity.Date(cutoff)).
		Count(&n).Error
	return n, err
}

// ExpiringBy lists stocked batches with an expiry on or before cutoff, soonest first.
func (r *BatchRepository) ExpiringBy(cutoff time.Time) ([]entity.Batch, error) {
	var batches []entity.Batch
	err := r.db.Preload("Item").
		Where("expiry_date IS NOT NULL AND expiry_date <= ? AND quantity_units > 0", entity.Date(cutoff)).
		Order("expiry_date ASC").Order("id ASC").
		Find(&batches).Error
	return batches, err
}

// AllWithLocations loads every batch with its item and location rows.
func (r *BatchRepository) AllWithLocations() ([]entity.Batch, error) {
	var batches []entity.Batch
	err := r.db.Preload("Item").Preload("Locations.Location").Order("id ASC").Find(&batches).Error
	return batches, err
}

// Drift is a batch whose total disagrees with its location rows.
type Drift struct {
	BatchID       uint
	Barcode       string
	QuantityUnits int
	RowUnits      int
}

// FindDrift compares each batch total with the sum of its location rows.
func (r *BatchRepository) FindDrift() ([]Drift, error) {
	var out []Drift
	err := r.db.Table("batch AS b").
		Select("b.id AS batch_id, b.barcode, b.quantity_units, COALESCE(SUM(bl.quantity_units), 0) AS row_units").
		Joins("LEFT JOIN batch_location bl ON bl.batch_id = b.id").
		Group("b.id, b.barcode, b.quantity_units").
		Having("b.quantity_units <> COALESCE(SUM(bl.quantity_units), 0)").
		Order("b.id ASC").
		Scan(&out).Error
	return out, err
}

// ParseDate reads a YYYY-MM-DD string; empty input yields nil.
func ParseDate(s string) (*datatypes.Date, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	d := entity.Date(t)
	return &d, nil
}
