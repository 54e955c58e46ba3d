package warehouse

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "warehouse.GO/model/entity/warehouse"
)

type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// ItemFilter narrows List. Empty fields are ignored.
type ItemFilter struct {
	Keyword      string
	CategorySlug string
	ActiveOnly   bool
	Limit        int
}

func (r *ItemRepository) FindByID(id uint) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) FindBySKU(sku string) (*entity.Item, error) {
	var item entity.Item
	if err := r.db.Preload("Category").Where("sku_code = ?", sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindBySKUWithBatches loads the item with its batches, newest first.
func (r *ItemRepository) FindBySKUWithBatches(sku string) (*entity.Item, error) {
	var item entity.Item
	err := r.db.Preload("Category").
		Preload("Images").
		Preload("Batches", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC").Order("id DESC")
		}).
		Where("sku_code = ?", sku).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs returns items keyed by id.
func (r *ItemRepository) FindByIDs(ids []uint) (map[uint]entity.Item, error) {
	out := make(map[uint]entity.Item, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []entity.Item
	if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *ItemRepository) List(f ItemFilter) ([]entity.Item, error) {
	q := r.db.Model(&entity.Item{}).Preload("Category").Order("item.name ASC").Order("item.id ASC")
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		like := "%" + kw + "%"
		q = q.Where("item.name LIKE ? OR item.sku_code LIKE ?", like, like)
	}
	if f.CategorySlug != "" {
		q = q.Joins("JOIN category ON category.id = item.category_id").Where("category.slug = ?", f.CategorySlug)
	}
	if f.ActiveOnly {
		q = q.Where("item.active = ?", true)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var items []entity.Item
	err := q.Find(&items).Error
	return items, err
}

func (r *ItemRepository) Create(item *entity.Item) error {
	return r.db.Create(item).Error
}

// Save writes every column of item, leaving associations untouched.
func (r *ItemRepository) Save(item *entity.Item) error {
	return r.db.Omit(clause.Associations).Save(item).Error
}

// UpsertBySKU creates the item, or overwrites the existing row with the same
// SKU. created reports which happened.
func (r *ItemRepository) UpsertBySKU(item *entity.Item) (created bool, err error) {
	existing, err := r.FindBySKU(item.SKUCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, r.db.Create(item).Error
	}
	if err != nil {
		return false, err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	return false, r.db.Omit(clause.Associations).Save(item).Error
}

func (r *ItemRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.Item{}).Count(&n).Error
	return n, err
}
