package warehouse

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	entity "warehouse.GO/model/entity/warehouse"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListWithActiveItems returns categories by (sort order, name) with their
// active items preloaded by name.
func (r *CategoryRepository) ListWithActiveItems() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Where("active = ?", true).Order("name ASC")
	}).Order("sort_order ASC").Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) FindBySlug(slug string) (*entity.Category, error) {
	var c entity.Category
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FirstOrCreateByName finds a category by name and creates it (with a derived
// slug) when missing.
func (r *CategoryRepository) FirstOrCreateByName(name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	var c entity.Category
	err := r.db.Where("name = ?", name).First(&c).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = entity.Category{Name: name, Slug: Slugify(name)}
	if err := r.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
