package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"warehouse.GO/config"
	"warehouse.GO/core/cache"
	entity "warehouse.GO/model/entity/warehouse"
	repo "warehouse.GO/model/repository/warehouse"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateCode = errors.New("location code already exists")
	ErrInvalidInput  = errors.New("invalid input")
)

type Service struct {
	db    *gorm.DB
	cache cache.Store
}

func NewService(db *gorm.DB, c cache.Store) *Service {
	if c == nil {
		c = cache.Default()
	}
	return &Service{db: db, cache: c}
}

// Categories returns every category with its active items.
func (s *Service) Categories(ctx context.Context) ([]entity.Category, error) {
	return repo.NewCategoryRepository(s.db.WithContext(ctx)).ListWithActiveItems()
}

// Locations returns every location with used and available volume.
func (s *Service) Locations(ctx context.Context) ([]entity.Location, error) {
	return repo.NewLocationRepository(s.db).ListWithUsage(ctx)
}

// LocationContents lists what a location holds.
func (s *Service) LocationContents(ctx context.Context, code string) (*entity.Location, []entity.BatchLocation, error) {
	locs := repo.NewLocationRepository(s.db.WithContext(ctx))
	loc, err := locs.FindByCode(code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: location %s", ErrNotFound, code)
	}
	if err != nil {
		return nil, nil, err
	}
	rows, err := locs.Contents(loc.ID)
	return loc, rows, err
}

type LocationInput struct {
	Code           string `json:"code" validate:"required,max=64"`
	Name           string `json:"name" validate:"required,max=120"`
	CapacityVolume string `json:"capacity_volume" validate:"required"`
	Note           string `json:"note" validate:"max=255"`
}

// CreateLocation adds a storage location. Codes are unique.
func (s *Service) CreateLocation(ctx context.Context, in LocationInput) (*entity.Location, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", ErrInvalidInput)
	}
	capacity, err := decimal.NewFromString(strings.TrimSpace(in.CapacityVolume))
	if err != nil || capacity.IsNegative() {
		return nil, fmt.Errorf("%w: capacity volume %q", ErrInvalidInput, in.CapacityVolume)
	}

	loc := &entity.Location{Code: code, Name: name, CapacityVolume: capacity, Note: strings.TrimSpace(in.Note)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locs := repo.NewLocationRepository(tx)
		exists, err := locs.ExistsCode(code)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: %s", ErrDuplicateCode, code)
		}
		return locs.Create(loc)
	})
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// Packaging lists items for packaging maintenance, filtered by keyword (name or
// SKU) and category slug.
func (s *Service) Packaging(ctx context.Context, keyword, categorySlug string) ([]entity.Item, error) {
	return repo.NewItemRepository(s.db.WithContext(ctx)).List(repo.ItemFilter{Keyword: keyword, CategorySlug: categorySlug})
}

// PackagingInput carries the editable packaging fields. Nil pointers keep the
// current value.
type PackagingInput struct {
	CategoryID      *uint   `json:"category_id"`
	SizeText        *string `json:"size_text" validate:"omitempty,max=120"`
	Unit            *string `json:"unit" validate:"omitempty,max=20"`
	PackagingVolume *string `json:"packaging_volume"`
	HasShelfLife    *bool   `json:"has_shelf_life"`
	Description     *string `json:"description"`
	Active          *bool   `json:"active"`
}

// UpdatePackaging edits an item's packaging fields.
func (s *Service) UpdatePackaging(ctx context.Context, itemID uint, in PackagingInput) (*entity.Item, error) {
	items := repo.NewItemRepository(s.db.WithContext(ctx))
	item, err := items.FindByID(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}

	if in.CategoryID != nil {
		if *in.CategoryID == 0 {
			item.CategoryID = nil
		} else {
			id := *in.CategoryID
			item.CategoryID = &id
		}
		item.Category = nil
	}
	if in.SizeText != nil {
		item.SizeText = strings.TrimSpace(*in.SizeText)
	}
	if in.Unit != nil {
		item.Unit = strings.TrimSpace(*in.Unit)
		if item.Unit == "" {
			item.Unit = config.App().DefaultUnit
		}
	}
	if in.PackagingVolume != nil {
		vol, err := decimal.NewFromString(strings.TrimSpace(*in.PackagingVolume))
		if err != nil || vol.IsNegative() {
			return nil, fmt.Errorf("%w: packaging volume %q", ErrInvalidInput, *in.PackagingVolume)
		}
		item.PackagingVolume = vol
	}
	if in.HasShelfLife != nil {
		item.HasShelfLife = *in.HasShelfLife
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Active != nil {
		item.Active = *in.Active
	}

	if err := items.Save(item); err != nil {
		return nil, err
	}
	// volume changes move every location's usage
	s.cache.DeleteByTag(ctx, cache.TagReports)
	return items.FindByID(itemID)
}
