package resolvers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	gqlmodels "warehouse.GO/graphql/models"
	repo "warehouse.GO/model/repository/warehouse"
)

func (r *QueryResolver) Items(ctx context.Context, keyword string, limit int) ([]*gqlmodels.Item, error) {
	res, err := r.search.Items(ctx, keyword, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Item, 0, len(res.Items))
	for i := range res.Items {
		out = append(out, itemToModel(&res.Items[i]))
	}
	return out, nil
}

// Item returns nil for an unknown SKU.
func (r *QueryResolver) Item(ctx context.Context, sku string) (*gqlmodels.Item, error) {
	it, err := repo.NewItemRepository(r.db.WithContext(ctx)).FindBySKUWithBatches(sku)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return itemToModel(it), nil
}

// Batch returns nil for an unknown barcode.
func (r *QueryResolver) Batch(ctx context.Context, barcode string) (*gqlmodels.Batch, error) {
	b, err := repo.NewBatchRepository(r.db.WithContext(ctx)).FindByBarcode(barcode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return batchToModel(b), nil
}

func (r *QueryResolver) Categories(ctx context.Context) ([]*gqlmodels.Category, error) {
	cats, err := repo.NewCategoryRepository(r.db.WithContext(ctx)).ListWithActiveItems()
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, &gqlmodels.Category{
			ID:        toID(c.ID),
			Name:      c.Name,
			Slug:      c.Slug,
			ItemCount: int32(len(c.Items)),
		})
	}
	return out, nil
}
