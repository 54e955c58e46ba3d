package resolvers

import (
	"context"

	gqlmodels "warehouse.GO/graphql/models"
)

func (r *QueryResolver) NearExpiry(ctx context.Context, days int) ([]*gqlmodels.Batch, error) {
	batches, err := r.reports.NearExpiry(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Batch, 0, len(batches))
	for i := range batches {
		out = append(out, batchToModel(&batches[i]))
	}
	return out, nil
}

func (r *QueryResolver) PopularItems(ctx context.Context, limit int) ([]*gqlmodels.PopularItem, error) {
	rows, err := r.reports.PopularItems(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.PopularItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, &gqlmodels.PopularItem{
			ItemID:        toID(row.ItemID),
			SKU:           row.SKUCode,
			Name:          row.Name,
			MovementCount: int32(row.MovementCount),
		})
	}
	return out, nil
}

func (r *QueryResolver) Dashboard(ctx context.Context) (*gqlmodels.Dashboard, error) {
	d, err := r.reports.Dashboard(ctx)
	if err != nil {
		return nil, err
	}
	return &gqlmodels.Dashboard{
		ItemCount:       int32(d.ItemCount),
		BatchCount:      int32(d.BatchCount),
		NearExpiryCount: int32(d.NearExpiryCount),
	}, nil
}
