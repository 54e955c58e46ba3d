package resolvers

import (
	"context"

	"warehouse.GO/graphql"
	gqlmodels "warehouse.GO/graphql/models"
	repo "warehouse.GO/model/repository/warehouse"
	"warehouse.GO/service/allocation"
)

func (r *QueryResolver) Locations(ctx context.Context) ([]*gqlmodels.Location, error) {
	locs, err := repo.NewLocationRepository(r.db).ListWithUsage(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Location, 0, len(locs))
	for i := range locs {
		out = append(out, locationToModel(&locs[i], true))
	}
	return out, nil
}

// MaxPlaceableUnits starts from location, or the request's location scope when
// location is empty. Results above the Int range report UnlimitedUnits.
func (r *QueryResolver) MaxPlaceableUnits(ctx context.Context, sku, location string) (int32, error) {
	if location == "" {
		location = graphql.LocationFromContext(ctx)
	}
	n, err := r.inventory.PlaceableUnitsBySKU(ctx, sku, location)
	if err != nil {
		return 0, err
	}
	if n > allocation.UnlimitedUnits {
		n = allocation.UnlimitedUnits
	}
	return int32(n), nil
}
