package graphql

import (
	"context"

	gqlmodels "warehouse.GO/graphql/models"
)

// QueryResolver is the interface for query resolvers (used by resolvers package).
type QueryResolver interface {
	Items(ctx context.Context, keyword string, limit int) ([]*gqlmodels.Item, error)
	Item(ctx context.Context, sku string) (*gqlmodels.Item, error)
	Batch(ctx context.Context, barcode string) (*gqlmodels.Batch, error)
	Categories(ctx context.Context) ([]*gqlmodels.Category, error)
	Locations(ctx context.Context) ([]*gqlmodels.Location, error)
	NearExpiry(ctx context.Context, days int) ([]*gqlmodels.Batch, error)
	PopularItems(ctx context.Context, limit int) ([]*gqlmodels.PopularItem, error)
	Dashboard(ctx context.Context) (*gqlmodels.Dashboard, error)
	MaxPlaceableUnits(ctx context.Context, sku, location string) (int32, error)
}
