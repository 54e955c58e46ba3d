package resolvers

import (
	"gorm.io/gorm"

	"warehouse.GO/core/cache"
	"warehouse.GO/graphql"
	gqlregistry "warehouse.GO/graphql/registry"
	"warehouse.GO/service/inventory"
	"warehouse.GO/service/report"
	"warehouse.GO/service/search"
)

func init() {
	gqlregistry.RegisterQueryResolverFactory(func(db interface{}) interface{} {
		return NewQueryResolver(db.(*gorm.DB))
	})
}

// QueryResolver is the single resolver for all Query fields.
// Methods live in item.go, location.go and report.go.
// New Query fields: use RegisterSchemaExtension + add method on QueryResolver,
// or register an _extension resolver for fully dynamic ones.
type QueryResolver struct {
	db        *gorm.DB
	search    *search.Service
	reports   *report.Service
	inventory *inventory.Service
}

var _ graphql.QueryResolver = (*QueryResolver)(nil)

func NewQueryResolver(db *gorm.DB) *QueryResolver {
	c := cache.Default()
	return &QueryResolver{
		db:        db,
		search:    search.NewFromEnv(db),
		reports:   report.NewService(db, c),
		inventory: inventory.NewService(db, c),
	}
}
