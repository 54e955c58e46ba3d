package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"warehouse.GO/graphql"
	gqlmodels "warehouse.GO/graphql/models"
	"warehouse.GO/graphql/registry"
	_ "warehouse.GO/graphql/resolvers"
)

// RootResolver is the root for graphql-go. The query resolver is built once
// per schema by the factory the resolvers package registers.
type RootResolver struct {
	query graphql.QueryResolver
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{res: r.query}
}

// QueryResolver implements Query fields. Delegates to resolvers package.
type QueryResolver struct {
	res graphql.QueryResolver
}

// ItemsArgs matches the items query arguments (default in schema: limit=50).
type ItemsArgs struct {
	Keyword *string
	Limit   int32
}

func (r *QueryResolver) Items(ctx context.Context, args ItemsArgs) ([]*gqlmodels.Item, error) {
	keyword := ""
	if args.Keyword != nil {
		keyword = *args.Keyword
	}
	return r.res.Items(ctx, keyword, int(args.Limit))
}

type ItemArgs struct {
	Sku string
}

func (r *QueryResolver) Item(ctx context.Context, args ItemArgs) (*gqlmodels.Item, error) {
	return r.res.Item(ctx, args.Sku)
}

type BatchArgs struct {
	Barcode string
}

func (r *QueryResolver) Batch(ctx context.Context, args BatchArgs) (*gqlmodels.Batch, error) {
	return r.res.Batch(ctx, args.Barcode)
}

func (r *QueryResolver) Categories(ctx context.Context) ([]*gqlmodels.Category, error) {
	return r.res.Categories(ctx)
}

func (r *QueryResolver) Locations(ctx context.Context) ([]*gqlmodels.Location, error) {
	return r.res.Locations(ctx)
}

// NearExpiryArgs: days defaults to the configured window when omitted.
type NearExpiryArgs struct {
	Days *int32
}

func (r *QueryResolver) NearExpiry(ctx context.Context, args NearExpiryArgs) ([]*gqlmodels.Batch, error) {
	days := 0
	if args.Days != nil {
		days = int(*args.Days)
	}
	return r.res.NearExpiry(ctx, days)
}

type PopularItemsArgs struct {
	Limit *int32
}

func (r *QueryResolver) PopularItems(ctx context.Context, args PopularItemsArgs) ([]*gqlmodels.PopularItem, error) {
	limit := 0
	if args.Limit != nil {
		limit = int(*args.Limit)
	}
	return r.res.PopularItems(ctx, limit)
}

func (r *QueryResolver) Dashboard(ctx context.Context) (*gqlmodels.Dashboard, error) {
	return r.res.Dashboard(ctx)
}

type MaxPlaceableUnitsArgs struct {
	Sku      string
	Location *string
}

func (r *QueryResolver) MaxPlaceableUnits(ctx context.Context, args MaxPlaceableUnitsArgs) (int32, error) {
	loc := ""
	if args.Location != nil {
		loc = *args.Location
	}
	return r.res.MaxPlaceableUnits(ctx, args.Sku, loc)
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(db *gorm.DB) (*gql.Schema, error) {
	query := registry.GetQueryResolver(db).(graphql.QueryResolver)
	return gql.ParseSchema(graphql.Schema(), &RootResolver{query: query}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
