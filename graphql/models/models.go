package models

import gql "github.com/graph-gophers/graphql-go"

// Decimal volumes travel as strings to keep their scale.

type Category struct {
	ID        gql.ID `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ItemCount int32  `json:"item_count"`
}

type Item struct {
	ID              gql.ID   `json:"id"`
	SKU             string   `json:"sku"`
	Name            string   `json:"name"`
	Unit            string   `json:"unit"`
	SizeText        *string  `json:"size_text,omitempty"`
	PackagingVolume string   `json:"packaging_volume"`
	HasShelfLife    bool     `json:"has_shelf_life"`
	Active          bool     `json:"active"`
	Category        *string  `json:"category,omitempty"`
	Batches         []*Batch `json:"batches"`
}

type Batch struct {
	ID             gql.ID   `json:"id"`
	BatchNumber    string   `json:"batch_number"`
	Barcode        string   `json:"barcode"`
	QuantityUnits  int32    `json:"quantity_units"`
	ProductionDate *string  `json:"production_date,omitempty"`
	ExpiryDate     *string  `json:"expiry_date,omitempty"`
	Item           *Item    `json:"item,omitempty"`
	Locations      []*Stock `json:"locations"`
}

// Stock is a batch's quantity at one location.
type Stock struct {
	Location      *Location `json:"location"`
	QuantityUnits int32     `json:"quantity_units"`
}

type Location struct {
	ID              gql.ID  `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	CapacityVolume  string  `json:"capacity_volume"`
	UsedVolume      *string `json:"used_volume,omitempty"`
	AvailableVolume *string `json:"available_volume,omitempty"`
}

type PopularItem struct {
	ItemID        gql.ID `json:"item_id"`
	SKU           string `json:"sku"`
	Name          string `json:"name"`
	MovementCount int32  `json:"movement_count"`
}

type Dashboard struct {
	ItemCount       int32 `json:"item_count"`
	BatchCount      int32 `json:"batch_count"`
	NearExpiryCount int32 `json:"near_expiry_count"`
}
