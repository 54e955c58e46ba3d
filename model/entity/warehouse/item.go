package warehouse

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a stock-keeping unit. PackagingVolume is the storage footprint of one
// unit; zero means the item always fits.
type Item struct {
	ID              uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CategoryID      *uint           `gorm:"column:category_id;index" json:"category_id,omitempty"`
	Category        *Category       `json:"category,omitempty"`
	Name            string          `gorm:"column:name;type:varchar(200);not null" json:"name"`
	SKUCode         string          `gorm:"column:sku_code;type:varchar(64);not null;uniqueIndex" json:"sku_code"`
	SizeText        string          `gorm:"column:size_text;type:varchar(120)" json:"size_text,omitempty"`
	Unit            string          `gorm:"column:unit;type:varchar(20);not null" json:"unit"`
	PackagingVolume decimal.Decimal `gorm:"column:packaging_volume;type:decimal(10,3);not null" json:"packaging_volume"`
	HasShelfLife    bool            `gorm:"column:has_shelf_life;not null" json:"has_shelf_life"`
	Description     string          `gorm:"column:description;type:text" json:"description,omitempty"`
	Active          bool            `gorm:"column:active;not null" json:"active"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Images          []ItemImage     `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Batches         []Batch         `gorm:"constraint:OnDelete:CASCADE" json:"batches,omitempty"`
}

func (Item) TableName() string {
	return "item"
}

// UnitName returns the unit label used in operator messages.
func (i Item) UnitName(def string) string {
	if i.Unit == "" {
		return def
	}
	return i.Unit
}
