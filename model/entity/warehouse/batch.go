package warehouse

import (
	"time"

	"gorm.io/datatypes"
)

// Batch is a dated lot of one item. QuantityUnits is the authoritative stock
// count and equals the sum of the batch's BatchLocation rows outside a transaction.
type Batch struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID         uint            `gorm:"column:item_id;not null;uniqueIndex:idx_batch_item_number" json:"item_id"`
	Item           Item            `json:"item"`
	BatchNumber    string          `gorm:"column:batch_number;type:varchar(100);not null;uniqueIndex:idx_batch_item_number" json:"batch_number"`
	ProductionDate *datatypes.Date `gorm:"column:production_date" json:"production_date,omitempty"`
	ExpiryDate     *datatypes.Date `gorm:"column:expiry_date;index" json:"expiry_date,omitempty"`
	Barcode        string          `gorm:"column:barcode;type:varchar(64);not null;uniqueIndex" json:"barcode"`
	QuantityUnits  int             `gorm:"column:quantity_units;not null" json:"quantity_units"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	Locations      []BatchLocation `gorm:"constraint:OnDelete:CASCADE" json:"locations,omitempty"`
	Movements      []Movement      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Batch) TableName() string {
	return "batch"
}

// IsNearExpiry reports whether the batch expires within days of today
// (inclusive, already-expired batches excluded).
func (b Batch) IsNearExpiry(today time.Time, days int) bool {
	if b.ExpiryDate == nil {
		return false
	}
	left := DaysBetween(today, time.Time(*b.ExpiryDate))
	return left >= 0 && left <= days
}

// DaysBetween counts calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// Date truncates t to a UTC calendar date.
func Date(t time.Time) datatypes.Date {
	return datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format("2006-01-02")
}
