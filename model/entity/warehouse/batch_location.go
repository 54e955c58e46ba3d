package warehouse

// BatchLocation records how many units of a batch sit in a location.
// Rows never persist with QuantityUnits == 0.
type BatchLocation struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	BatchID       uint      `gorm:"column:batch_id;not null;uniqueIndex:idx_batch_location" json:"batch_id"`
	LocationID    uint      `gorm:"column:location_id;not null;uniqueIndex:idx_batch_location" json:"location_id"`
	QuantityUnits int       `gorm:"column:quantity_units;not null" json:"quantity_units"`
	Batch         *Batch    `json:"-"`
	Location      *Location `json:"location,omitempty"`
}

func (BatchLocation) TableName() string {
	return "batch_location"
}
