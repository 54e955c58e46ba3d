package warehouse

import "time"

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Movement is an append-only ledger row; it is never updated or deleted.
type Movement struct {
	ID            uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Reference     string    `gorm:"column:reference;type:varchar(36);not null;uniqueIndex" json:"reference"`
	BatchID       uint      `gorm:"column:batch_id;not null;index" json:"batch_id"`
	Batch         *Batch    `json:"batch,omitempty"`
	Direction     Direction `gorm:"column:direction;type:varchar(3);not null" json:"direction"`
	QuantityUnits int       `gorm:"column:quantity_units;not null" json:"quantity_units"`
	OperatorID    *uint     `gorm:"column:operator_id;index" json:"operator_id,omitempty"`
	LocationID    *uint     `gorm:"column:location_id;index" json:"location_id,omitempty"`
	Location      *Location `gorm:"constraint:OnDelete:SET NULL" json:"location,omitempty"`
	Note          string    `gorm:"column:note;type:varchar(255)" json:"note,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (Movement) TableName() string {
	return "movement"
}
