package warehouse

import "github.com/shopspring/decimal"

// Location is a physical storage slot with a volumetric capacity.
type Location struct {
	ID             uint            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code           string          `gorm:"column:code;type:varchar(64);not null;uniqueIndex" json:"code"`
	Name           string          `gorm:"column:name;type:varchar(120);not null" json:"name"`
	CapacityVolume decimal.Decimal `gorm:"column:capacity_volume;type:decimal(12,3);not null" json:"capacity_volume"`
	Note           string          `gorm:"column:note;type:varchar(255)" json:"note,omitempty"`
	BatchLocations []BatchLocation `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Derived, filled by the repository when listing.
	UsedVolume decimal.Decimal `gorm:"-" json:"used_volume"`
}

func (Location) TableName() string {
	return "location"
}

// AvailableVolume is CapacityVolume minus UsedVolume. Only meaningful after the
// repository filled UsedVolume.
func (l Location) AvailableVolume() decimal.Decimal {
	return l.CapacityVolume.Sub(l.UsedVolume)
}
