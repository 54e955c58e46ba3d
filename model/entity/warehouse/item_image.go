package warehouse

type ItemImage struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ItemID    uint   `gorm:"column:item_id;not null;index" json:"item_id"`
	Path      string `gorm:"column:path;type:varchar(255);not null" json:"path"`
	ThumbPath string `gorm:"column:thumb_path;type:varchar(255)" json:"thumb_path"`
	Alt       string `gorm:"column:alt;type:varchar(200)" json:"alt,omitempty"`
}

func (ItemImage) TableName() string {
	return "item_image"
}
