package warehouse

// Category groups items in the catalog. Ordered by SortOrder, then Name.
type Category struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"column:name;type:varchar(100);not null;uniqueIndex" json:"name"`
	Slug        string `gorm:"column:slug;type:varchar(120);not null;uniqueIndex" json:"slug"`
	Description string `gorm:"column:description;type:text" json:"description,omitempty"`
	SortOrder   uint   `gorm:"column:sort_order;not null" json:"sort_order"`
	Items       []Item `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"items,omitempty"`
}

func (Category) TableName() string {
	return "category"
}
