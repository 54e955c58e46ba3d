package entity

import "time"

// Operator is a warehouse user. GroupName selects the permission set
// (see core/auth.Groups).
type Operator struct {
	OperatorID uint      `gorm:"column:operator_id;primaryKey;autoIncrement" json:"operator_id"`
	Username   string    `gorm:"column:username;type:varchar(40);not null;uniqueIndex" json:"username"`
	FullName   string    `gorm:"column:full_name;type:varchar(120)" json:"full_name"`
	GroupName  string    `gorm:"column:group_name;type:varchar(32);not null" json:"group_name"`
	IsActive   bool      `gorm:"column:is_active;not null" json:"is_active"`
	Created    time.Time `gorm:"column:created;autoCreateTime" json:"created"`
	Modified   time.Time `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

func (Operator) TableName() string {
	return "operator"
}
