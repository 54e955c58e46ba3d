package entity

import "time"

type AccessToken struct {
	EntityID   uint      `gorm:"column:entity_id;primaryKey;autoIncrement"`
	OperatorID uint      `gorm:"column:operator_id;not null;index"`
	Token      string    `gorm:"column:token;type:varchar(64);not null;uniqueIndex"`
	Revoked    bool      `gorm:"column:revoked;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (AccessToken) TableName() string {
	return "access_token"
}
