package entity

import (
	"time"

	"gorm.io/datatypes"
)

// UserAccount is a staff login. Role follows the access policy levels:
// 1 admin, 2 manager, 3 officer.
type UserAccount struct {
	UserID       uint           `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username     string         `gorm:"column:username;type:varchar(40);not null;uniqueIndex" json:"username"`
	PasswordHash string         `gorm:"column:password_hash;type:varchar(100);not null" json:"-"`
	FirstName    string         `gorm:"column:first_name;type:varchar(64);not null" json:"first_name"`
	LastName     string         `gorm:"column:last_name;type:varchar(64);not null" json:"last_name"`
	Role         int16          `gorm:"column:role;not null;default:3" json:"role"`
	LastLogin    datatypes.Date `gorm:"column:last_login" json:"last_login"`
	Created      time.Time      `gorm:"column:created;autoCreateTime" json:"created"`
	Modified     time.Time      `gorm:"column:modified;autoUpdateTime" json:"modified"`
}

func (UserAccount) TableName() string {
	return "user_account"
}
