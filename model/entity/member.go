package entity

import "time"

// Member is a registered borrower. IdentityCode is the institution-issued
// business key used for lookups and borrow matching; MemberID stays internal.
type Member struct {
	MemberID     uint      `gorm:"column:member_id;primaryKey;autoIncrement" json:"member_id"`
	IdentityCode string    `gorm:"column:identity_code;type:varchar(32);not null;uniqueIndex" json:"identity_code"`
	Title        string    `gorm:"column:title;type:varchar(32)" json:"title"`
	FirstName    string    `gorm:"column:first_name;type:varchar(64);not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name;type:varchar(64);not null" json:"last_name"`
	Advisor      string    `gorm:"column:advisor;type:varchar(128)" json:"advisor"`
	Created      time.Time `gorm:"column:created;autoCreateTime" json:"created"`
}

func (Member) TableName() string {
	return "member"
}

// DisplayName is the name shown on borrow slips and used by the soft
// return verification.
func (m Member) DisplayName() string {
	if m.Title == "" {
		return m.FirstName + " " + m.LastName
	}
	return m.Title + " " + m.FirstName + " " + m.LastName
}
