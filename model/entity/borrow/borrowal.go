package borrow

import "time"

// Status is the borrowal lifecycle state. A borrowal is created Open and
// moves to Returned exactly once; there is no other transition.
type Status uint8

const (
	StatusOpen     Status = 1
	StatusReturned Status = 2
)

// Borrowal is one loan transaction covering one or more equipment lines for
// a single member. MemberIdentity and BorrowerName are denormalized at
// creation so the slip stays readable even if the member record changes.
type Borrowal struct {
	BorrowalID     uint       `gorm:"column:borrowal_id;primaryKey;autoIncrement" json:"borrowal_id"`
	Ref            string     `gorm:"column:ref;type:varchar(36);not null;uniqueIndex" json:"ref"`
	MemberIdentity string     `gorm:"column:member_identity;type:varchar(32);not null;index" json:"member_identity"`
	BorrowerName   string     `gorm:"column:borrower_name;type:varchar(160);not null" json:"borrower_name"`
	ApproverName   string     `gorm:"column:approver_name;type:varchar(128)" json:"approver_name"`
	Note           string     `gorm:"column:note;type:varchar(255)" json:"note"`
	Advisor        string     `gorm:"column:advisor;type:varchar(128)" json:"advisor"`
	Status         Status     `gorm:"column:status;not null;default:1;index" json:"status"`
	DueAt          time.Time  `gorm:"column:due_at;not null" json:"due_at"`
	ReturnedAt     *time.Time `gorm:"column:returned_at" json:"returned_at"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	Lines          []Line     `gorm:"foreignKey:BorrowalID;references:BorrowalID" json:"lines"`
}

func (Borrowal) TableName() string {
	return "borrowal"
}

// Line is one item position on a borrowal. BorrowedQty is fixed at creation;
// ReturnedQty stays 0 until the return, when it is set equal to BorrowedQty
// (partial returns are not supported).
type Line struct {
	LineID      uint   `gorm:"column:line_id;primaryKey;autoIncrement" json:"line_id"`
	BorrowalID  uint   `gorm:"column:borrowal_id;not null;index" json:"borrowal_id"`
	ItemID      uint   `gorm:"column:item_id;not null;index" json:"item_id"`
	BorrowedQty int    `gorm:"column:borrowed_qty;not null" json:"borrowed_qty"`
	ReturnedQty int    `gorm:"column:returned_qty;not null;default:0" json:"returned_qty"`
	Status      Status `gorm:"column:status;not null;default:1" json:"status"`
}

func (Line) TableName() string {
	return "borrowal_line"
}
