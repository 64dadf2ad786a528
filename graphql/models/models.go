package models

// GraphQL-facing views of the loan domain. graphql-go maps Int to int32, so
// IDs and counters are narrowed here and timestamps go out as strings.

type Item struct {
	ItemID        int32
	CatalogNumber string
	Name          string
	TypeID        int32
	Detail        string
	Stock         int32
	Price         string
	PhotoRef      string
}

type ItemType struct {
	TypeID int32
	Name   string
}

type Member struct {
	MemberID     int32
	IdentityCode string
	Title        string
	FirstName    string
	LastName     string
	Advisor      string
}

type Borrowal struct {
	BorrowalID     int32
	Ref            string
	MemberIdentity string
	BorrowerName   string
	ApproverName   string
	Note           string
	Advisor        string
	Status         string
	DueAt          string
	ReturnedAt     *string
	CreatedAt      string
	Lines          []*Line
}

type Line struct {
	LineID      int32
	ItemID      int32
	BorrowedQty int32
	ReturnedQty int32
	Status      string
}

type Dashboard struct {
	TotalItems     int32
	OpenBorrowals  int32
	AvailableUnits int32
	TotalMembers   int32
}
