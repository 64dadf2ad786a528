package borrow

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	entity "sportloan.GO/model/entity"
	borrowEntity "sportloan.GO/model/entity/borrow"
	equipmentEntity "sportloan.GO/model/entity/equipment"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Member{},
		&equipmentEntity.Item{},
		&borrowEntity.Borrowal{},
		&borrowEntity.Line{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMember(t *testing.T, db *gorm.DB, code string) *entity.Member {
	t.Helper()
	m := &entity.Member{IdentityCode: code, FirstName: "Ada", LastName: "Lovelace", Advisor: "Dr. Babbage"}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

func seedItem(t *testing.T, db *gorm.DB, name string, stock int) *equipmentEntity.Item {
	t.Helper()
	item := &equipmentEntity.Item{CatalogNumber: "CAT-" + name, Name: name, TypeID: 1, Stock: stock}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func itemStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var item equipmentEntity.Item
	if err := db.First(&item, id).Error; err != nil {
		t.Fatalf("load item: %v", err)
	}
	return item.Stock
}

func TestSubmitBorrow_DecrementsStock(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	b, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 2}},
		DueAt:          "2026-09-05",
		ApproverName:   "Coach",
	})
	if err != nil {
		t.Fatalf("SubmitBorrow: %v", err)
	}
	if b.Status != borrowEntity.StatusOpen {
		t.Errorf("status = %d, want open", b.Status)
	}
	if b.Ref == "" {
		t.Error("ref not assigned")
	}
	if b.BorrowerName != "Ada Lovelace" {
		t.Errorf("borrower name = %q", b.BorrowerName)
	}
	if b.Advisor != "Dr. Babbage" {
		t.Errorf("advisor = %q", b.Advisor)
	}
	if got := itemStock(t, db, ball.ItemID); got != 3 {
		t.Errorf("stock = %d, want 3", got)
	}
}

func TestSubmitBorrow_CollectsAllProblems(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)

	_, err := svc.SubmitBorrow(SubmitInput{MemberIdentity: "nobody"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	for _, p := range []string{ProblemMemberNotFound, ProblemEmptyCart, ProblemMissingDueDate} {
		if !ve.Has(p) {
			t.Errorf("missing problem %q in %v", p, ve.Problems)
		}
	}
}

func TestSubmitBorrow_RejectsNonPositiveQuantity(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	_, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 0}},
		DueAt:          "2026-09-05",
	})
	var ve *ValidationError
	if !errors.As(err, &ve) || !ve.Has(ProblemInvalidQuantity) {
		t.Fatalf("err = %v, want invalid-quantity problem", err)
	}
	if got := itemStock(t, db, ball.ItemID); got != 5 {
		t.Errorf("stock = %d, want untouched 5", got)
	}
}

func TestSubmitBorrow_SecondOpenBorrowalRefused(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	in := SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 1}},
		DueAt:          "2026-09-05",
	}
	if _, err := svc.SubmitBorrow(in); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.SubmitBorrow(in)
	var ve *ValidationError
	if !errors.As(err, &ve) || !ve.Has(ProblemOpenBorrowal) {
		t.Fatalf("err = %v, want open-borrowal problem", err)
	}
	if got := itemStock(t, db, ball.ItemID); got != 4 {
		t.Errorf("stock = %d, want 4 (only first borrow applied)", got)
	}
}

func TestSubmitBorrow_InsufficientStockRollsBackWholeSubmission(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	balls := seedItem(t, db, "Football", 5)
	nets := seedItem(t, db, "Net", 1)

	_, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines: []LineInput{
			{ItemID: balls.ItemID, Quantity: 2},
			{ItemID: nets.ItemID, Quantity: 3},
		},
		DueAt: "2026-09-05",
	})
	var se *InsufficientStockError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}
	if se.ItemID != nets.ItemID || se.Requested != 3 || se.Available != 1 {
		t.Errorf("stock error = %+v", se)
	}
	// The first line's decrement must have rolled back too.
	if got := itemStock(t, db, balls.ItemID); got != 5 {
		t.Errorf("football stock = %d, want 5", got)
	}
	if got := itemStock(t, db, nets.ItemID); got != 1 {
		t.Errorf("net stock = %d, want 1", got)
	}
	open, err := svc.FindOpenByIdentity("M-100")
	if err != nil {
		t.Fatalf("FindOpenByIdentity: %v", err)
	}
	if open != nil {
		t.Error("no borrowal should exist after rollback")
	}
}

func TestSubmitBorrow_ExactStockBoundary(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	cones := seedItem(t, db, "Cone", 2)

	b, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: cones.ItemID, Quantity: 2}},
		DueAt:          "2026-09-05",
	})
	if err != nil {
		t.Fatalf("SubmitBorrow: %v", err)
	}
	if got := itemStock(t, db, cones.ItemID); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}

	// A second member must now be refused.
	seedMember(t, db, "M-200")
	_, err = svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-200",
		Lines:          []LineInput{{ItemID: cones.ItemID, Quantity: 1}},
		DueAt:          "2026-09-05",
	})
	var se *InsufficientStockError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want InsufficientStockError", err)
	}

	// After the return the stock is whole again.
	if _, err := svc.ConfirmReturn(b.BorrowalID, "M-100"); err != nil {
		t.Fatalf("ConfirmReturn: %v", err)
	}
	if got := itemStock(t, db, cones.ItemID); got != 2 {
		t.Errorf("stock after return = %d, want 2", got)
	}
}

func TestConfirmReturn_RoundTrip(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	b, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 3}},
		DueAt:          "2026-09-05",
	})
	if err != nil {
		t.Fatalf("SubmitBorrow: %v", err)
	}

	got, err := svc.ConfirmReturn(b.BorrowalID, "M-100")
	if err != nil {
		t.Fatalf("ConfirmReturn: %v", err)
	}
	if got.Status != borrowEntity.StatusReturned {
		t.Errorf("status = %d, want returned", got.Status)
	}
	if got.ReturnedAt == nil {
		t.Error("returned_at not set")
	}
	for _, line := range got.Lines {
		if line.ReturnedQty != line.BorrowedQty {
			t.Errorf("line %d returned %d, want %d", line.LineID, line.ReturnedQty, line.BorrowedQty)
		}
		if line.Status != borrowEntity.StatusReturned {
			t.Errorf("line %d status = %d, want returned", line.LineID, line.Status)
		}
	}
	if got := itemStock(t, db, ball.ItemID); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestConfirmReturn_VerificationMismatchLeavesStateUntouched(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	b, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 2}},
		DueAt:          "2026-09-05",
	})
	if err != nil {
		t.Fatalf("SubmitBorrow: %v", err)
	}

	if _, err := svc.ConfirmReturn(b.BorrowalID, "someone else"); !errors.Is(err, ErrVerificationMismatch) {
		t.Fatalf("err = %v, want ErrVerificationMismatch", err)
	}
	got, err := svc.Get(b.BorrowalID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != borrowEntity.StatusOpen {
		t.Errorf("status = %d, want still open", got.Status)
	}
	if stock := itemStock(t, db, ball.ItemID); stock != 3 {
		t.Errorf("stock = %d, want still 3", stock)
	}
}

func TestConfirmReturn_AlreadyReturned(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	b, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 1}},
		DueAt:          "2026-09-05",
	})
	if err != nil {
		t.Fatalf("SubmitBorrow: %v", err)
	}
	if _, err := svc.ConfirmReturn(b.BorrowalID, "M-100"); err != nil {
		t.Fatalf("first return: %v", err)
	}
	if _, err := svc.ConfirmReturn(b.BorrowalID, "M-100"); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("err = %v, want ErrAlreadyReturned", err)
	}
	// The second attempt must not credit stock twice.
	if got := itemStock(t, db, ball.ItemID); got != 5 {
		t.Errorf("stock = %d, want 5", got)
	}
}

func TestConfirmReturn_ConcurrentReturnCreditsStockOnce(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	b, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 2}},
		DueAt:          "2026-09-05",
	})
	if err != nil {
		t.Fatalf("SubmitBorrow: %v", err)
	}

	// A rival return slips in after this caller's Open check but before its
	// commit; only one of the two may close the borrowal and credit stock.
	rival := NewBorrowService(db)
	svc.now = func() time.Time {
		svc.now = time.Now
		if _, err := rival.ConfirmReturn(b.BorrowalID, "M-100"); err != nil {
			t.Fatalf("rival return: %v", err)
		}
		return time.Now()
	}

	if _, err := svc.ConfirmReturn(b.BorrowalID, "M-100"); !errors.Is(err, ErrAlreadyReturned) {
		t.Fatalf("err = %v, want ErrAlreadyReturned", err)
	}
	if got := itemStock(t, db, ball.ItemID); got != 5 {
		t.Errorf("stock = %d, want 5 (credited exactly once)", got)
	}
}

func TestConfirmReturn_UnknownBorrowal(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	if _, err := svc.ConfirmReturn(999, "whatever"); !errors.Is(err, ErrBorrowalNotFound) {
		t.Fatalf("err = %v, want ErrBorrowalNotFound", err)
	}
}

func TestParseDueAt_Layouts(t *testing.T) {
	for _, in := range []string{"2026-09-05", "2026-09-05T15:04", "2026-09-05 15:04:05", "2026-09-05T15:04:05Z"} {
		if _, ok := parseDueAt(in); !ok {
			t.Errorf("parseDueAt(%q) not accepted", in)
		}
	}
	if _, ok := parseDueAt(""); ok {
		t.Error("empty due date accepted")
	}
	if _, ok := parseDueAt("next tuesday"); ok {
		t.Error("garbage due date accepted")
	}
}

func TestListByStatus(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	seedMember(t, db, "M-100")
	seedMember(t, db, "M-200")
	ball := seedItem(t, db, "Football", 5)

	b1, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 1}},
		DueAt:          "2026-09-05",
	})
	if err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if _, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-200",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 1}},
		DueAt:          "2026-09-05",
	}); err != nil {
		t.Fatalf("submit 2: %v", err)
	}
	if _, err := svc.ConfirmReturn(b1.BorrowalID, "M-100"); err != nil {
		t.Fatalf("return: %v", err)
	}

	open, err := svc.ListByStatus(borrowEntity.StatusOpen)
	if err != nil {
		t.Fatalf("ListByStatus open: %v", err)
	}
	returned, err := svc.ListByStatus(borrowEntity.StatusReturned)
	if err != nil {
		t.Fatalf("ListByStatus returned: %v", err)
	}
	if len(open) != 1 || len(returned) != 1 {
		t.Errorf("open=%d returned=%d, want 1/1", len(open), len(returned))
	}
	if len(returned) == 1 && returned[0].BorrowalID != b1.BorrowalID {
		t.Errorf("returned list holds %d, want %d", returned[0].BorrowalID, b1.BorrowalID)
	}
}

func TestSubmitBorrow_DueDateKept(t *testing.T) {
	db := testDB(t)
	svc := NewBorrowService(db)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC) }
	seedMember(t, db, "M-100")
	ball := seedItem(t, db, "Football", 5)

	b, err := svc.SubmitBorrow(SubmitInput{
		MemberIdentity: "M-100",
		Lines:          []LineInput{{ItemID: ball.ItemID, Quantity: 1}},
		DueAt:          "2026-09-05",
	})
	if err != nil {
		t.Fatalf("SubmitBorrow: %v", err)
	}
	want := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	if !b.DueAt.Equal(want) {
		t.Errorf("due at = %v, want %v", b.DueAt, want)
	}
}
