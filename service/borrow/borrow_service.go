package borrow

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	borrowEntity "sportloan.GO/model/entity/borrow"
	borrowRepo "sportloan.GO/model/repository/borrow"
	equipmentRepo "sportloan.GO/model/repository/equipment"
	memberRepo "sportloan.GO/model/repository/member"
)

// BorrowService owns the borrowal lifecycle: it validates submissions,
// mutates equipment stock and creates/closes loan records in a single
// transaction, so stock and loan state never diverge.
type BorrowService struct {
	db        *gorm.DB
	borrowals *borrowRepo.BorrowRepository
	equipment *equipmentRepo.EquipmentRepository
	members   *memberRepo.MemberRepository
	now       func() time.Time
}

func NewBorrowService(db *gorm.DB) *BorrowService {
	return &BorrowService{
		db:        db,
		borrowals: borrowRepo.NewBorrowRepository(db),
		equipment: equipmentRepo.NewEquipmentRepository(db),
		members:   memberRepo.NewMemberRepository(db),
		now:       time.Now,
	}
}

// LineInput is one requested (item, quantity) pair.
type LineInput struct {
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// SubmitInput carries a borrow submission. DueAt stays a string here because
// "present and parseable" is itself a validated precondition.
type SubmitInput struct {
	MemberIdentity string      `json:"member_identity"`
	Lines          []LineInput `json:"lines"`
	DueAt          string      `json:"due_at"`
	ApproverName   string      `json:"approver_name"`
	Note           string      `json:"note"`
}

var dueAtLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}

func parseDueAt(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SubmitBorrow checks all batch preconditions, collecting every violation,
// then commits atomically: each line's stock is checked against the live
// (row-locked) value and decremented, and the borrowal is created Open. If
// any line lacks stock the whole transaction rolls back untouched.
func (s *BorrowService) SubmitBorrow(in SubmitInput) (*borrowEntity.Borrowal, error) {
	var problems []string

	member, err := s.members.FindByIdentity(in.MemberIdentity)
	if err != nil {
		return nil, err
	}
	if member == nil {
		problems = append(problems, ProblemMemberNotFound)
	}
	if len(in.Lines) == 0 {
		problems = append(problems, ProblemEmptyCart)
	}
	for _, line := range in.Lines {
		if line.Quantity <= 0 {
			problems = append(problems, ProblemInvalidQuantity)
			break
		}
	}
	dueAt, ok := parseDueAt(in.DueAt)
	if !ok {
		problems = append(problems, ProblemMissingDueDate)
	}
	if member != nil {
		open, err := s.borrowals.FindOpenByIdentity(member.IdentityCode)
		if err != nil {
			return nil, err
		}
		if open != nil {
			problems = append(problems, ProblemOpenBorrowal)
		}
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	b := &borrowEntity.Borrowal{
		Ref:            uuid.NewString(),
		MemberIdentity: member.IdentityCode,
		BorrowerName:   member.DisplayName(),
		ApproverName:   in.ApproverName,
		Note:           in.Note,
		Advisor:        member.Advisor,
		Status:         borrowEntity.StatusOpen,
		DueAt:          dueAt,
		CreatedAt:      s.now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Re-check under lock: two concurrent submits for the same member
		// must not both pass the open-loan precondition.
		open, err := s.borrowals.WithTx(tx).FindOpenByIdentityForUpdate(member.IdentityCode)
		if err != nil {
			return err
		}
		if open != nil {
			return &ValidationError{Problems: []string{ProblemOpenBorrowal}}
		}

		equip := s.equipment.WithTx(tx)
		for _, line := range in.Lines {
			item, err := equip.GetForUpdate(line.ItemID)
			if err != nil {
				if err == equipmentRepo.ErrNotFound {
					return fmt.Errorf("line item %d: %w", line.ItemID, err)
				}
				return err
			}
			if item.Stock < line.Quantity {
				return &InsufficientStockError{
					ItemID:    item.ItemID,
					Requested: line.Quantity,
					Available: item.Stock,
				}
			}
			if err := equip.AdjustStock(item.ItemID, -line.Quantity); err != nil {
				return err
			}
			b.Lines = append(b.Lines, borrowEntity.Line{
				ItemID:      line.ItemID,
				BorrowedQty: line.Quantity,
				Status:      borrowEntity.StatusOpen,
			})
		}
		return s.borrowals.WithTx(tx).Create(b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ConfirmReturn closes an open borrowal: verification must pass, then the
// header, every line and every touched item's stock commit together.
func (s *BorrowService) ConfirmReturn(borrowalID uint, verification string) (*borrowEntity.Borrowal, error) {
	b, err := s.borrowals.Get(borrowalID)
	if err != nil {
		if err == borrowRepo.ErrNotFound {
			return nil, ErrBorrowalNotFound
		}
		return nil, err
	}
	if b.Status == borrowEntity.StatusReturned {
		return nil, ErrAlreadyReturned
	}
	if !Verified(verification, b) {
		return nil, ErrVerificationMismatch
	}

	at := s.now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// MarkReturned only flips an Open header. A concurrent return that
		// committed after the check above loses here, before any stock credit.
		if err := s.borrowals.WithTx(tx).MarkReturned(b, at); err != nil {
			if err == borrowRepo.ErrNotOpen {
				return ErrAlreadyReturned
			}
			return err
		}
		equip := s.equipment.WithTx(tx)
		for _, line := range b.Lines {
			if err := equip.AdjustStock(line.ItemID, line.BorrowedQty); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.borrowals.Get(borrowalID)
}

// FindOpenByIdentity exposes the open-loan query used by the submit
// precondition and by the member deletion guard.
func (s *BorrowService) FindOpenByIdentity(code string) (*borrowEntity.Borrowal, error) {
	return s.borrowals.FindOpenByIdentity(code)
}

func (s *BorrowService) ListByStatus(status borrowEntity.Status) ([]borrowEntity.Borrowal, error) {
	return s.borrowals.ListByStatus(status)
}

func (s *BorrowService) Get(id uint) (*borrowEntity.Borrowal, error) {
	b, err := s.borrowals.Get(id)
	if err != nil {
		if err == borrowRepo.ErrNotFound {
			return nil, ErrBorrowalNotFound
		}
		return nil, err
	}
	return b, nil
}
