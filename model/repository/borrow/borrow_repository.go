package borrow

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	borrowEntity "sportloan.GO/model/entity/borrow"
)

var (
	ErrNotFound = errors.New("borrowal not found")
	ErrNotOpen  = errors.New("borrowal is not open")
)

type BorrowRepository struct {
	db *gorm.DB
}

func NewBorrowRepository(db *gorm.DB) *BorrowRepository {
	return &BorrowRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *BorrowRepository) WithTx(tx *gorm.DB) *BorrowRepository {
	return &BorrowRepository{db: tx}
}

func (r *BorrowRepository) Get(id uint) (*borrowEntity.Borrowal, error) {
	var b borrowEntity.Borrowal
	err := r.db.Preload("Lines").First(&b, "borrowal_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindOpenByIdentity returns the member's open borrowal, or (nil, nil) when
// there is none. At most one can exist; the newest wins if data is dirty.
func (r *BorrowRepository) FindOpenByIdentity(code string) (*borrowEntity.Borrowal, error) {
	return r.findOpen(code, false)
}

// FindOpenByIdentityForUpdate is the locking variant used inside the submit
// transaction to close the check-then-create race between concurrent callers.
func (r *BorrowRepository) FindOpenByIdentityForUpdate(code string) (*borrowEntity.Borrowal, error) {
	return r.findOpen(code, true)
}

func (r *BorrowRepository) findOpen(code string, lock bool) (*borrowEntity.Borrowal, error) {
	q := r.db
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var b borrowEntity.Borrowal
	err := q.Preload("Lines").
		Where("member_identity = ? AND status = ?", code, borrowEntity.StatusOpen).
		Order("borrowal_id DESC").
		First(&b).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *BorrowRepository) ListByStatus(status borrowEntity.Status) ([]borrowEntity.Borrowal, error) {
	var out []borrowEntity.Borrowal
	err := r.db.Preload("Lines").
		Where("status = ?", status).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

// ListCreatedBetween returns borrowals with created_at inside [from, to].
func (r *BorrowRepository) ListCreatedBetween(from, to time.Time) ([]borrowEntity.Borrowal, error) {
	var out []borrowEntity.Borrowal
	err := r.db.Preload("Lines").
		Where("created_at BETWEEN ? AND ?", from, to).
		Order("created_at").Find(&out).Error
	return out, err
}

// ListOpenDueBefore returns open borrowals whose due date has passed.
func (r *BorrowRepository) ListOpenDueBefore(t time.Time) ([]borrowEntity.Borrowal, error) {
	var out []borrowEntity.Borrowal
	err := r.db.Preload("Lines").
		Where("status = ? AND due_at < ?", borrowEntity.StatusOpen, t).
		Order("due_at").Find(&out).Error
	return out, err
}

// Create inserts the borrowal header and all its lines.
func (r *BorrowRepository) Create(b *borrowEntity.Borrowal) error {
	return r.db.Create(b).Error
}

// MarkReturned flips the header and every line to Returned and reconciles
// returned quantities. The header update is guarded on the Open status, so of
// two concurrent returns only one can close the borrowal; the loser gets
// ErrNotOpen. Must run inside the caller's transaction.
func (r *BorrowRepository) MarkReturned(b *borrowEntity.Borrowal, at time.Time) error {
	res := r.db.Model(&borrowEntity.Borrowal{}).
		Where("borrowal_id = ? AND status = ?", b.BorrowalID, borrowEntity.StatusOpen).
		Updates(map[string]interface{}{
			"status":      borrowEntity.StatusReturned,
			"returned_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotOpen
	}
	return r.db.Model(&borrowEntity.Line{}).
		Where("borrowal_id = ?", b.BorrowalID).
		Updates(map[string]interface{}{
			"status":       borrowEntity.StatusReturned,
			"returned_qty": gorm.Expr("borrowed_qty"),
		}).Error
}

// CountOpenByItem counts open borrowal lines referencing the item. Used by
// the equipment deletion guard.
func (r *BorrowRepository) CountOpenByItem(itemID uint) (int64, error) {
	var n int64
	err := r.db.Model(&borrowEntity.Line{}).
		Where("item_id = ? AND status = ?", itemID, borrowEntity.StatusOpen).
		Count(&n).Error
	return n, err
}

func (r *BorrowRepository) CountByStatus(status borrowEntity.Status) (int64, error) {
	var n int64
	err := r.db.Model(&borrowEntity.Borrowal{}).
		Where("status = ?", status).Count(&n).Error
	return n, err
}
