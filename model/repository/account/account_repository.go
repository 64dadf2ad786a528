package account

import (
	"errors"

	"gorm.io/gorm"

	entity "sportloan.GO/model/entity"
)

var ErrNotFound = errors.New("user account not found")

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) List() ([]entity.UserAccount, error) {
	var accounts []entity.UserAccount
	err := r.db.Order("user_id").Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) Get(id uint) (*entity.UserAccount, error) {
	var a entity.UserAccount
	if err := r.db.First(&a, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FindByUsername returns (nil, nil) when the username is free.
func (r *AccountRepository) FindByUsername(username string) (*entity.UserAccount, error) {
	var a entity.UserAccount
	err := r.db.First(&a, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) Create(a *entity.UserAccount) error {
	return r.db.Create(a).Error
}

func (r *AccountRepository) Update(a *entity.UserAccount) error {
	var existing entity.UserAccount
	if err := r.db.First(&existing, "user_id = ?", a.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return r.db.Save(a).Error
}

func (r *AccountRepository) Delete(id uint) error {
	res := r.db.Delete(&entity.UserAccount{}, "user_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
