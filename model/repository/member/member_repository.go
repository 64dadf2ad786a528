package member

import (
	"errors"

	"gorm.io/gorm"

	entity "sportloan.GO/model/entity"
)

var ErrNotFound = errors.New("member not found")

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) List() ([]entity.Member, error) {
	var members []entity.Member
	err := r.db.Order("member_id").Find(&members).Error
	return members, err
}

// Search matches identity code, first name or last name by substring.
func (r *MemberRepository) Search(term string) ([]entity.Member, error) {
	if term == "" {
		return r.List()
	}
	like := "%" + term + "%"
	var members []entity.Member
	err := r.db.
		Where("identity_code LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like).
		Order("member_id").Find(&members).Error
	return members, err
}

func (r *MemberRepository) Get(id uint) (*entity.Member, error) {
	var m entity.Member
	if err := r.db.First(&m, "member_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByIdentity returns (nil, nil) when no member carries the code.
func (r *MemberRepository) FindByIdentity(code string) (*entity.Member, error) {
	var m entity.Member
	err := r.db.First(&m, "identity_code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *MemberRepository) Create(m *entity.Member) error {
	return r.db.Create(m).Error
}

func (r *MemberRepository) Update(m *entity.Member) error {
	var existing entity.Member
	if err := r.db.First(&existing, "member_id = ?", m.MemberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return r.db.Save(m).Error
}

func (r *MemberRepository) Delete(id uint) error {
	res := r.db.Delete(&entity.Member{}, "member_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MemberRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&entity.Member{}).Count(&n).Error
	return n, err
}
