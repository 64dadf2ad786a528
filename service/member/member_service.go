package member

import (
	"errors"

	"gorm.io/gorm"

	entity "sportloan.GO/model/entity"
	borrowRepo "sportloan.GO/model/repository/borrow"
	memberRepo "sportloan.GO/model/repository/member"
)

var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrDuplicateIdentity = errors.New("identity code already registered")
	ErrIncompleteMember  = errors.New("identity code, first name and last name are required")
	// ErrMemberOnLoan guards deletion while the member still has an open
	// borrowal. The registry itself knows nothing about loans.
	ErrMemberOnLoan = errors.New("member has an open borrowal")
)

type MemberService struct {
	members *memberRepo.MemberRepository
	loans   *borrowRepo.BorrowRepository
}

func NewMemberService(db *gorm.DB) *MemberService {
	return &MemberService{
		members: memberRepo.NewMemberRepository(db),
		loans:   borrowRepo.NewBorrowRepository(db),
	}
}

func (s *MemberService) List() ([]entity.Member, error) {
	return s.members.List()
}

func (s *MemberService) Search(term string) ([]entity.Member, error) {
	return s.members.Search(term)
}

func (s *MemberService) Get(id uint) (*entity.Member, error) {
	m, err := s.members.Get(id)
	if err != nil {
		if errors.Is(err, memberRepo.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func (s *MemberService) FindByIdentity(code string) (*entity.Member, error) {
	return s.members.FindByIdentity(code)
}

// Register creates a member; the identity code must be free.
func (s *MemberService) Register(m *entity.Member) error {
	if m.IdentityCode == "" || m.FirstName == "" || m.LastName == "" {
		return ErrIncompleteMember
	}
	existing, err := s.members.FindByIdentity(m.IdentityCode)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateIdentity
	}
	m.MemberID = 0
	return s.members.Create(m)
}

func (s *MemberService) Update(m *entity.Member) error {
	if m.IdentityCode == "" || m.FirstName == "" || m.LastName == "" {
		return ErrIncompleteMember
	}
	if err := s.members.Update(m); err != nil {
		if errors.Is(err, memberRepo.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}

// Delete refuses while an open borrowal exists for the member's identity.
func (s *MemberService) Delete(id uint) error {
	m, err := s.Get(id)
	if err != nil {
		return err
	}
	open, err := s.loans.FindOpenByIdentity(m.IdentityCode)
	if err != nil {
		return err
	}
	if open != nil {
		return ErrMemberOnLoan
	}
	if err := s.members.Delete(id); err != nil {
		if errors.Is(err, memberRepo.ErrNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	return nil
}
