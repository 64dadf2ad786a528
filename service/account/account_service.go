package account

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"sportloan.GO/core/policy"
	entity "sportloan.GO/model/entity"
	accountRepo "sportloan.GO/model/repository/account"
)

var (
	ErrAccountNotFound   = errors.New("user account not found")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrIncompleteAccount = errors.New("username, first name and last name are required")
	ErrPasswordRequired  = errors.New("a password is required for a new account")
	ErrBadCredentials    = errors.New("invalid username or password")
	// ErrSelfDelete: the acting account may never delete itself,
	// regardless of role.
	ErrSelfDelete = errors.New("cannot delete the acting account")
)

type AccountService struct {
	accounts *accountRepo.AccountRepository
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{accounts: accountRepo.NewAccountRepository(db)}
}

func (s *AccountService) List() ([]entity.UserAccount, error) {
	return s.accounts.List()
}

func (s *AccountService) Get(id uint) (*entity.UserAccount, error) {
	a, err := s.accounts.Get(id)
	if err != nil {
		if errors.Is(err, accountRepo.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return a, nil
}

// Create registers a new staff account with a bcrypt-hashed password.
func (s *AccountService) Create(a *entity.UserAccount, password string) error {
	if a.Username == "" || a.FirstName == "" || a.LastName == "" {
		return ErrIncompleteAccount
	}
	if password == "" {
		return ErrPasswordRequired
	}
	if !policy.Valid(policy.Level(a.Role)) {
		a.Role = int16(policy.Officer)
	}
	existing, err := s.accounts.FindByUsername(a.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateUsername
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.UserID = 0
	a.PasswordHash = string(hash)
	return s.accounts.Create(a)
}

// Update edits an account. A blank password keeps the stored hash.
func (s *AccountService) Update(a *entity.UserAccount, password string) error {
	if a.Username == "" || a.FirstName == "" || a.LastName == "" {
		return ErrIncompleteAccount
	}
	existing, err := s.Get(a.UserID)
	if err != nil {
		return err
	}
	if password == "" {
		a.PasswordHash = existing.PasswordHash
	} else {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		a.PasswordHash = string(hash)
	}
	a.LastLogin = existing.LastLogin
	a.Created = existing.Created
	return s.accounts.Update(a)
}

// Delete removes an account. actorID is the id of the caller; self-deletion
// is always refused.
func (s *AccountService) Delete(actorID, id uint) error {
	if actorID == id {
		return ErrSelfDelete
	}
	if err := s.accounts.Delete(id); err != nil {
		if errors.Is(err, accountRepo.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// Login verifies credentials and stamps the last-login date.
func (s *AccountService) Login(username, password string) (*entity.UserAccount, error) {
	a, err := s.accounts.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	a.LastLogin = datatypes.Date(time.Now())
	if err := s.accounts.Update(a); err != nil {
		return nil, err
	}
	return a, nil
}
