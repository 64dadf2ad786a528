package report

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"sportloan.GO/core/cache"
	"sportloan.GO/core/policy"
	borrowEntity "sportloan.GO/model/entity/borrow"
	accountRepo "sportloan.GO/model/repository/account"
	borrowRepo "sportloan.GO/model/repository/borrow"
	equipmentRepo "sportloan.GO/model/repository/equipment"
	memberRepo "sportloan.GO/model/repository/member"
)

var ErrBadDateRange = errors.New("from and to must be dates in YYYY-MM-DD form")

const dashboardCacheKey = "report:dashboard"
const dashboardCacheTTL = 30 // seconds

// Dashboard is the front-page summary.
type Dashboard struct {
	TotalItems     int64 `json:"total_items"`
	OpenBorrowals  int64 `json:"open_borrowals"`
	AvailableUnits int64 `json:"available_units"`
	TotalMembers   int64 `json:"total_members"`
}

// UserRow is one line of the staff report.
type UserRow struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type ReportService struct {
	equipment *equipmentRepo.EquipmentRepository
	members   *memberRepo.MemberRepository
	borrowals *borrowRepo.BorrowRepository
	accounts  *accountRepo.AccountRepository
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		equipment: equipmentRepo.NewEquipmentRepository(db),
		members:   memberRepo.NewMemberRepository(db),
		borrowals: borrowRepo.NewBorrowRepository(db),
		accounts:  accountRepo.NewAccountRepository(db),
	}
}

// Dashboard serves the cached summary, recomputing on miss.
func (s *ReportService) Dashboard() (*Dashboard, error) {
	var d Dashboard
	if cache.GetInstance().GetInto(dashboardCacheKey, &d) {
		return &d, nil
	}
	return s.RefreshDashboard()
}

// RefreshDashboard recomputes the summary and rewarms the cache. Also called
// from the overdue-scan cron job.
func (s *ReportService) RefreshDashboard() (*Dashboard, error) {
	d := &Dashboard{}
	var err error
	if d.TotalItems, err = s.equipment.Count(); err != nil {
		return nil, err
	}
	if d.AvailableUnits, err = s.equipment.TotalStock(); err != nil {
		return nil, err
	}
	if d.OpenBorrowals, err = s.borrowals.CountByStatus(borrowEntity.StatusOpen); err != nil {
		return nil, err
	}
	if d.TotalMembers, err = s.members.Count(); err != nil {
		return nil, err
	}
	cache.GetInstance().Set(dashboardCacheKey, d, dashboardCacheTTL)
	return d, nil
}

// BorrowalsBetween returns all borrowals created in [from, to], with the end
// day counted whole.
func (s *ReportService) BorrowalsBetween(from, to string) ([]borrowEntity.Borrowal, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, ErrBadDateRange
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, ErrBadDateRange
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	return s.borrowals.ListCreatedBetween(start, end)
}

// Users lists staff accounts with their role labels.
func (s *ReportService) Users() ([]UserRow, error) {
	accounts, err := s.accounts.List()
	if err != nil {
		return nil, err
	}
	rows := make([]UserRow, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, UserRow{
			Name: a.FirstName + " " + a.LastName,
			Role: policy.Name(policy.Level(a.Role)),
		})
	}
	return rows, nil
}

// Overdue lists open borrowals whose due date has passed.
func (s *ReportService) Overdue(now time.Time) ([]borrowEntity.Borrowal, error) {
	return s.borrowals.ListOpenDueBefore(now)
}
