package account

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sportloan.GO/core/policy"
	entity "sportloan.GO/model/entity"
	accountService "sportloan.GO/service/account"
)

func accountTestEnv(t *testing.T, role policy.Level, actorID uint) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.UserAccount{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	e := echo.New()
	g := e.Group("/api")
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(policy.ContextKey, role)
			c.Set(policy.ActorKey, actorID)
			return next(c)
		}
	})
	RegisterAccountRoutes(g, db)
	return e, db
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAccountAPI_CreateAndLogin(t *testing.T) {
	e, _ := accountTestEnv(t, policy.Admin, 1)

	rec := postJSON(e, "/api/accounts",
		`{"username":"desk","password":"hunter2","first_name":"Olly","last_name":"Officer","role":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body)
	}
	var created entity.UserAccount
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = postJSON(e, "/api/auth/login", `{"username":"desk","password":"hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body)
	}
	var resp struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Role != "officer" {
		t.Errorf("role = %q, want officer", resp.Role)
	}
	// The hash must never leave the API.
	if strings.Contains(rec.Body.String(), "password_hash") {
		t.Error("password hash leaked in login response")
	}

	rec = postJSON(e, "/api/auth/login", `{"username":"desk","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", rec.Code)
	}
}

func TestAccountAPI_RequiresAdmin(t *testing.T) {
	e, _ := accountTestEnv(t, policy.Manager, 1)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))
	if rec.Code != http.StatusForbidden {
		t.Errorf("manager list accounts: status = %d, want 403", rec.Code)
	}
}

func TestAccountAPI_SelfDeleteAs409(t *testing.T) {
	e, db := accountTestEnv(t, policy.Admin, 1)
	svc := accountService.NewAccountService(db)
	a := &entity.UserAccount{Username: "root", FirstName: "Ann", LastName: "Admin", Role: 1}
	if err := svc.Create(a, "hunter2"); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	// The env pins the actor to account 1, which is this account.
	if a.UserID != 1 {
		t.Fatalf("expected seeded account to get id 1, got %d", a.UserID)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/accounts/"+strconv.FormatUint(uint64(a.UserID), 10), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409, body %s", rec.Code, rec.Body)
	}
}
