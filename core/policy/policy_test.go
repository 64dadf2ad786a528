package policy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHasPermission(t *testing.T) {
	cases := []struct {
		role, required Level
		want           bool
	}{
		{Admin, Admin, true},
		{Admin, Manager, true},
		{Admin, Officer, true},
		{Manager, Admin, false},
		{Manager, Manager, true},
		{Manager, Officer, true},
		{Officer, Admin, false},
		{Officer, Manager, false},
		{Officer, Officer, true},
		{0, Officer, false},
		{4, Officer, false},
	}
	for _, tc := range cases {
		if got := HasPermission(tc.role, tc.required); got != tc.want {
			t.Errorf("HasPermission(%d, %d) = %v, want %v", tc.role, tc.required, got, tc.want)
		}
	}
}

func TestFromName_RoundTrip(t *testing.T) {
	for _, l := range []Level{Admin, Manager, Officer} {
		got, ok := FromName(Name(l))
		if !ok || got != l {
			t.Errorf("FromName(Name(%d)) = %d, %v", l, got, ok)
		}
	}
	if _, ok := FromName("root"); ok {
		t.Error("unknown role name accepted")
	}
}

func TestRequire(t *testing.T) {
	e := echo.New()
	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	run := func(role interface{}) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(ContextKey, role)
		}
		_ = Require(Manager)(handler)(c)
		return rec.Code
	}

	if code := run(Admin); code != http.StatusOK {
		t.Errorf("admin: code = %d", code)
	}
	if code := run(Manager); code != http.StatusOK {
		t.Errorf("manager: code = %d", code)
	}
	if code := run(Officer); code != http.StatusForbidden {
		t.Errorf("officer: code = %d", code)
	}
	if code := run(nil); code != http.StatusForbidden {
		t.Errorf("no role: code = %d", code)
	}
}
