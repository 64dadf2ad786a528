package policy

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Level orders roles numerically: 1 is the highest privilege. A role is
// permitted everything a numerically larger level is.
type Level int16

const (
	Admin   Level = 1
	Manager Level = 2
	Officer Level = 3
)

// ContextKey is where the auth middleware stores the caller's level.
const ContextKey = "role_level"

// ActorKey is where the auth middleware stores the caller's account id
// (0 for env-configured superuser credentials).
const ActorKey = "account_id"

func Valid(l Level) bool {
	return l >= Admin && l <= Officer
}

// HasPermission reports whether role meets the required level.
func HasPermission(role, required Level) bool {
	return Valid(role) && role <= required
}

// FromName maps a role name to its level.
func FromName(name string) (Level, bool) {
	switch name {
	case "admin":
		return Admin, true
	case "manager":
		return Manager, true
	case "officer":
		return Officer, true
	}
	return 0, false
}

func Name(l Level) string {
	switch l {
	case Admin:
		return "admin"
	case Manager:
		return "manager"
	case Officer:
		return "officer"
	}
	return "unknown"
}

// Require gates a route group on a minimum level. The auth middleware must
// run first and set ContextKey.
func Require(required Level) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKey).(Level)
			if !ok || !HasPermission(role, required) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "insufficient role"})
			}
			return next(c)
		}
	}
}

// Actor returns the caller's account id, 0 when unknown.
func Actor(c echo.Context) uint {
	id, _ := c.Get(ActorKey).(uint)
	return id
}
