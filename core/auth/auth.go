package auth

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sportloan.GO/config"
	"sportloan.GO/core/policy"
	accountRepo "sportloan.GO/model/repository/account"
)

// Middleware returns the auth middleware based on the AUTH_TYPE env var.
// "key" validates a static API key (admin level); the default validates
// BasicAuth credentials against the user_account table, falling back to the
// API_USER/API_PASS env pair for bootstrap access.
func Middleware(db *gorm.DB) echo.MiddlewareFunc {
	skipper := buildSkipper()
	switch os.Getenv("AUTH_TYPE") {
	case "key":
		return keyAuth(skipper)
	default:
		return accountAuth(accountRepo.NewAccountRepository(db), skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
		}
		return false
	}
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			if key != apiKey {
				return false, nil
			}
			c.Set(policy.ContextKey, policy.Admin)
			c.Set(policy.ActorKey, uint(0))
			return true, nil
		},
		Skipper: skipper,
	})
}

func accountAuth(repo *accountRepo.AccountRepository, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			if username == os.Getenv("API_USER") && username != "" && password == os.Getenv("API_PASS") {
				c.Set(policy.ContextKey, policy.Admin)
				c.Set(policy.ActorKey, uint(0))
				return true, nil
			}
			a, err := repo.FindByUsername(username)
			if err != nil || a == nil {
				return false, nil
			}
			if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
				return false, nil
			}
			c.Set(policy.ContextKey, policy.Level(a.Role))
			c.Set(policy.ActorKey, a.UserID)
			return true, nil
		},
		Skipper: skipper,
	})
}
