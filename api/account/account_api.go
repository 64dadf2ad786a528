package account

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sportloan.GO/api"
	"sportloan.GO/core/policy"
	"sportloan.GO/model/entity"
	accountService "sportloan.GO/service/account"
)

func init() {
	api.RegisterModule(RegisterAccountRoutes)
}

type accountInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      int16  `json:"role"`
}

func RegisterAccountRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := accountService.NewAccountService(db)
	admin := policy.Require(policy.Admin)

	// POST /api/auth/login – exempt from auth middleware
	apiGroup.POST("/auth/login", func(c echo.Context) error {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		a, err := svc.Login(body.Username, body.Password)
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"user": a,
			"role": policy.Name(policy.Level(a.Role)),
		})
	})

	g := apiGroup.Group("/accounts", admin)

	g.GET("", func(c echo.Context) error {
		list, err := svc.List()
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		a, err := svc.Get(uint(id))
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, a)
	})

	g.POST("", func(c echo.Context) error {
		var in accountInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		a := entity.UserAccount{
			Username:  in.Username,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      in.Role,
		}
		if err := svc.Create(&a, in.Password); err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusCreated, a)
	})

	g.PUT("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		var in accountInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		a := entity.UserAccount{
			UserID:    uint(id),
			Username:  in.Username,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Role:      in.Role,
		}
		if err := svc.Update(&a, in.Password); err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, a)
	})

	// Deleting your own account is always refused, whatever the role.
	g.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		if err := svc.Delete(policy.Actor(c), uint(id)); err != nil {
			return api.JSONError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	})
}
