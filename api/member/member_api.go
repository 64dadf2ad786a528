package member

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sportloan.GO/api"
	"sportloan.GO/core/policy"
	"sportloan.GO/model/entity"
	memberService "sportloan.GO/service/member"
)

func init() {
	api.RegisterModule(RegisterMemberRoutes)
}

func RegisterMemberRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := memberService.NewMemberService(db)
	g := apiGroup.Group("/members")
	manager := policy.Require(policy.Manager)

	// GET /api/members – full list, or search with ?q=
	g.GET("", func(c echo.Context) error {
		var (
			members []entity.Member
			err     error
		)
		if q := c.QueryParam("q"); q != "" {
			members, err = svc.Search(q)
		} else {
			members, err = svc.List()
		}
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, members)
	})

	// GET /api/members/identity/:code – lookup by identity code
	g.GET("/identity/:code", func(c echo.Context) error {
		m, err := svc.FindByIdentity(c.Param("code"))
		if err != nil {
			return api.JSONError(c, err)
		}
		if m == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": memberService.ErrMemberNotFound.Error()})
		}
		return c.JSON(http.StatusOK, m)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		m, err := svc.Get(uint(id))
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, m)
	})

	g.POST("", func(c echo.Context) error {
		var m entity.Member
		if err := c.Bind(&m); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if err := svc.Register(&m); err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusCreated, m)
	}, manager)

	g.PUT("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		var m entity.Member
		if err := c.Bind(&m); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		m.MemberID = uint(id)
		if err := svc.Update(&m); err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, m)
	}, manager)

	g.DELETE("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		if err := svc.Delete(uint(id)); err != nil {
			return api.JSONError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}, manager)
}
