package report

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sportloan.GO/api"
	"sportloan.GO/core/policy"
	reportService "sportloan.GO/service/report"
)

func init() {
	api.RegisterModule(RegisterReportRoutes)
}

func RegisterReportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := reportService.NewReportService(db)
	g := apiGroup.Group("/reports")

	g.GET("/dashboard", func(c echo.Context) error {
		d, err := svc.Dashboard()
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, d)
	})

	// GET /api/reports/borrowals?from=YYYY-MM-DD&to=YYYY-MM-DD
	g.GET("/borrowals", func(c echo.Context) error {
		list, err := svc.BorrowalsBetween(c.QueryParam("from"), c.QueryParam("to"))
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/overdue", func(c echo.Context) error {
		list, err := svc.Overdue(time.Now())
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	g.GET("/users", func(c echo.Context) error {
		rows, err := svc.Users()
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, rows)
	}, policy.Require(policy.Manager))
}
