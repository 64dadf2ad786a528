package borrow

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"sportloan.GO/api"
	borrowEntity "sportloan.GO/model/entity/borrow"
	borrowService "sportloan.GO/service/borrow"
)

func init() {
	api.RegisterModule(RegisterBorrowRoutes)
}

func RegisterBorrowRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := borrowService.NewBorrowService(db)
	g := apiGroup.Group("/borrowals")

	// GET /api/borrowals – all open by default, ?status=returned for history
	g.GET("", func(c echo.Context) error {
		status := borrowEntity.StatusOpen
		if c.QueryParam("status") == "returned" {
			status = borrowEntity.StatusReturned
		}
		list, err := svc.ListByStatus(status)
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	})

	// GET /api/borrowals/open?identity=… – a member's open borrowal, if any
	g.GET("/open", func(c echo.Context) error {
		code := c.QueryParam("identity")
		if code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "identity query parameter is required"})
		}
		b, err := svc.FindOpenByIdentity(code)
		if err != nil {
			return api.JSONError(c, err)
		}
		if b == nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no open borrowal for identity"})
		}
		return c.JSON(http.StatusOK, b)
	})

	g.GET("/:id", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		b, err := svc.Get(uint(id))
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, b)
	})

	// POST /api/borrowals – submit a borrow; all precondition violations come
	// back together as a 422
	g.POST("", func(c echo.Context) error {
		var in borrowService.SubmitInput
		if err := c.Bind(&in); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		b, err := svc.SubmitBorrow(in)
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusCreated, b)
	})

	// POST /api/borrowals/:id/return – close an open borrowal after borrower
	// verification; restores stock for every line
	g.POST("/:id/return", func(c echo.Context) error {
		id, _ := strconv.ParseUint(c.Param("id"), 10, 32)
		var body struct {
			Verification string `json:"verification"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		b, err := svc.ConfirmReturn(uint(id), body.Verification)
		if err != nil {
			return api.JSONError(c, err)
		}
		return c.JSON(http.StatusOK, b)
	})
}
