package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	equipmentRepo "sportloan.GO/model/repository/equipment"
	memberRepo "sportloan.GO/model/repository/member"
	accountService "sportloan.GO/service/account"
	borrowService "sportloan.GO/service/borrow"
	equipmentService "sportloan.GO/service/equipment"
	memberService "sportloan.GO/service/member"
	reportService "sportloan.GO/service/report"
)

// JSONError maps service errors onto HTTP responses. Validation problems go
// out as 422 with the full problem list, business-rule conflicts as 409,
// lookups as 404.
func JSONError(c echo.Context, err error) error {
	var ve *borrowService.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":    "validation failed",
			"problems": ve.Problems,
		})
	}

	var se *borrowService.InsufficientStockError
	if errors.As(err, &se) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     se.Error(),
			"item_id":   se.ItemID,
			"requested": se.Requested,
			"available": se.Available,
		})
	}

	switch {
	case errors.Is(err, borrowService.ErrBorrowalNotFound),
		errors.Is(err, equipmentService.ErrItemNotFound),
		errors.Is(err, memberService.ErrMemberNotFound),
		errors.Is(err, accountService.ErrAccountNotFound),
		errors.Is(err, equipmentRepo.ErrNotFound),
		errors.Is(err, memberRepo.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})

	case errors.Is(err, borrowService.ErrAlreadyReturned),
		errors.Is(err, borrowService.ErrVerificationMismatch),
		errors.Is(err, equipmentService.ErrItemOnLoan),
		errors.Is(err, memberService.ErrMemberOnLoan),
		errors.Is(err, memberService.ErrDuplicateIdentity),
		errors.Is(err, accountService.ErrDuplicateUsername),
		errors.Is(err, accountService.ErrSelfDelete):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})

	case errors.Is(err, equipmentService.ErrIncompleteItem),
		errors.Is(err, equipmentService.ErrNegativeStock),
		errors.Is(err, memberService.ErrIncompleteMember),
		errors.Is(err, accountService.ErrIncompleteAccount),
		errors.Is(err, accountService.ErrPasswordRequired),
		errors.Is(err, reportService.ErrBadDateRange):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})

	case errors.Is(err, accountService.ErrBadCredentials):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	}

	return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
}
