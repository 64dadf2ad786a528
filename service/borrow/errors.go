package borrow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBorrowalNotFound     = errors.New("borrowal not found")
	ErrAlreadyReturned      = errors.New("borrowal already returned")
	ErrVerificationMismatch = errors.New("verification input does not match the borrower")
)

// Canonical problem texts collected by SubmitBorrow. The submit form reports
// every violation at once rather than stopping at the first.
const (
	ProblemMemberNotFound  = "member not found"
	ProblemEmptyCart       = "no equipment lines selected"
	ProblemMissingDueDate  = "due date is missing or unparseable"
	ProblemOpenBorrowal    = "member has an open borrowal"
	ProblemInvalidQuantity = "line quantity must be positive"
)

// ValidationError carries the full list of precondition violations.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "borrow validation failed: " + strings.Join(e.Problems, "; ")
}

// Has reports whether a specific problem was collected.
func (e *ValidationError) Has(problem string) bool {
	for _, p := range e.Problems {
		if p == problem {
			return true
		}
	}
	return false
}

// InsufficientStockError is raised at commit time when a line asks for more
// units than the item currently has. Nothing is mutated when it is returned.
type InsufficientStockError struct {
	ItemID    uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d: requested %d, available %d",
		e.ItemID, e.Requested, e.Available)
}
