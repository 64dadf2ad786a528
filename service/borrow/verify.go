package borrow

import (
	"strings"

	borrowEntity "sportloan.GO/model/entity/borrow"
)

// Verified is the soft return-verification policy: the freeform input must
// equal the borrower's identity code or be a substring of the display name.
// This is a staffed-counter sanity check, not authentication; keeping it as
// a pure predicate lets it be swapped for something stronger later without
// touching the state machine.
func Verified(input string, b *borrowEntity.Borrowal) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	return input == b.MemberIdentity || strings.Contains(b.BorrowerName, input)
}
