package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Business error taxonomy. Handlers map these to HTTP statuses; anything outside the
// taxonomy surfaces as a masked 500.
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("you do not have access to this resource")
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("invalid input")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrSlugTaken          = errors.New("slug already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAlreadyRedeemed    = errors.New("coupon already redeemed")
)

// isUniqueViolation reports whether err is a uniqueness-constraint failure. The
// pre-check-then-insert sequence is not atomic, so the constraint is the
// authoritative guard and conflicts must be recognized from the insert itself.
// Matches both the Postgres driver and the sqlite driver used in tests.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
