package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("order not found")
	ErrForbidden          = errors.New("you do not have access to this order")
	ErrEmptyOrder         = errors.New("an order needs at least one item")
	ErrOrderTooLarge      = errors.New("order total is too large")
	ErrUnavailable        = errors.New("database unavailable")
	ErrDuplicateUser      = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidUser        = errors.New("username, email and password are required")
	ErrUserNotFound       = errors.New("user not found")
)

// storageErr marks err as a storage failure while keeping the cause in the chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}

// isDuplicate reports whether err is a unique constraint violation. Drivers
// without an error translator are matched on their message.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
