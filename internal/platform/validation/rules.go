// Package validation holds the pure field-validation rules shared by request
// binding and the service layer. Every rule is a total function of its input:
// nil means valid, a non-nil error carries the user-facing message.
package validation

import (
	"errors"
	"regexp"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// MaxDescriptionLength bounds free-text descriptions.
	MaxDescriptionLength = 500
	// MaxURLLength bounds receipt URLs.
	MaxURLLength = 1000
)

// emailPattern requires a local part, an @ and a dotted domain, so "a@b" is
// rejected while "a@b.com" passes.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailFormat      = errors.New("invalid email format")
	ErrAmountNotPositive = errors.New("amount must be greater than 0")
	ErrAmountTooLarge   = errors.New("amount exceeds the maximum allowed value")
	ErrBudgetNegative   = errors.New("budget must not be negative")
	ErrDateInFuture     = errors.New("date must not be in the future")
	ErrDescriptionTooLong = errors.New("description must be 500 characters or fewer")
	ErrURLTooLong       = errors.New("URL must be 1000 characters or fewer")
)

// Email validates an email address. Empty input is a required error, anything
// without a dotted domain is a format error.
func Email(value string) error {
	if value == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(value) {
		return ErrEmailFormat
	}
	return nil
}

// ExpenseAmount validates a monetary expense amount: strictly positive and
// bounded by domain.MaxExpenseAmount.
func ExpenseAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrAmountNotPositive
	}
	if amount.GreaterThan(domain.MaxExpenseAmount) {
		return ErrAmountTooLarge
	}
	return nil
}

// Budget validates a budget ceiling, which may be zero but never negative.
func Budget(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrBudgetNegative
	}
	return nil
}

// Description validates free-text description length.
func Description(value string) error {
	if len(value) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// URL validates receipt URL length.
func URL(value string) error {
	if len(value) > MaxURLLength {
		return ErrURLTooLong
	}
	return nil
}

// DateNotAfter validates that date is not after now, at day granularity, so an
// expense dated today is accepted regardless of time of day.
func DateNotAfter(date time.Time, now time.Time) error {
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	if date.After(endOfToday) {
		return ErrDateInFuture
	}
	return nil
}

// ExpenseDate validates that an expense date is not in the future.
func ExpenseDate(date time.Time) error {
	return DateNotAfter(date, time.Now().UTC())
}
