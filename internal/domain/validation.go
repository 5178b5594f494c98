package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName        = errors.New("invalid member name")
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrInvalidPoints      = errors.New("points must be positive")
	ErrInvalidDescription = errors.New("description too long")
)

// Validation constants
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxMutationAmount    = "100000000" // 100 million, per-mutation cap
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateName validates a member display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateRole validates a role string.
func ValidateRole(role Role) error {
	if !role.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, string(role))
	}
	return nil
}

// ValidateMutationAmount validates the magnitude of a balance mutation.
// The delta itself may be negative; the absolute value is bounded.
func ValidateMutationAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return ErrInvalidAmount
	}
	maxAmount, _ := decimal.NewFromString(MaxMutationAmount)
	if amount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum is %s", ErrAmountTooLarge, MaxMutationAmount)
	}
	return nil
}

// ValidatePoints validates a points quantity for award or redemption.
func ValidatePoints(points int64) error {
	if points <= 0 {
		return ErrInvalidPoints
	}
	return nil
}

// ValidateDescription validates a transaction description.
func ValidateDescription(desc string) error {
	if len(desc) > MaxDescriptionLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}
	return nil
}
