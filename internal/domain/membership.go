package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipStatus represents the lifecycle state of a membership.
type MembershipStatus string

const (
	MembershipStatusActive MembershipStatus = "active"
	MembershipStatusFrozen MembershipStatus = "frozen"
	MembershipStatusClosed MembershipStatus = "closed"
)

// Membership binds an actor to a club with a role, a monetary balance and a
// points balance. Balance and Points are only ever changed by the ledger
// engine inside a recorded transaction.
type Membership struct {
	TenantID    string
	ActorID     string
	DisplayName string
	Email       string
	Role        Role
	Status      MembershipStatus
	Balance     decimal.Decimal
	Points      int64
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidateDebit checks if the membership balance can be debited by amount.
func (m *Membership) ValidateDebit(amount decimal.Decimal) error {
	if m.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidatePointsDebit checks if points can be deducted without going negative.
func (m *Membership) ValidatePointsDebit(points int64) error {
	if m.Points-points < 0 {
		return ErrInsufficientPoints
	}
	return nil
}

// IsActive reports whether the membership accepts balance mutations.
func (m *Membership) IsActive() bool {
	return m.Status == MembershipStatusActive
}
