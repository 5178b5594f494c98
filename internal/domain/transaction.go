package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a ledger mutation.
type TransactionKind string

const (
	KindDeposit          TransactionKind = "deposit"
	KindWithdrawal       TransactionKind = "withdrawal"
	KindTournamentBuyIn  TransactionKind = "tournament-buy-in"
	KindTournamentRefund TransactionKind = "tournament-refund"
	KindAdjustment       TransactionKind = "adjustment"
	KindPointsEarned     TransactionKind = "points-earned"
	KindPointsRedemption TransactionKind = "points-redemption"
)

// monetaryKinds mutate the monetary balance; the remaining kinds mutate the
// points balance.
var monetaryKinds = map[TransactionKind]bool{
	KindDeposit:          true,
	KindWithdrawal:       true,
	KindTournamentBuyIn:  true,
	KindTournamentRefund: true,
	KindAdjustment:       true,
}

// IsMonetary reports whether the kind applies to the monetary balance.
func (k TransactionKind) IsMonetary() bool {
	return monetaryKinds[k]
}

// Transaction is an immutable record of one balance or points mutation.
// Records are append-only: never updated, never deleted. The invariant
// BalanceAfter == BalanceBefore + Amount holds per membership chain.
type Transaction struct {
	Reference     string
	TenantID      string
	ActorID       string
	Kind          TransactionKind
	Amount        decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Description   string
	CreatedAt     time.Time
}
