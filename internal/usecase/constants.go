package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single ledger mutation so a stuck
	// request cannot hold a membership row lock indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// ConfirmationTTL is how long a pending confirmation-gated operation
	// stays valid before the round-trip must start over.
	ConfirmationTTL = 10 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

// Points award amounts. References derived from the triggering event make
// each award idempotent.
const (
	RegistrationBonusPoints = 50
	CompletionBonusPoints   = 20
	DailyLoginPoints        = 10
	ReferralPoints          = 100

	// SpendRebatePercent is the points-per-hundred rebate on tournament
	// buy-in charges.
	SpendRebatePercent = 5
)

// rankingBonusPoints maps a final tournament rank to its points bonus.
// Ranks outside the table earn nothing.
var rankingBonusPoints = map[int]int64{
	1: 500,
	2: 300,
	3: 200,
	4: 100,
	5: 100,
}
