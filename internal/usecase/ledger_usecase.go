package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/metrics"
)

// LedgerUseCase is the single code path that mutates a balance or points
// balance. Every mutation runs as one atomic unit: lock the membership row,
// compute the new balance, persist it, and append an immutable transaction
// record carrying before/after values. Deposits, withdrawals, tournament
// buy-ins/refunds and point awards are all thin callers of this engine.
type LedgerUseCase struct {
	txManager      TransactionManager
	membershipRepo MembershipRepository
	txRepo         TransactionRepository
	idGen          IDGenerator
	retrier        Retrier
	metrics        *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	membershipRepo MembershipRepository,
	txRepo TransactionRepository,
	idGen IDGenerator,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:      txManager,
		membershipRepo: membershipRepo,
		txRepo:         txRepo,
		idGen:          idGen,
	}
}

// WithRetrier makes standalone mutations retry on deadlock or serialization
// failure. Callers that manage their own transaction retry themselves.
func (uc *LedgerUseCase) WithRetrier(retrier Retrier) *LedgerUseCase {
	uc.retrier = retrier
	return uc
}

// WithMetrics enables mutation counters and histograms.
func (uc *LedgerUseCase) WithMetrics(m *metrics.Metrics) *LedgerUseCase {
	uc.metrics = m
	return uc
}

func (uc *LedgerUseCase) observeMutation(kind domain.TransactionKind, delta decimal.Decimal, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	if err != nil {
		uc.metrics.MutationErrors.WithLabelValues(mutationErrorReason(err)).Inc()
		return
	}
	uc.metrics.MutationsCommitted.WithLabelValues(string(kind)).Inc()
	uc.metrics.MutationDuration.Observe(time.Since(start).Seconds())
	amount, _ := delta.Abs().Float64()
	uc.metrics.MutationAmount.Observe(amount)
}

func mutationErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, domain.ErrMembershipFrozen):
		return "membership_frozen"
	case errors.Is(err, domain.ErrReferenceConflict):
		return "reference_conflict"
	case errors.Is(err, domain.ErrMembershipNotFound):
		return "not_found"
	default:
		return "other"
	}
}

func (uc *LedgerUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}
	return uc.retrier.Retry(ctx, operation)
}

// MutateBalanceInput represents one balance mutation request. Delta is
// signed; a negative delta that would drive the balance below zero fails
// hard with ErrInsufficientFunds. Reference is optional; when empty the
// engine generates a globally unique one.
type MutateBalanceInput struct {
	TenantID    string
	ActorID     string
	Delta       decimal.Decimal
	Kind        domain.TransactionKind
	Description string
	Reference   string
}

// MutatePointsInput represents one points mutation request.
type MutatePointsInput struct {
	TenantID    string
	ActorID     string
	Delta       int64
	Kind        domain.TransactionKind
	Description string
	Reference   string
}

// MutationResult carries the committed transaction and the resulting balances.
type MutationResult struct {
	Transaction *domain.Transaction
	NewBalance  decimal.Decimal
	NewPoints   int64
}

// MutateBalance executes a monetary mutation in its own database transaction.
func (uc *LedgerUseCase) MutateBalance(ctx context.Context, input MutateBalanceInput) (*MutationResult, error) {
	if err := domain.ValidateMutationAmount(input.Delta); err != nil {
		return nil, err
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	start := time.Now()

	var result *MutationResult
	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		res, err := uc.MutateBalanceInTx(ctx, tx, input)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = res
		return nil
	})
	uc.observeMutation(input.Kind, input.Delta, start, err)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// MutateBalanceInTx executes a monetary mutation inside a caller-managed
// transaction. The tournament state machine uses this to pair a seat change
// with its charge or refund in one commit.
func (uc *LedgerUseCase) MutateBalanceInTx(ctx context.Context, tx Transaction, input MutateBalanceInput) (*MutationResult, error) {
	m, err := uc.membershipRepo.GetForUpdate(ctx, tx, input.TenantID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if !m.IsActive() {
		return nil, domain.ErrMembershipFrozen
	}

	newBalance := m.Balance.Add(input.Delta)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s, requested %s",
			domain.ErrInsufficientFunds, m.Balance, input.Delta.Neg())
	}

	now := time.Now().UTC()

	record := &domain.Transaction{
		Reference:     input.Reference,
		TenantID:      input.TenantID,
		ActorID:       input.ActorID,
		Kind:          input.Kind,
		Amount:        input.Delta,
		BalanceBefore: m.Balance,
		BalanceAfter:  newBalance,
		Description:   input.Description,
		CreatedAt:     now,
	}
	if record.Reference == "" {
		record.Reference = uc.generateReference()
	}

	// The ledger entry goes in first so a duplicate reference aborts the
	// transaction before the balance row is touched.
	if err := uc.txRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := uc.membershipRepo.UpdateBalance(ctx, tx, input.TenantID, input.ActorID, newBalance, now); err != nil {
		return nil, err
	}

	return &MutationResult{
		Transaction: record,
		NewBalance:  newBalance,
		NewPoints:   m.Points,
	}, nil
}

// MutatePoints executes a points mutation in its own database transaction.
// Deductions that would drive points negative fail hard; nothing is clamped.
func (uc *LedgerUseCase) MutatePoints(ctx context.Context, input MutatePointsInput) (*MutationResult, error) {
	if input.Delta == 0 {
		return nil, domain.ErrInvalidPoints
	}
	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	start := time.Now()

	var result *MutationResult
	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		res, err := uc.MutatePointsInTx(ctx, tx, input)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = res
		return nil
	})
	uc.observeMutation(input.Kind, decimal.NewFromInt(input.Delta), start, err)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// MutatePointsInTx executes a points mutation inside a caller-managed
// transaction.
func (uc *LedgerUseCase) MutatePointsInTx(ctx context.Context, tx Transaction, input MutatePointsInput) (*MutationResult, error) {
	m, err := uc.membershipRepo.GetForUpdate(ctx, tx, input.TenantID, input.ActorID)
	if err != nil {
		return nil, err
	}

	if !m.IsActive() {
		return nil, domain.ErrMembershipFrozen
	}

	newPoints := m.Points + input.Delta
	if newPoints < 0 {
		return nil, fmt.Errorf("%w: points %d, requested %d",
			domain.ErrInsufficientPoints, m.Points, -input.Delta)
	}

	now := time.Now().UTC()

	record := &domain.Transaction{
		Reference:     input.Reference,
		TenantID:      input.TenantID,
		ActorID:       input.ActorID,
		Kind:          input.Kind,
		Amount:        decimal.NewFromInt(input.Delta),
		BalanceBefore: decimal.NewFromInt(m.Points),
		BalanceAfter:  decimal.NewFromInt(newPoints),
		Description:   input.Description,
		CreatedAt:     now,
	}
	if record.Reference == "" {
		record.Reference = uc.generateReference()
	}

	if err := uc.txRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	if err := uc.membershipRepo.UpdatePoints(ctx, tx, input.TenantID, input.ActorID, newPoints, now); err != nil {
		return nil, err
	}

	return &MutationResult{
		Transaction: record,
		NewBalance:  m.Balance,
		NewPoints:   newPoints,
	}, nil
}

// GetTransaction retrieves a transaction by reference. Callers that timed
// out waiting for a mutation re-query here before retrying.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, tenantID, reference string) (*domain.Transaction, error) {
	return uc.txRepo.GetByReference(ctx, tenantID, reference)
}

// ListTransactionsInput represents input for listing ledger entries.
type ListTransactionsInput struct {
	TenantID string
	ActorID  string
	Limit    int
	Offset   int
}

// ListTransactions lists a membership's ledger entries, newest first.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.txRepo.ListByMembership(ctx, input.TenantID, input.ActorID, input.Limit, input.Offset)
}

func (uc *LedgerUseCase) generateReference() string {
	return "TXN-" + uc.idGen.Generate()
}
