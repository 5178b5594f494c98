package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/repository/postgres"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
	"github.com/PorkerKing/pokerpal-final-app-sub000/tests/testutil"
)

func newLedgerUseCase(db *testutil.TestDB) *usecase.LedgerUseCase {
	return usecase.NewLedgerUseCase(
		postgres.NewTxManager(db.Pool),
		postgres.NewMembershipRepository(db.Pool),
		postgres.NewTransactionRepository(db.Pool),
		postgres.NewULIDGenerator(),
	).WithRetrier(postgres.NewRetrier(zerolog.Nop()))
}

func TestLedgerMutations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	ledgerUC := newLedgerUseCase(testDB)

	t.Run("deposit then withdraw keeps the chain consistent", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		testDB.CreateTestMembership(ctx, "club-1", "alice", domain.RoleMember, decimal.Zero, 0)

		dep, err := ledgerUC.MutateBalance(ctx, usecase.MutateBalanceInput{
			TenantID: "club-1",
			ActorID:  "alice",
			Delta:    decimal.RequireFromString("200"),
			Kind:     domain.KindDeposit,
		})
		if err != nil {
			t.Fatalf("deposit failed: %v", err)
		}
		if !dep.NewBalance.Equal(decimal.RequireFromString("200")) {
			t.Fatalf("expected balance 200, got %s", dep.NewBalance)
		}

		wd, err := ledgerUC.MutateBalance(ctx, usecase.MutateBalanceInput{
			TenantID: "club-1",
			ActorID:  "alice",
			Delta:    decimal.RequireFromString("-50"),
			Kind:     domain.KindWithdrawal,
		})
		if err != nil {
			t.Fatalf("withdrawal failed: %v", err)
		}
		if !wd.Transaction.BalanceBefore.Equal(dep.NewBalance) {
			t.Fatalf("chain broken: before=%s, previous after=%s",
				wd.Transaction.BalanceBefore, dep.NewBalance)
		}
		if !wd.NewBalance.Equal(decimal.RequireFromString("150")) {
			t.Fatalf("expected balance 150, got %s", wd.NewBalance)
		}
	})

	t.Run("duplicate reference is rejected and leaves no second entry", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		testDB.CreateTestMembership(ctx, "club-1", "alice", domain.RoleMember, decimal.Zero, 0)

		input := usecase.MutateBalanceInput{
			TenantID:  "club-1",
			ActorID:   "alice",
			Delta:     decimal.RequireFromString("100"),
			Kind:      domain.KindDeposit,
			Reference: "dup-ref",
		}

		if _, err := ledgerUC.MutateBalance(ctx, input); err != nil {
			t.Fatalf("first mutation failed: %v", err)
		}

		_, err := ledgerUC.MutateBalance(ctx, input)
		if !errors.Is(err, domain.ErrReferenceConflict) {
			t.Fatalf("expected ErrReferenceConflict, got %v", err)
		}

		txs, err := ledgerUC.ListTransactions(ctx, usecase.ListTransactionsInput{
			TenantID: "club-1",
			ActorID:  "alice",
		})
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(txs) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(txs))
		}
		if !txs[0].BalanceAfter.Equal(decimal.RequireFromString("100")) {
			t.Fatalf("expected balance 100 after replay, got %s", txs[0].BalanceAfter)
		}
	})

	t.Run("insufficient funds fails hard", func(t *testing.T) {
		testDB.TruncateAll(ctx)
		testDB.CreateTestMembership(ctx, "club-1", "alice", domain.RoleMember, decimal.RequireFromString("30"), 0)

		_, err := ledgerUC.MutateBalance(ctx, usecase.MutateBalanceInput{
			TenantID: "club-1",
			ActorID:  "alice",
			Delta:    decimal.RequireFromString("-31"),
			Kind:     domain.KindWithdrawal,
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})
}

func TestConcurrentWithdrawalsNoOverdraft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	ledgerUC := newLedgerUseCase(testDB)

	// Balance covers exactly 50 of the 100 attempted withdrawals.
	testDB.CreateTestMembership(ctx, "club-1", "alice", domain.RoleMember, decimal.RequireFromString("500"), 0)

	attempts := 100
	amount := decimal.RequireFromString("-10")

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ledgerUC.MutateBalance(ctx, usecase.MutateBalanceInput{
				TenantID: "club-1",
				ActorID:  "alice",
				Delta:    amount,
				Kind:     domain.KindWithdrawal,
			})
			if err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	if succeeded.Load() != 50 {
		t.Fatalf("expected exactly 50 successful withdrawals, got %d", succeeded.Load())
	}

	membershipRepo := postgres.NewMembershipRepository(testDB.Pool)
	m, err := membershipRepo.Get(ctx, "club-1", "alice")
	if err != nil {
		t.Fatalf("failed to load membership: %v", err)
	}
	if !m.Balance.Equal(decimal.Zero) {
		t.Fatalf("expected final balance 0, got %s", m.Balance)
	}
}
