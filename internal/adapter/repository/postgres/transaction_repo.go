package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over the
// append-only transactions table. Rows are never updated or deleted.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `reference, tenant_id, actor_id, kind, amount, balance_before, balance_after, description, created_at`

// Create appends a ledger entry inside tx. The unique index on reference
// turns a replay into domain.ErrReferenceConflict.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := pgxTx.Exec(ctx, query,
		t.Reference,
		t.TenantID,
		t.ActorID,
		t.Kind,
		t.Amount,
		t.BalanceBefore,
		t.BalanceAfter,
		t.Description,
		t.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrReferenceConflict
	}

	return err
}

// GetByReference retrieves a ledger entry by its reference.
func (r *TransactionRepository) GetByReference(ctx context.Context, tenantID, reference string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND reference = $2
	`

	t, err := scanTransaction(r.pool.QueryRow(ctx, query, tenantID, reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}

	return t, err
}

// ListByMembership retrieves a membership's ledger entries, newest first.
func (r *TransactionRepository) ListByMembership(ctx context.Context, tenantID, actorID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE tenant_id = $1 AND actor_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.pool.Query(ctx, query, tenantID, actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.Reference,
		&t.TenantID,
		&t.ActorID,
		&t.Kind,
		&t.Amount,
		&t.BalanceBefore,
		&t.BalanceAfter,
		&t.Description,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
