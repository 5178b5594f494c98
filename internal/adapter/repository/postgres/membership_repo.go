package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

const pgErrUniqueViolation = "23505"

// MembershipRepository implements usecase.MembershipRepository.
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository creates a new MembershipRepository.
func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

const membershipColumns = `tenant_id, actor_id, display_name, email, role, status, balance, points, version, created_at, updated_at`

// Create inserts a new membership.
func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	query := `
		INSERT INTO memberships (` + membershipColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		m.TenantID,
		m.ActorID,
		m.DisplayName,
		m.Email,
		m.Role,
		m.Status,
		m.Balance,
		m.Points,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrMembershipExists
	}

	return err
}

// Get retrieves a membership by tenant and actor.
func (r *MembershipRepository) Get(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE tenant_id = $1 AND actor_id = $2
	`

	m, err := scanMembership(r.pool.QueryRow(ctx, query, tenantID, actorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMembershipNotFound
	}

	return m, err
}

// GetByEmail retrieves a membership by email. A missing membership is not an
// error here; callers use this for duplicate checks.
func (r *MembershipRepository) GetByEmail(ctx context.Context, tenantID, email string) (*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE tenant_id = $1 AND email = $2
	`

	m, err := scanMembership(r.pool.QueryRow(ctx, query, tenantID, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}

	return m, err
}

// GetForUpdate locks the membership row for the duration of tx.
func (r *MembershipRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, actorID string) (*domain.Membership, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE tenant_id = $1 AND actor_id = $2
		FOR UPDATE
	`

	m, err := scanMembership(pgxTx.QueryRow(ctx, query, tenantID, actorID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrMembershipNotFound
	}

	return m, err
}

// UpdateBalance writes a new balance inside tx and bumps the row version.
func (r *MembershipRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, tenantID, actorID string, balance decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE memberships
		SET balance = $3, version = version + 1, updated_at = $4
		WHERE tenant_id = $1 AND actor_id = $2
	`

	tag, err := pgxTx.Exec(ctx, query, tenantID, actorID, balance, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMembershipNotFound
	}

	return nil
}

// UpdatePoints writes a new points balance inside tx and bumps the row version.
func (r *MembershipRepository) UpdatePoints(ctx context.Context, tx usecase.Transaction, tenantID, actorID string, points int64, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE memberships
		SET points = $3, version = version + 1, updated_at = $4
		WHERE tenant_id = $1 AND actor_id = $2
	`

	tag, err := pgxTx.Exec(ctx, query, tenantID, actorID, points, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMembershipNotFound
	}

	return nil
}

// UpdateRole changes a membership's role.
func (r *MembershipRepository) UpdateRole(ctx context.Context, tenantID, actorID string, role domain.Role, updatedAt time.Time) error {
	query := `
		UPDATE memberships
		SET role = $3, updated_at = $4
		WHERE tenant_id = $1 AND actor_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, tenantID, actorID, role, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrMembershipNotFound
	}

	return nil
}

// List retrieves a tenant's memberships with pagination.
func (r *MembershipRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Membership, error) {
	query := `
		SELECT ` + membershipColumns + `
		FROM memberships
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}

	return memberships, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMembership(row rowScanner) (*domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(
		&m.TenantID,
		&m.ActorID,
		&m.DisplayName,
		&m.Email,
		&m.Role,
		&m.Status,
		&m.Balance,
		&m.Points,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
