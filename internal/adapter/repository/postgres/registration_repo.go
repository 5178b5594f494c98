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

// RegistrationRepository implements usecase.RegistrationRepository.
type RegistrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(pool *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{pool: pool}
}

const registrationColumns = `tournament_id, tenant_id, actor_id, charge, registered_at`

// Create inserts a registration inside tx. The primary key on
// (tournament_id, actor_id) backstops the duplicate check.
func (r *RegistrationRepository) Create(ctx context.Context, tx usecase.Transaction, reg *domain.Registration) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO tournament_registrations (` + registrationColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := pgxTx.Exec(ctx, query,
		reg.TournamentID,
		reg.TenantID,
		reg.ActorID,
		reg.Charge,
		reg.RegisteredAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
		return domain.ErrAlreadyRegistered
	}

	return err
}

// Get retrieves a registration. A missing registration is not an error;
// callers use this for duplicate and existence checks.
func (r *RegistrationRepository) Get(ctx context.Context, tenantID, tournamentID, actorID string) (*domain.Registration, error) {
	return r.get(ctx, r.pool, tenantID, tournamentID, actorID)
}

// GetTx retrieves a registration inside tx.
func (r *RegistrationRepository) GetTx(ctx context.Context, tx usecase.Transaction, tenantID, tournamentID, actorID string) (*domain.Registration, error) {
	return r.get(ctx, tx.(*Tx).PgxTx(), tenantID, tournamentID, actorID)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *RegistrationRepository) get(ctx context.Context, q querier, tenantID, tournamentID, actorID string) (*domain.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `
		FROM tournament_registrations
		WHERE tenant_id = $1 AND tournament_id = $2 AND actor_id = $3
	`

	var reg domain.Registration
	err := q.QueryRow(ctx, query, tenantID, tournamentID, actorID).Scan(
		&reg.TournamentID,
		&reg.TenantID,
		&reg.ActorID,
		&reg.Charge,
		&reg.RegisteredAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

// Delete removes a registration inside tx.
func (r *RegistrationRepository) Delete(ctx context.Context, tx usecase.Transaction, tournamentID, actorID string) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		DELETE FROM tournament_registrations
		WHERE tournament_id = $1 AND actor_id = $2
	`

	tag, err := pgxTx.Exec(ctx, query, tournamentID, actorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotRegistered
	}

	return nil
}

// CountByTournament counts taken seats inside tx. Capacity is derived from
// this count under the tournament row lock, never stored separately.
func (r *RegistrationRepository) CountByTournament(ctx context.Context, tx usecase.Transaction, tournamentID string) (int, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT COUNT(*)
		FROM tournament_registrations
		WHERE tournament_id = $1
	`

	var count int
	err := pgxTx.QueryRow(ctx, query, tournamentID).Scan(&count)
	return count, err
}

// ListByTournament retrieves a tournament's registrations inside tx.
func (r *RegistrationRepository) ListByTournament(ctx context.Context, tx usecase.Transaction, tournamentID string) ([]*domain.Registration, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + registrationColumns + `
		FROM tournament_registrations
		WHERE tournament_id = $1
		ORDER BY registered_at ASC
	`

	rows, err := pgxTx.Query(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		var reg domain.Registration
		err := rows.Scan(
			&reg.TournamentID,
			&reg.TenantID,
			&reg.ActorID,
			&reg.Charge,
			&reg.RegisteredAt,
		)
		if err != nil {
			return nil, err
		}
		regs = append(regs, &reg)
	}

	return regs, rows.Err()
}
