package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

// TournamentRepository implements usecase.TournamentRepository.
type TournamentRepository struct {
	pool *pgxpool.Pool
}

// NewTournamentRepository creates a new TournamentRepository.
func NewTournamentRepository(pool *pgxpool.Pool) *TournamentRepository {
	return &TournamentRepository{pool: pool}
}

const tournamentColumns = `id, tenant_id, name, buy_in, fee, max_players, start_time, end_time, late_reg_until, cancellation_window_secs, status, created_at, updated_at`

// Create inserts a new tournament.
func (r *TournamentRepository) Create(ctx context.Context, t *domain.Tournament) error {
	query := `
		INSERT INTO tournaments (` + tournamentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		t.ID,
		t.TenantID,
		t.Name,
		t.BuyIn,
		t.Fee,
		t.MaxPlayers,
		t.StartTime,
		t.EndTime,
		t.LateRegUntil,
		int64(t.CancellationWindow/time.Second),
		t.Status,
		t.CreatedAt,
		t.UpdatedAt,
	)

	return err
}

// GetByID retrieves a tournament by ID.
func (r *TournamentRepository) GetByID(ctx context.Context, tenantID, id string) (*domain.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE tenant_id = $1 AND id = $2
	`

	t, err := scanTournament(r.pool.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTournamentNotFound
	}

	return t, err
}

// GetByIDForUpdate locks the tournament row for the duration of tx. All
// registrations and cancellations for one tournament serialize here.
func (r *TournamentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, tenantID, id string) (*domain.Tournament, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE tenant_id = $1 AND id = $2
		FOR UPDATE
	`

	t, err := scanTournament(pgxTx.QueryRow(ctx, query, tenantID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTournamentNotFound
	}

	return t, err
}

// UpdateStatus moves a tournament to a new lifecycle state inside tx.
func (r *TournamentRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.TournamentStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE tournaments
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTournamentNotFound
	}

	return nil
}

// List retrieves a tenant's tournaments, soonest start first.
func (r *TournamentRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE tenant_id = $1
		ORDER BY start_time ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTournaments(rows)
}

// ListDue retrieves tournaments across all tenants whose status lags the
// clock. The lifecycle worker advances them.
func (r *TournamentRepository) ListDue(ctx context.Context, now time.Time) ([]*domain.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments
		WHERE (status IN ($1, $2) AND start_time <= $4)
		   OR (status = $3 AND end_time IS NOT NULL AND end_time <= $4)
	`

	rows, err := r.pool.Query(ctx, query,
		domain.TournamentScheduled,
		domain.TournamentRegistering,
		domain.TournamentInProgress,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTournaments(rows)
}

func collectTournaments(rows pgx.Rows) ([]*domain.Tournament, error) {
	var tournaments []*domain.Tournament
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, err
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}

func scanTournament(row rowScanner) (*domain.Tournament, error) {
	var (
		t          domain.Tournament
		windowSecs int64
	)
	err := row.Scan(
		&t.ID,
		&t.TenantID,
		&t.Name,
		&t.BuyIn,
		&t.Fee,
		&t.MaxPlayers,
		&t.StartTime,
		&t.EndTime,
		&t.LateRegUntil,
		&windowSecs,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.CancellationWindow = time.Duration(windowSecs) * time.Second
	return &t, nil
}
