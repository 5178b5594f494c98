package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
)

// MembershipRepository defines data access for memberships.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, tenantID, actorID string) (*domain.Membership, error)
	GetByEmail(ctx context.Context, tenantID, email string) (*domain.Membership, error)
	// GetForUpdate locks the membership row for the duration of tx.
	GetForUpdate(ctx context.Context, tx Transaction, tenantID, actorID string) (*domain.Membership, error)
	UpdateBalance(ctx context.Context, tx Transaction, tenantID, actorID string, balance decimal.Decimal, updatedAt time.Time) error
	UpdatePoints(ctx context.Context, tx Transaction, tenantID, actorID string, points int64, updatedAt time.Time) error
	UpdateRole(ctx context.Context, tenantID, actorID string, role domain.Role, updatedAt time.Time) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Membership, error)
}

// TransactionRepository defines data access for the append-only ledger.
// Create returns domain.ErrReferenceConflict when the reference exists.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, t *domain.Transaction) error
	GetByReference(ctx context.Context, tenantID, reference string) (*domain.Transaction, error)
	ListByMembership(ctx context.Context, tenantID, actorID string, limit, offset int) ([]*domain.Transaction, error)
}

// TournamentRepository defines data access for tournaments.
type TournamentRepository interface {
	Create(ctx context.Context, t *domain.Tournament) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Tournament, error)
	// GetByIDForUpdate locks the tournament row; registration and
	// cancellation for the same tournament serialize on this lock.
	GetByIDForUpdate(ctx context.Context, tx Transaction, tenantID, id string) (*domain.Tournament, error)
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.TournamentStatus, updatedAt time.Time) error
	List(ctx context.Context, tenantID string, limit, offset int) ([]*domain.Tournament, error)
	// ListDue returns tournaments whose status no longer matches the clock:
	// open ones past start time and in-progress ones past end time.
	ListDue(ctx context.Context, now time.Time) ([]*domain.Tournament, error)
}

// RegistrationRepository defines data access for tournament registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, tx Transaction, r *domain.Registration) error
	Get(ctx context.Context, tenantID, tournamentID, actorID string) (*domain.Registration, error)
	GetTx(ctx context.Context, tx Transaction, tenantID, tournamentID, actorID string) (*domain.Registration, error)
	Delete(ctx context.Context, tx Transaction, tournamentID, actorID string) error
	// CountByTournament counts seats inside tx; capacity is derived, never
	// stored as a separately mutable field.
	CountByTournament(ctx context.Context, tx Transaction, tournamentID string) (int, error)
	ListByTournament(ctx context.Context, tx Transaction, tournamentID string) ([]*domain.Registration, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier re-runs a transactional operation after a transient database
// failure such as a deadlock or serialization error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// ConfirmationStore holds pending confirmation-gated operations.
// Get returns (nil, nil) when no pending operation exists.
type ConfirmationStore interface {
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}
