package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/metrics"
)

// TournamentUseCase drives the tournament registration state machine. Seat
// changes and their ledger mutations commit together: a registration without
// its debit, or a debit without its registration, never persists.
type TournamentUseCase struct {
	txManager        TransactionManager
	tournamentRepo   TournamentRepository
	registrationRepo RegistrationRepository
	ledger           *LedgerUseCase
	points           *PointsUseCase
	idGen            IDGenerator
	now              func() time.Time
	metrics          *metrics.Metrics
	logger           zerolog.Logger
}

// NewTournamentUseCase creates a new TournamentUseCase. points may be nil;
// registrations then earn no sign-up bonus.
func NewTournamentUseCase(
	txManager TransactionManager,
	tournamentRepo TournamentRepository,
	registrationRepo RegistrationRepository,
	ledger *LedgerUseCase,
	points *PointsUseCase,
	idGen IDGenerator,
) *TournamentUseCase {
	return &TournamentUseCase{
		txManager:        txManager,
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		ledger:           ledger,
		points:           points,
		idGen:            idGen,
		now:              func() time.Time { return time.Now().UTC() },
		logger:           zerolog.Nop(),
	}
}

// WithClock overrides the time source. Tests use this to cross deadlines
// without sleeping.
func (uc *TournamentUseCase) WithClock(now func() time.Time) *TournamentUseCase {
	uc.now = now
	return uc
}

// WithMetrics enables registration and lifecycle counters.
func (uc *TournamentUseCase) WithMetrics(m *metrics.Metrics) *TournamentUseCase {
	uc.metrics = m
	return uc
}

// WithLogger sets the logger for post-commit failures that do not surface
// as errors to the caller.
func (uc *TournamentUseCase) WithLogger(logger zerolog.Logger) *TournamentUseCase {
	uc.logger = logger
	return uc
}

// CreateTournamentInput represents input for creating a tournament.
type CreateTournamentInput struct {
	TenantID           string
	Name               string
	BuyIn              decimal.Decimal
	Fee                decimal.Decimal
	MaxPlayers         int
	StartTime          time.Time
	EndTime            *time.Time
	LateRegUntil       *time.Time
	CancellationWindow time.Duration
}

// CreateTournament creates a tournament in the Scheduled state.
func (uc *TournamentUseCase) CreateTournament(ctx context.Context, input CreateTournamentInput) (*domain.Tournament, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if input.BuyIn.IsNegative() || input.Fee.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.MaxPlayers < 0 {
		return nil, fmt.Errorf("%w: max players cannot be negative", domain.ErrInvalidAmount)
	}

	now := uc.now()
	t := &domain.Tournament{
		ID:                 uc.idGen.Generate(),
		TenantID:           input.TenantID,
		Name:               input.Name,
		BuyIn:              input.BuyIn,
		Fee:                input.Fee,
		MaxPlayers:         input.MaxPlayers,
		StartTime:          input.StartTime,
		EndTime:            input.EndTime,
		LateRegUntil:       input.LateRegUntil,
		CancellationWindow: input.CancellationWindow,
		Status:             domain.TournamentScheduled,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := uc.tournamentRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TournamentsCreated.Inc()
	}

	return t, nil
}

// RegisterInput represents a seat registration request.
type RegisterInput struct {
	TenantID     string
	ActorID      string
	TournamentID string
}

// RegisterResult carries the outcome of a successful registration.
type RegisterResult struct {
	Registration  *domain.Registration
	NewBalance    decimal.Decimal
	AmountCharged decimal.Decimal
	PointsAwarded int64
}

// Register charges buy-in plus fee and creates the seat. All checks run
// under the tournament row lock, so concurrent registrations for the same
// tournament serialize and capacity is never oversold.
func (uc *TournamentUseCase) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	result, err := uc.register(ctx, input)
	if uc.metrics != nil {
		if err != nil {
			uc.metrics.RegistrationsRejected.WithLabelValues(registrationRejectReason(err)).Inc()
		} else {
			uc.metrics.Registrations.Inc()
		}
	}
	return result, err
}

func registrationRejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTournamentFull):
		return "full"
	case errors.Is(err, domain.ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, domain.ErrRegistrationClosed):
		return "registration_closed"
	case errors.Is(err, domain.ErrTournamentNotOpen):
		return "not_open"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	default:
		return "other"
	}
}

func (uc *TournamentUseCase) register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	t, err := uc.tournamentRepo.GetByIDForUpdate(ctx, tx, input.TenantID, input.TournamentID)
	if err != nil {
		return nil, err
	}

	if !t.AcceptsRegistrations() {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrTournamentNotOpen, t.Status)
	}

	now := uc.now()
	if !t.RegistrationOpenAt(now) {
		return nil, domain.ErrRegistrationClosed
	}

	if t.MaxPlayers > 0 {
		count, err := uc.registrationRepo.CountByTournament(ctx, tx, t.ID)
		if err != nil {
			return nil, err
		}
		if count >= t.MaxPlayers {
			return nil, fmt.Errorf("%w: %d of %d seats taken", domain.ErrTournamentFull, count, t.MaxPlayers)
		}
	}

	existing, err := uc.registrationRepo.GetTx(ctx, tx, input.TenantID, t.ID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyRegistered
	}

	charge := t.Charge()

	mutation, err := uc.ledger.MutateBalanceInTx(ctx, tx, MutateBalanceInput{
		TenantID:    input.TenantID,
		ActorID:     input.ActorID,
		Delta:       charge.Neg(),
		Kind:        domain.KindTournamentBuyIn,
		Description: fmt.Sprintf("Buy-in for tournament %s", t.Name),
	})
	if err != nil {
		return nil, err
	}

	reg := &domain.Registration{
		TournamentID: t.ID,
		TenantID:     input.TenantID,
		ActorID:      input.ActorID,
		Charge:       charge,
		RegisteredAt: now,
	}
	if err := uc.registrationRepo.Create(ctx, tx, reg); err != nil {
		return nil, err
	}

	// First seat moves the tournament from Scheduled to Registering.
	if t.Status == domain.TournamentScheduled {
		if err := uc.tournamentRepo.UpdateStatus(ctx, tx, t.ID, domain.TournamentRegistering, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result := &RegisterResult{
		Registration:  reg,
		NewBalance:    mutation.NewBalance,
		AmountCharged: charge,
	}

	// The sign-up bonus runs in its own transaction after the seat is
	// committed; the membership row lock is never held across it. The
	// deterministic reference keeps a retried award from double crediting,
	// and a failed award does not unwind the registration.
	if uc.points != nil {
		bonus, err := uc.points.AwardRegistrationBonus(ctx, input.TenantID, input.ActorID, t.ID)
		switch {
		case err != nil:
			uc.logger.Warn().Err(err).
				Str("tenant_id", input.TenantID).
				Str("actor_id", input.ActorID).
				Str("tournament_id", t.ID).
				Msg("registration bonus award failed")
		case bonus != nil:
			result.PointsAwarded = RegistrationBonusPoints
		}
	}

	return result, nil
}

// CancelInput represents a seat cancellation request.
type CancelInput struct {
	TenantID     string
	ActorID      string
	TournamentID string
}

// CancelResult carries the outcome of a successful cancellation.
type CancelResult struct {
	NewBalance   decimal.Decimal
	RefundAmount decimal.Decimal
}

// Cancel deletes the registration and refunds the full charge in one commit.
func (uc *TournamentUseCase) Cancel(ctx context.Context, input CancelInput) (*CancelResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	t, err := uc.tournamentRepo.GetByIDForUpdate(ctx, tx, input.TenantID, input.TournamentID)
	if err != nil {
		return nil, err
	}

	reg, err := uc.registrationRepo.GetTx(ctx, tx, input.TenantID, t.ID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotRegistered
	}

	now := uc.now()
	if !now.Before(t.CancellationDeadline()) {
		return nil, fmt.Errorf("%w: deadline was %s",
			domain.ErrCancelDeadlinePassed, t.CancellationDeadline().Format(time.RFC3339))
	}

	if t.Status == domain.TournamentInProgress || t.Status == domain.TournamentCompleted {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrTournamentNotCancellable, t.Status)
	}

	if err := uc.registrationRepo.Delete(ctx, tx, t.ID, input.ActorID); err != nil {
		return nil, err
	}

	mutation, err := uc.ledger.MutateBalanceInTx(ctx, tx, MutateBalanceInput{
		TenantID:    input.TenantID,
		ActorID:     input.ActorID,
		Delta:       reg.Charge,
		Kind:        domain.KindTournamentRefund,
		Description: fmt.Sprintf("Refund for tournament %s", t.Name),
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RegistrationsCancelled.Inc()
	}

	return &CancelResult{
		NewBalance:   mutation.NewBalance,
		RefundAmount: reg.Charge,
	}, nil
}

// CancelTournament moves a pre-InProgress tournament to Cancelled and
// refunds every registered seat atomically.
func (uc *TournamentUseCase) CancelTournament(ctx context.Context, tenantID, tournamentID string) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	t, err := uc.tournamentRepo.GetByIDForUpdate(ctx, tx, tenantID, tournamentID)
	if err != nil {
		return err
	}

	if !t.CanCancelTournament() {
		return fmt.Errorf("%w: status is %s", domain.ErrTournamentNotCancellable, t.Status)
	}

	regs, err := uc.registrationRepo.ListByTournament(ctx, tx, t.ID)
	if err != nil {
		return err
	}

	for _, reg := range regs {
		if err := uc.registrationRepo.Delete(ctx, tx, t.ID, reg.ActorID); err != nil {
			return err
		}

		_, err := uc.ledger.MutateBalanceInTx(ctx, tx, MutateBalanceInput{
			TenantID:    tenantID,
			ActorID:     reg.ActorID,
			Delta:       reg.Charge,
			Kind:        domain.KindTournamentRefund,
			Description: fmt.Sprintf("Refund: tournament %s cancelled", t.Name),
		})
		if err != nil {
			return err
		}
	}

	if err := uc.tournamentRepo.UpdateStatus(ctx, tx, t.ID, domain.TournamentCancelled, uc.now()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TournamentsCancelled.Inc()
	}
	return nil
}

// GetTournament retrieves a tournament by ID.
func (uc *TournamentUseCase) GetTournament(ctx context.Context, tenantID, id string) (*domain.Tournament, error) {
	return uc.tournamentRepo.GetByID(ctx, tenantID, id)
}

// ListTournamentsInput represents input for listing tournaments.
type ListTournamentsInput struct {
	TenantID string
	Limit    int
	Offset   int
}

// ListTournaments lists a club's tournaments.
func (uc *TournamentUseCase) ListTournaments(ctx context.Context, input ListTournamentsInput) ([]*domain.Tournament, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.tournamentRepo.List(ctx, input.TenantID, input.Limit, input.Offset)
}

// ListRegistrations lists the seats of one tournament in registration order.
func (uc *TournamentUseCase) ListRegistrations(ctx context.Context, tenantID, tournamentID string) ([]*domain.Registration, error) {
	t, err := uc.tournamentRepo.GetByID(ctx, tenantID, tournamentID)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	regs, err := uc.registrationRepo.ListByTournament(ctx, tx, t.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return regs, nil
}

// AdvanceDue moves tournaments whose status lags the clock: open ones past
// start time become InProgress, in-progress ones past end time become
// Completed. The lifecycle worker calls this on a schedule.
func (uc *TournamentUseCase) AdvanceDue(ctx context.Context) (int, error) {
	now := uc.now()

	due, err := uc.tournamentRepo.ListDue(ctx, now)
	if err != nil {
		return 0, err
	}

	advanced := 0
	for _, t := range due {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return advanced, err
		}

		next := nextStatus(t, now)
		if next == t.Status {
			tx.Rollback(ctx)
			continue
		}

		if err := uc.tournamentRepo.UpdateStatus(ctx, tx, t.ID, next, now); err != nil {
			tx.Rollback(ctx)
			return advanced, err
		}

		if err := tx.Commit(ctx); err != nil {
			return advanced, err
		}
		advanced++
		if uc.metrics != nil {
			uc.metrics.TournamentsAdvanced.WithLabelValues(string(next)).Inc()
		}
	}

	return advanced, nil
}

func nextStatus(t *domain.Tournament, now time.Time) domain.TournamentStatus {
	switch t.Status {
	case domain.TournamentScheduled, domain.TournamentRegistering:
		if !now.Before(t.StartTime) {
			return domain.TournamentInProgress
		}
	case domain.TournamentInProgress:
		if t.EndTime != nil && !now.Before(*t.EndTime) {
			return domain.TournamentCompleted
		}
	}
	return t.Status
}
