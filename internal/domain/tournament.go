package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TournamentStatus represents the lifecycle state of a tournament.
type TournamentStatus string

const (
	TournamentScheduled   TournamentStatus = "scheduled"
	TournamentRegistering TournamentStatus = "registering"
	TournamentInProgress  TournamentStatus = "in_progress"
	TournamentCompleted   TournamentStatus = "completed"
	TournamentCancelled   TournamentStatus = "cancelled"
)

// Tournament holds buy-in, capacity and timing rules for one event.
// MaxPlayers == 0 means unbounded capacity.
type Tournament struct {
	ID                 string
	TenantID           string
	Name               string
	BuyIn              decimal.Decimal
	Fee                decimal.Decimal
	MaxPlayers         int
	StartTime          time.Time
	EndTime            *time.Time
	LateRegUntil       *time.Time
	CancellationWindow time.Duration
	Status             TournamentStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Charge returns the total registration charge (buy-in plus fee).
func (t *Tournament) Charge() decimal.Decimal {
	return t.BuyIn.Add(t.Fee)
}

// AcceptsRegistrations reports whether the tournament status allows new
// registrations. Timing and capacity are checked separately.
func (t *Tournament) AcceptsRegistrations() bool {
	return t.Status == TournamentScheduled || t.Status == TournamentRegistering
}

// RegistrationOpenAt reports whether registration is still open at now.
// The late-registration cutoff governs when defined; without one,
// registration closes at start time, so a started tournament never sells
// seats while waiting for the lifecycle sweeper.
func (t *Tournament) RegistrationOpenAt(now time.Time) bool {
	if t.LateRegUntil != nil {
		return now.Before(*t.LateRegUntil)
	}
	return now.Before(t.StartTime)
}

// CancellationDeadline returns the last instant at which a registration may
// be cancelled: a fixed window before start time.
func (t *Tournament) CancellationDeadline() time.Time {
	return t.StartTime.Add(-t.CancellationWindow)
}

// CancellableAt reports whether registrations can still be cancelled at now.
func (t *Tournament) CancellableAt(now time.Time) bool {
	if t.Status == TournamentInProgress || t.Status == TournamentCompleted {
		return false
	}
	return now.Before(t.CancellationDeadline())
}

// CanCancelTournament reports whether the tournament itself can move to
// Cancelled. Only pre-InProgress states qualify.
func (t *Tournament) CanCancelTournament() bool {
	return t.Status == TournamentScheduled || t.Status == TournamentRegistering
}

// Registration binds one actor to one tournament. Created on successful
// registration and hard-deleted on cancellation; at most one active
// registration per (tournament, actor).
type Registration struct {
	TournamentID string
	TenantID     string
	ActorID      string
	Charge       decimal.Decimal
	RegisteredAt time.Time
}
