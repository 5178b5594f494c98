package domain

import "errors"

var (
	// Membership errors
	ErrMembershipNotFound = errors.New("membership not found")
	ErrMembershipExists   = errors.New("membership already exists")
	ErrMembershipFrozen   = errors.New("membership is frozen")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrInsufficientPoints = errors.New("insufficient points")

	// Ledger errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrReferenceConflict   = errors.New("transaction reference already exists")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Tournament errors
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentNotOpen        = errors.New("tournament is not open for registration")
	ErrRegistrationClosed       = errors.New("registration deadline has passed")
	ErrTournamentFull           = errors.New("tournament is full")
	ErrAlreadyRegistered        = errors.New("already registered for this tournament")
	ErrNotRegistered            = errors.New("no active registration for this tournament")
	ErrCancelDeadlinePassed     = errors.New("cancellation deadline has passed")
	ErrTournamentNotCancellable = errors.New("tournament can no longer be cancelled")

	// Authorization errors
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidToken         = errors.New("invalid token")
	ErrExpiredToken         = errors.New("token has expired")
	ErrPermissionDenied     = errors.New("role does not permit this operation")
	ErrUnknownOperation     = errors.New("unknown operation")
	ErrConfirmationRequired = errors.New("operation requires confirmation")
	ErrNoPendingOperation   = errors.New("no pending operation to confirm")
	ErrMissingParameter     = errors.New("missing required parameter")
)
