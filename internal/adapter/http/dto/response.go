package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

// MembershipResponse represents a membership in API responses.
type MembershipResponse struct {
	TenantID    string          `json:"tenant_id"`
	ActorID     string          `json:"actor_id"`
	DisplayName string          `json:"display_name"`
	Email       string          `json:"email"`
	Role        domain.Role     `json:"role"`
	Status      string          `json:"status"`
	Balance     decimal.Decimal `json:"balance"`
	Points      int64           `json:"points"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MembershipFromDomain converts a domain membership to a response.
func MembershipFromDomain(m *domain.Membership) *MembershipResponse {
	return &MembershipResponse{
		TenantID:    m.TenantID,
		ActorID:     m.ActorID,
		DisplayName: m.DisplayName,
		Email:       m.Email,
		Role:        m.Role,
		Status:      string(m.Status),
		Balance:     m.Balance,
		Points:      m.Points,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// MembershipsFromDomain converts domain memberships to responses.
func MembershipsFromDomain(members []*domain.Membership) []*MembershipResponse {
	result := make([]*MembershipResponse, len(members))
	for i, m := range members {
		result[i] = MembershipFromDomain(m)
	}
	return result
}

// ListMembersResponse wraps a page of memberships.
type ListMembersResponse struct {
	Members []*MembershipResponse `json:"members"`
	Total   int64                 `json:"total"`
}

// TransactionResponse represents a ledger entry in API responses.
type TransactionResponse struct {
	Reference     string          `json:"reference"`
	TenantID      string          `json:"tenant_id"`
	ActorID       string          `json:"actor_id"`
	Kind          string          `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Description   string          `json:"description,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(tx *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		Reference:     tx.Reference,
		TenantID:      tx.TenantID,
		ActorID:       tx.ActorID,
		Kind:          string(tx.Kind),
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Description:   tx.Description,
		CreatedAt:     tx.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, tx := range txs {
		result[i] = TransactionFromDomain(tx)
	}
	return result
}

// ListTransactionsResponse wraps a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// MutationResponse represents the outcome of a committed mutation.
type MutationResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	NewBalance  decimal.Decimal      `json:"new_balance"`
	NewPoints   int64                `json:"new_points"`
}

// MutationFromResult converts a use case mutation result to a response.
func MutationFromResult(res *usecase.MutationResult) *MutationResponse {
	return &MutationResponse{
		Transaction: TransactionFromDomain(res.Transaction),
		NewBalance:  res.NewBalance,
		NewPoints:   res.NewPoints,
	}
}

// TournamentResponse represents a tournament in API responses.
type TournamentResponse struct {
	ID                     string          `json:"id"`
	TenantID               string          `json:"tenant_id"`
	Name                   string          `json:"name"`
	BuyIn                  decimal.Decimal `json:"buy_in"`
	Fee                    decimal.Decimal `json:"fee"`
	MaxPlayers             int             `json:"max_players"`
	StartTime              time.Time       `json:"start_time"`
	EndTime                *time.Time      `json:"end_time,omitempty"`
	LateRegUntil           *time.Time      `json:"late_reg_until,omitempty"`
	CancellationWindowSecs int64           `json:"cancellation_window_secs"`
	Status                 string          `json:"status"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// TournamentFromDomain converts a domain tournament to a response.
func TournamentFromDomain(t *domain.Tournament) *TournamentResponse {
	return &TournamentResponse{
		ID:                     t.ID,
		TenantID:               t.TenantID,
		Name:                   t.Name,
		BuyIn:                  t.BuyIn,
		Fee:                    t.Fee,
		MaxPlayers:             t.MaxPlayers,
		StartTime:              t.StartTime,
		EndTime:                t.EndTime,
		LateRegUntil:           t.LateRegUntil,
		CancellationWindowSecs: int64(t.CancellationWindow.Seconds()),
		Status:                 string(t.Status),
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

// TournamentsFromDomain converts domain tournaments to responses.
func TournamentsFromDomain(tournaments []*domain.Tournament) []*TournamentResponse {
	result := make([]*TournamentResponse, len(tournaments))
	for i, t := range tournaments {
		result[i] = TournamentFromDomain(t)
	}
	return result
}

// ListTournamentsResponse wraps a page of tournaments.
type ListTournamentsResponse struct {
	Tournaments []*TournamentResponse `json:"tournaments"`
	Total       int64                 `json:"total"`
}

// RegistrationResponse represents a tournament seat in API responses.
type RegistrationResponse struct {
	TournamentID string          `json:"tournament_id"`
	TenantID     string          `json:"tenant_id"`
	ActorID      string          `json:"actor_id"`
	Charge       decimal.Decimal `json:"charge"`
	RegisteredAt time.Time       `json:"registered_at"`
}

// RegistrationFromDomain converts a domain registration to a response.
func RegistrationFromDomain(reg *domain.Registration) *RegistrationResponse {
	return &RegistrationResponse{
		TournamentID: reg.TournamentID,
		TenantID:     reg.TenantID,
		ActorID:      reg.ActorID,
		Charge:       reg.Charge,
		RegisteredAt: reg.RegisteredAt,
	}
}

// RegistrationsFromDomain converts domain registrations to responses.
func RegistrationsFromDomain(regs []*domain.Registration) []*RegistrationResponse {
	result := make([]*RegistrationResponse, len(regs))
	for i, reg := range regs {
		result[i] = RegistrationFromDomain(reg)
	}
	return result
}

// RegisterResponse represents the outcome of a successful registration.
type RegisterResponse struct {
	Registration  *RegistrationResponse `json:"registration"`
	NewBalance    decimal.Decimal       `json:"new_balance"`
	AmountCharged decimal.Decimal       `json:"amount_charged"`
	PointsAwarded int64                 `json:"points_awarded"`
}

// RegisterFromResult converts a use case registration result to a response.
func RegisterFromResult(res *usecase.RegisterResult) *RegisterResponse {
	return &RegisterResponse{
		Registration:  RegistrationFromDomain(res.Registration),
		NewBalance:    res.NewBalance,
		AmountCharged: res.AmountCharged,
		PointsAwarded: res.PointsAwarded,
	}
}

// CancelResponse represents the outcome of a successful cancellation.
type CancelResponse struct {
	NewBalance   decimal.Decimal `json:"new_balance"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
}

// CancelFromResult converts a use case cancellation result to a response.
func CancelFromResult(res *usecase.CancelResult) *CancelResponse {
	return &CancelResponse{
		NewBalance:   res.NewBalance,
		RefundAmount: res.RefundAmount,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
