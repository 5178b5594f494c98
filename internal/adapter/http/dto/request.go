package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

// CreateMemberRequest represents a request to create a membership.
type CreateMemberRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateMemberRequest) ToUseCaseInput(tenantID string) usecase.CreateMemberInput {
	return usecase.CreateMemberInput{
		TenantID:    tenantID,
		DisplayName: r.DisplayName,
		Email:       r.Email,
		Role:        domain.Role(r.Role),
	}
}

// ChangeRoleRequest represents a request to change a member's role.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// MutationRequest represents a balance mutation request. Amount is always
// positive for deposits and withdrawals; adjustments carry a signed amount.
type MutationRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Reference   string          `json:"reference,omitempty"`
}

// ToUseCaseInput converts to use case input with the given signed delta.
func (r *MutationRequest) ToUseCaseInput(tenantID, actorID string, delta decimal.Decimal, kind domain.TransactionKind) usecase.MutateBalanceInput {
	return usecase.MutateBalanceInput{
		TenantID:    tenantID,
		ActorID:     actorID,
		Delta:       delta,
		Kind:        kind,
		Description: r.Description,
		Reference:   r.Reference,
	}
}

// PointsRequest represents a manual points award or redemption request.
type PointsRequest struct {
	Points    int64  `json:"points"`
	Reason    string `json:"reason,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PointsRequest) ToUseCaseInput(tenantID, actorID string) usecase.AwardPointsInput {
	return usecase.AwardPointsInput{
		TenantID:  tenantID,
		ActorID:   actorID,
		Points:    r.Points,
		Reason:    r.Reason,
		Reference: r.Reference,
	}
}

// CreateTournamentRequest represents a request to create a tournament.
type CreateTournamentRequest struct {
	Name                   string          `json:"name"`
	BuyIn                  decimal.Decimal `json:"buy_in"`
	Fee                    decimal.Decimal `json:"fee"`
	MaxPlayers             int             `json:"max_players"`
	StartTime              time.Time       `json:"start_time"`
	EndTime                *time.Time      `json:"end_time,omitempty"`
	LateRegUntil           *time.Time      `json:"late_reg_until,omitempty"`
	CancellationWindowSecs int64           `json:"cancellation_window_secs"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTournamentRequest) ToUseCaseInput(tenantID string) usecase.CreateTournamentInput {
	return usecase.CreateTournamentInput{
		TenantID:           tenantID,
		Name:               r.Name,
		BuyIn:              r.BuyIn,
		Fee:                r.Fee,
		MaxPlayers:         r.MaxPlayers,
		StartTime:          r.StartTime,
		EndTime:            r.EndTime,
		LateRegUntil:       r.LateRegUntil,
		CancellationWindow: time.Duration(r.CancellationWindowSecs) * time.Second,
	}
}

// AssistantRequest represents one natural-language assistant request.
// Confirm resumes the pending operation parked by the previous request.
type AssistantRequest struct {
	Text    string `json:"text"`
	Confirm bool   `json:"confirm,omitempty"`
}

// ToUseCaseInput converts to use case input for the given verified actor.
func (r *AssistantRequest) ToUseCaseInput(tenantID, actorID string, role domain.Role) usecase.AssistantInput {
	return usecase.AssistantInput{
		TenantID:  tenantID,
		ActorID:   actorID,
		ActorRole: role,
		Text:      r.Text,
		Confirm:   r.Confirm,
	}
}
