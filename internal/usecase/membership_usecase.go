package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/metrics"
)

// MembershipUseCase handles membership lifecycle. Balance and points never
// change here; only the ledger engine mutates them.
type MembershipUseCase struct {
	membershipRepo MembershipRepository
	idGen          IDGenerator
	metrics        *metrics.Metrics
}

// NewMembershipUseCase creates a new MembershipUseCase.
func NewMembershipUseCase(membershipRepo MembershipRepository, idGen IDGenerator) *MembershipUseCase {
	return &MembershipUseCase{
		membershipRepo: membershipRepo,
		idGen:          idGen,
	}
}

// WithMetrics enables membership lifecycle counters.
func (uc *MembershipUseCase) WithMetrics(m *metrics.Metrics) *MembershipUseCase {
	uc.metrics = m
	return uc
}

// CreateMemberInput represents input for creating a membership.
type CreateMemberInput struct {
	TenantID    string
	DisplayName string
	Email       string
	Role        domain.Role
}

// CreateMember creates a membership with zero balances.
func (uc *MembershipUseCase) CreateMember(ctx context.Context, input CreateMemberInput) (*domain.Membership, error) {
	if err := domain.ValidateName(input.DisplayName); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if input.Role == "" {
		input.Role = domain.RoleMember
	}
	if err := domain.ValidateRole(input.Role); err != nil {
		return nil, err
	}

	existing, err := uc.membershipRepo.GetByEmail(ctx, input.TenantID, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrMembershipExists
	}

	now := time.Now().UTC()
	m := &domain.Membership{
		TenantID:    input.TenantID,
		ActorID:     uc.idGen.Generate(),
		DisplayName: input.DisplayName,
		Email:       input.Email,
		Role:        input.Role,
		Status:      domain.MembershipStatusActive,
		Balance:     decimal.Zero,
		Points:      0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.membershipRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.MembersCreated.Inc()
	}

	return m, nil
}

// GetMembership retrieves a membership by actor ID.
func (uc *MembershipUseCase) GetMembership(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
	return uc.membershipRepo.Get(ctx, tenantID, actorID)
}

// GetMembershipByEmail retrieves a membership by email.
func (uc *MembershipUseCase) GetMembershipByEmail(ctx context.Context, tenantID, email string) (*domain.Membership, error) {
	m, err := uc.membershipRepo.GetByEmail(ctx, tenantID, email)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMembershipNotFound
	}
	return m, nil
}

// ChangeRole changes the actor's role within the tenant.
func (uc *MembershipUseCase) ChangeRole(ctx context.Context, tenantID, actorID string, role domain.Role) error {
	if err := domain.ValidateRole(role); err != nil {
		return err
	}

	if _, err := uc.membershipRepo.Get(ctx, tenantID, actorID); err != nil {
		return err
	}

	if err := uc.membershipRepo.UpdateRole(ctx, tenantID, actorID, role, time.Now().UTC()); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.RoleChanges.Inc()
	}
	return nil
}

// ListMembersInput represents input for listing members.
type ListMembersInput struct {
	TenantID string
	Limit    int
	Offset   int
}

// ListMembers lists a club's memberships.
func (uc *MembershipUseCase) ListMembers(ctx context.Context, input ListMembersInput) ([]*domain.Membership, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}
	return uc.membershipRepo.List(ctx, input.TenantID, input.Limit, input.Offset)
}
