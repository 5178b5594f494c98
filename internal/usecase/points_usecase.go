package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
)

// PointsUseCase produces points mutations for club activities. Every award
// derives its transaction reference from the triggering event, so replaying
// an award returns the original result instead of crediting twice.
type PointsUseCase struct {
	ledger *LedgerUseCase
}

// NewPointsUseCase creates a new PointsUseCase.
func NewPointsUseCase(ledger *LedgerUseCase) *PointsUseCase {
	return &PointsUseCase{ledger: ledger}
}

// AwardPointsInput represents a manual points award or redemption.
type AwardPointsInput struct {
	TenantID  string
	ActorID   string
	Points    int64
	Reason    string
	Reference string
}

// AwardPoints credits points to a membership.
func (uc *PointsUseCase) AwardPoints(ctx context.Context, input AwardPointsInput) (*MutationResult, error) {
	if err := domain.ValidatePoints(input.Points); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    input.TenantID,
		ActorID:     input.ActorID,
		Delta:       input.Points,
		Kind:        domain.KindPointsEarned,
		Description: input.Reason,
		Reference:   input.Reference,
	})
}

// RedeemPoints deducts points from a membership. An insufficient balance is
// a hard failure; the shortfall is never clamped away.
func (uc *PointsUseCase) RedeemPoints(ctx context.Context, input AwardPointsInput) (*MutationResult, error) {
	if err := domain.ValidatePoints(input.Points); err != nil {
		return nil, err
	}

	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    input.TenantID,
		ActorID:     input.ActorID,
		Delta:       -input.Points,
		Kind:        domain.KindPointsRedemption,
		Description: input.Reason,
		Reference:   input.Reference,
	})
}

// AwardRegistrationBonus credits the tournament sign-up bonus once per
// (tournament, actor).
func (uc *PointsUseCase) AwardRegistrationBonus(ctx context.Context, tenantID, actorID, tournamentID string) (*MutationResult, error) {
	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    tenantID,
		ActorID:     actorID,
		Delta:       RegistrationBonusPoints,
		Kind:        domain.KindPointsEarned,
		Description: "Tournament registration bonus",
		Reference:   fmt.Sprintf("pts-reg-%s-%s", tournamentID, actorID),
	})
}

// AwardCompletionBonus credits the play-through bonus once per
// (tournament, actor).
func (uc *PointsUseCase) AwardCompletionBonus(ctx context.Context, tenantID, actorID, tournamentID string) (*MutationResult, error) {
	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    tenantID,
		ActorID:     actorID,
		Delta:       CompletionBonusPoints,
		Kind:        domain.KindPointsEarned,
		Description: "Tournament completion bonus",
		Reference:   fmt.Sprintf("pts-done-%s-%s", tournamentID, actorID),
	})
}

// AwardRankingBonus credits the finishing-position bonus. Ranks outside the
// bonus table award nothing and return a nil result.
func (uc *PointsUseCase) AwardRankingBonus(ctx context.Context, tenantID, actorID, tournamentID string, rank int) (*MutationResult, error) {
	points, ok := rankingBonusPoints[rank]
	if !ok {
		return nil, nil
	}

	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    tenantID,
		ActorID:     actorID,
		Delta:       points,
		Kind:        domain.KindPointsEarned,
		Description: fmt.Sprintf("Ranking bonus for finishing #%d", rank),
		Reference:   fmt.Sprintf("pts-rank-%s-%s", tournamentID, actorID),
	})
}

// AwardDailyLogin credits the daily login bonus at most once per day.
func (uc *PointsUseCase) AwardDailyLogin(ctx context.Context, tenantID, actorID string, day time.Time) (*MutationResult, error) {
	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    tenantID,
		ActorID:     actorID,
		Delta:       DailyLoginPoints,
		Kind:        domain.KindPointsEarned,
		Description: "Daily login bonus",
		Reference:   fmt.Sprintf("pts-daily-%s-%s-%s", tenantID, actorID, day.UTC().Format("2006-01-02")),
	})
}

// AwardReferral credits the referrer once per referred member.
func (uc *PointsUseCase) AwardReferral(ctx context.Context, tenantID, referrerID, refereeID string) (*MutationResult, error) {
	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    tenantID,
		ActorID:     referrerID,
		Delta:       ReferralPoints,
		Kind:        domain.KindPointsEarned,
		Description: "Referral bonus",
		Reference:   fmt.Sprintf("pts-ref-%s-%s", tenantID, refereeID),
	})
}

// AwardSpendRebate credits a percentage of a ledger charge as points, keyed
// to the charge's transaction reference.
func (uc *PointsUseCase) AwardSpendRebate(ctx context.Context, tenantID, actorID, chargeReference string, charge decimal.Decimal) (*MutationResult, error) {
	points := charge.Mul(decimal.NewFromInt(SpendRebatePercent)).Div(decimal.NewFromInt(100)).Floor().IntPart()
	if points <= 0 {
		return nil, nil
	}

	return uc.mutate(ctx, MutatePointsInput{
		TenantID:    tenantID,
		ActorID:     actorID,
		Delta:       points,
		Kind:        domain.KindPointsEarned,
		Description: fmt.Sprintf("Spend rebate on %s", chargeReference),
		Reference:   "pts-rebate-" + chargeReference,
	})
}

// mutate runs the points mutation and absorbs duplicate-reference failures:
// a replayed award returns the originally committed transaction.
func (uc *PointsUseCase) mutate(ctx context.Context, input MutatePointsInput) (*MutationResult, error) {
	result, err := uc.ledger.MutatePoints(ctx, input)
	if err == nil {
		return result, nil
	}

	if errors.Is(err, domain.ErrReferenceConflict) && input.Reference != "" {
		existing, getErr := uc.ledger.GetTransaction(ctx, input.TenantID, input.Reference)
		if getErr != nil {
			return nil, err
		}
		return &MutationResult{
			Transaction: existing,
			NewPoints:   existing.BalanceAfter.IntPart(),
		}, nil
	}

	return nil, err
}
