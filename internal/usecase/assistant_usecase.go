package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/infrastructure/metrics"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/intent"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/operation"
)

// AssistantUseCase orchestrates classified natural-language requests:
// classify the text, check the operation registry and the actor's role,
// run the confirmation round-trip for gated commands, then dispatch to the
// ledger, tournament, points or membership use cases. The classifier itself
// never authorizes and never executes.
type AssistantUseCase struct {
	memberships  *MembershipUseCase
	ledger       *LedgerUseCase
	tournaments  *TournamentUseCase
	points       *PointsUseCase
	confirmStore ConfirmationStore
	metrics      *metrics.Metrics
}

// NewAssistantUseCase creates a new AssistantUseCase.
func NewAssistantUseCase(
	memberships *MembershipUseCase,
	ledger *LedgerUseCase,
	tournaments *TournamentUseCase,
	points *PointsUseCase,
	confirmStore ConfirmationStore,
) *AssistantUseCase {
	return &AssistantUseCase{
		memberships:  memberships,
		ledger:       ledger,
		tournaments:  tournaments,
		points:       points,
		confirmStore: confirmStore,
	}
}

// WithMetrics enables assistant request counters.
func (uc *AssistantUseCase) WithMetrics(m *metrics.Metrics) *AssistantUseCase {
	uc.metrics = m
	return uc
}

// AssistantInput carries one assistant request. ActorRole is the actor's
// verified role in the tenant, supplied by the authentication layer.
type AssistantInput struct {
	TenantID  string
	ActorID   string
	ActorRole domain.Role
	Text      string
	Confirm   bool
}

// AssistantOutput is the structured response rendered back to the caller.
type AssistantOutput struct {
	Recognized        bool              `json:"recognized"`
	Operation         operation.ID      `json:"operation,omitempty"`
	Params            map[string]string `json:"params,omitempty"`
	NeedsConfirmation bool              `json:"needs_confirmation"`
	Prompt            string            `json:"prompt,omitempty"`
	Result            any               `json:"result,omitempty"`
}

// pendingOperation is the payload parked in the confirmation store between
// the two calls of a confirmation round-trip.
type pendingOperation struct {
	Operation operation.ID      `json:"operation"`
	Params    map[string]string `json:"params"`
}

// Handle runs one assistant request end to end.
func (uc *AssistantUseCase) Handle(ctx context.Context, input AssistantInput) (*AssistantOutput, error) {
	var (
		opID   operation.ID
		params map[string]string
	)

	if input.Confirm {
		pending, err := uc.loadPending(ctx, input)
		if err != nil {
			return nil, err
		}
		opID = pending.Operation
		params = pending.Params
	} else {
		res, ok := intent.Classify(input.Text)
		if !ok {
			// Unrecognized text is a non-actionable response, not an error
			// and never a silent no-op success.
			if uc.metrics != nil {
				uc.metrics.AssistantUnrecognized.Inc()
			}
			return &AssistantOutput{Recognized: false}, nil
		}
		opID = res.Operation
		params = res.Params
	}

	if uc.metrics != nil {
		uc.metrics.AssistantRequests.WithLabelValues(string(opID)).Inc()
	}

	cfg, ok := operation.Lookup(opID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOperation, opID)
	}

	if !operation.IsPermitted(input.ActorRole, opID) {
		if uc.metrics != nil {
			uc.metrics.PermissionDenials.WithLabelValues(string(opID)).Inc()
		}
		return nil, fmt.Errorf("%w: %s requires one of %v, actor role is %s",
			domain.ErrPermissionDenied, opID, cfg.RequiredRoles, input.ActorRole)
	}

	if cfg.Category == operation.CategoryModify && cfg.RequiresConfirmation && !input.Confirm {
		if err := uc.storePending(ctx, input, pendingOperation{Operation: opID, Params: params}); err != nil {
			return nil, err
		}
		if uc.metrics != nil {
			uc.metrics.ConfirmationsParked.Inc()
		}
		return &AssistantOutput{
			Recognized:        true,
			Operation:         opID,
			Params:            params,
			NeedsConfirmation: true,
			Prompt:            cfg.ConfirmPrompt,
		}, nil
	}

	result, err := uc.dispatch(ctx, input, opID, params)
	if err != nil {
		return nil, err
	}

	if input.Confirm {
		_ = uc.confirmStore.Delete(ctx, uc.confirmKey(input))
		if uc.metrics != nil {
			uc.metrics.ConfirmationsResumed.Inc()
		}
	}

	return &AssistantOutput{
		Recognized: true,
		Operation:  opID,
		Params:     params,
		Result:     result,
	}, nil
}

func (uc *AssistantUseCase) confirmKey(input AssistantInput) string {
	return fmt.Sprintf("confirm:%s:%s", input.TenantID, input.ActorID)
}

func (uc *AssistantUseCase) loadPending(ctx context.Context, input AssistantInput) (*pendingOperation, error) {
	payload, err := uc.confirmStore.Get(ctx, uc.confirmKey(input))
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, domain.ErrNoPendingOperation
	}

	var pending pendingOperation
	if err := json.Unmarshal(payload, &pending); err != nil {
		return nil, err
	}
	return &pending, nil
}

func (uc *AssistantUseCase) storePending(ctx context.Context, input AssistantInput, pending pendingOperation) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return err
	}
	return uc.confirmStore.Put(ctx, uc.confirmKey(input), payload, ConfirmationTTL)
}

// resolveTarget resolves the target membership: the email parameter when
// given, otherwise the calling actor.
func (uc *AssistantUseCase) resolveTarget(ctx context.Context, input AssistantInput, params map[string]string) (*domain.Membership, error) {
	if email, ok := params["email"]; ok {
		return uc.memberships.GetMembershipByEmail(ctx, input.TenantID, email)
	}
	return uc.memberships.GetMembership(ctx, input.TenantID, input.ActorID)
}

func requireParam(params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrMissingParameter, key)
	}
	return v, nil
}

func amountParam(params map[string]string) (decimal.Decimal, error) {
	raw, err := requireParam(params, "amount")
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q", domain.ErrInvalidAmount, raw)
	}
	return amount, nil
}

func pointsParam(params map[string]string) (int64, error) {
	raw, err := requireParam(params, "points")
	if err != nil {
		return 0, err
	}
	points, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: points %q", domain.ErrInvalidPoints, raw)
	}
	return points, nil
}

func (uc *AssistantUseCase) dispatch(ctx context.Context, input AssistantInput, opID operation.ID, params map[string]string) (any, error) {
	switch opID {
	case operation.OpGetBalance:
		m, err := uc.resolveTarget(ctx, input, params)
		if err != nil {
			return nil, err
		}
		return map[string]any{"balance": m.Balance, "member": m.DisplayName}, nil

	case operation.OpGetPoints:
		m, err := uc.resolveTarget(ctx, input, params)
		if err != nil {
			return nil, err
		}
		return map[string]any{"points": m.Points, "member": m.DisplayName}, nil

	case operation.OpListTransactions:
		return uc.ledger.ListTransactions(ctx, ListTransactionsInput{
			TenantID: input.TenantID,
			ActorID:  input.ActorID,
		})

	case operation.OpListTournaments:
		return uc.tournaments.ListTournaments(ctx, ListTournamentsInput{TenantID: input.TenantID})

	case operation.OpGetTournament:
		id, err := requireParam(params, "tournament")
		if err != nil {
			return nil, err
		}
		return uc.tournaments.GetTournament(ctx, input.TenantID, id)

	case operation.OpListMembers:
		return uc.memberships.ListMembers(ctx, ListMembersInput{TenantID: input.TenantID})

	case operation.OpCreateMember:
		name, err := requireParam(params, "name")
		if err != nil {
			return nil, err
		}
		email, err := requireParam(params, "email")
		if err != nil {
			return nil, err
		}
		return uc.memberships.CreateMember(ctx, CreateMemberInput{
			TenantID:    input.TenantID,
			DisplayName: name,
			Email:       email,
			Role:        domain.Role(params["role"]),
		})

	case operation.OpDeposit, operation.OpWithdraw, operation.OpAdjustBalance:
		return uc.dispatchMoney(ctx, input, opID, params)

	case operation.OpAwardPoints, operation.OpRedeemPoints:
		return uc.dispatchPoints(ctx, input, opID, params)

	case operation.OpRegisterTournament:
		id, err := requireParam(params, "tournament")
		if err != nil {
			return nil, err
		}
		return uc.tournaments.Register(ctx, RegisterInput{
			TenantID:     input.TenantID,
			ActorID:      input.ActorID,
			TournamentID: id,
		})

	case operation.OpCancelRegistration:
		id, err := requireParam(params, "tournament")
		if err != nil {
			return nil, err
		}
		return uc.tournaments.Cancel(ctx, CancelInput{
			TenantID:     input.TenantID,
			ActorID:      input.ActorID,
			TournamentID: id,
		})

	case operation.OpCancelTournament:
		id, err := requireParam(params, "tournament")
		if err != nil {
			return nil, err
		}
		return map[string]any{"cancelled": id}, uc.tournaments.CancelTournament(ctx, input.TenantID, id)

	case operation.OpCreateTournament:
		// Tournament scheduling needs buy-in, fee and timing the classifier
		// does not extract; direct callers use the structured endpoint.
		return nil, fmt.Errorf("%w: buy_in, fee and start_time", domain.ErrMissingParameter)

	case operation.OpChangeRole:
		target, err := uc.resolveTarget(ctx, input, params)
		if err != nil {
			return nil, err
		}
		role, err := requireParam(params, "role")
		if err != nil {
			return nil, err
		}
		return target, uc.memberships.ChangeRole(ctx, input.TenantID, target.ActorID, domain.Role(role))

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownOperation, opID)
	}
}

func (uc *AssistantUseCase) dispatchMoney(ctx context.Context, input AssistantInput, opID operation.ID, params map[string]string) (any, error) {
	target, err := uc.resolveTarget(ctx, input, params)
	if err != nil {
		return nil, err
	}

	amount, err := amountParam(params)
	if err != nil {
		return nil, err
	}

	var (
		delta decimal.Decimal
		kind  domain.TransactionKind
		desc  string
	)
	switch opID {
	case operation.OpDeposit:
		delta, kind, desc = amount, domain.KindDeposit, "Deposit via assistant"
	case operation.OpWithdraw:
		delta, kind, desc = amount.Neg(), domain.KindWithdrawal, "Withdrawal via assistant"
	default:
		delta, kind, desc = amount, domain.KindAdjustment, "Manual adjustment via assistant"
	}

	return uc.ledger.MutateBalance(ctx, MutateBalanceInput{
		TenantID:    input.TenantID,
		ActorID:     target.ActorID,
		Delta:       delta,
		Kind:        kind,
		Description: desc,
	})
}

func (uc *AssistantUseCase) dispatchPoints(ctx context.Context, input AssistantInput, opID operation.ID, params map[string]string) (any, error) {
	target, err := uc.resolveTarget(ctx, input, params)
	if err != nil {
		return nil, err
	}

	points, err := pointsParam(params)
	if err != nil {
		return nil, err
	}

	in := AwardPointsInput{
		TenantID: input.TenantID,
		ActorID:  target.ActorID,
		Points:   points,
	}
	if opID == operation.OpAwardPoints {
		in.Reason = "Points awarded via assistant"
		return uc.points.AwardPoints(ctx, in)
	}
	in.Reason = "Points redeemed via assistant"
	return uc.points.RedeemPoints(ctx, in)
}
