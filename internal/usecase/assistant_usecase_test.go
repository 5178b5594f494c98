package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/operation"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase/mocks"
)

type assistantFixture struct {
	*fixture
	confirm   *mocks.MockConfirmationStore
	assistant *usecase.AssistantUseCase
}

func newAssistantFixture() *assistantFixture {
	f := newFixture()
	confirm := mocks.NewMockConfirmationStore()
	memberships := usecase.NewMembershipUseCase(f.members, f.idGen)
	return &assistantFixture{
		fixture:   f,
		confirm:   confirm,
		assistant: usecase.NewAssistantUseCase(memberships, f.ledger, f.tournament, f.points, confirm),
	}
}

func TestAssistant_UnrecognizedText(t *testing.T) {
	f := newAssistantFixture()

	out, err := f.assistant.Handle(context.Background(), usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "alice",
		ActorRole: domain.RoleMember,
		Text:      "今天天气怎么样",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if out.Recognized {
		t.Error("Recognized = true, want false for small talk")
	}
	if out.Result != nil {
		t.Error("unrecognized text must not carry a result")
	}
}

func TestAssistant_BalanceQuerySelf(t *testing.T) {
	f := newAssistantFixture()
	f.seedMember("club-1", "alice", "250", 0)

	out, err := f.assistant.Handle(context.Background(), usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "alice",
		ActorRole: domain.RoleMember,
		Text:      "查询余额",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if out.Operation != operation.OpGetBalance {
		t.Errorf("Operation = %s, want get_balance", out.Operation)
	}
	if out.NeedsConfirmation {
		t.Error("queries never need confirmation")
	}
	if out.Result == nil {
		t.Error("expected a result payload")
	}
}

func TestAssistant_PermissionDenied(t *testing.T) {
	f := newAssistantFixture()
	f.seedMember("club-1", "alice", "0", 0)

	_, err := f.assistant.Handle(context.Background(), usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "alice",
		ActorRole: domain.RoleMember,
		Text:      "充值 金额：100",
	})
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("error = %v, want ErrPermissionDenied", err)
	}
}

func TestAssistant_DepositConfirmationRoundTrip(t *testing.T) {
	f := newAssistantFixture()
	m := f.seedMember("club-1", "alice", "0", 0)
	m.Email = "z@x.com"

	input := usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "cashier-1",
		ActorRole: domain.RoleCashier,
		Text:      "充值 邮箱：z@x.com，金额：100",
	}

	// First pass parks the operation and asks for confirmation.
	out, err := f.assistant.Handle(context.Background(), input)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if !out.NeedsConfirmation {
		t.Fatal("NeedsConfirmation = false, want true for deposit")
	}
	if out.Prompt == "" {
		t.Error("expected a confirmation prompt")
	}

	if !m.Balance.IsZero() {
		t.Fatalf("balance mutated before confirmation: %s", m.Balance)
	}

	// Second pass confirms and executes.
	out, err = f.assistant.Handle(context.Background(), usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "cashier-1",
		ActorRole: domain.RoleCashier,
		Confirm:   true,
	})
	if err != nil {
		t.Fatalf("confirmed Handle() error = %v", err)
	}
	if out.NeedsConfirmation {
		t.Error("confirmed pass must not ask again")
	}
	if !m.Balance.Equal(mustDecimal(t, "100")) {
		t.Errorf("balance = %s, want 100 after confirmed deposit", m.Balance)
	}

	// The pending operation is consumed; confirming again has nothing to run.
	_, err = f.assistant.Handle(context.Background(), usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "cashier-1",
		ActorRole: domain.RoleCashier,
		Confirm:   true,
	})
	if !errors.Is(err, domain.ErrNoPendingOperation) {
		t.Fatalf("replayed confirm error = %v, want ErrNoPendingOperation", err)
	}
}

func TestAssistant_ConfirmWithoutPending(t *testing.T) {
	f := newAssistantFixture()

	_, err := f.assistant.Handle(context.Background(), usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "cashier-1",
		ActorRole: domain.RoleCashier,
		Confirm:   true,
	})
	if !errors.Is(err, domain.ErrNoPendingOperation) {
		t.Fatalf("error = %v, want ErrNoPendingOperation", err)
	}
}

func TestAssistant_RegisterRunsWithoutConfirmation(t *testing.T) {
	f := newAssistantFixture()
	f.seedMember("club-1", "alice", "500", 0)
	f.seedTournament(t, nil)

	out, err := f.assistant.Handle(context.Background(), usecase.AssistantInput{
		TenantID:  "club-1",
		ActorID:   "alice",
		ActorRole: domain.RoleMember,
		Text:      "报名 比赛：t-1",
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if out.Operation != operation.OpRegisterTournament {
		t.Errorf("Operation = %s, want register_tournament", out.Operation)
	}
	if out.NeedsConfirmation {
		t.Error("registration must execute without a confirmation round-trip")
	}

	m, _ := f.members.Get(context.Background(), "club-1", "alice")
	if !m.Balance.Equal(mustDecimal(t, "390")) {
		t.Errorf("balance = %s, want 390 after buy-in", m.Balance)
	}
}
