package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/dto"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

type tournamentServiceStub struct {
	createFn      func(ctx context.Context, input usecase.CreateTournamentInput) (*domain.Tournament, error)
	getFn         func(ctx context.Context, tenantID, id string) (*domain.Tournament, error)
	listFn        func(ctx context.Context, input usecase.ListTournamentsInput) ([]*domain.Tournament, error)
	registerFn    func(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterResult, error)
	cancelFn      func(ctx context.Context, input usecase.CancelInput) (*usecase.CancelResult, error)
	cancelTournFn func(ctx context.Context, tenantID, tournamentID string) error
	listRegsFn    func(ctx context.Context, tenantID, tournamentID string) ([]*domain.Registration, error)
}

func (s *tournamentServiceStub) CreateTournament(ctx context.Context, input usecase.CreateTournamentInput) (*domain.Tournament, error) {
	return s.createFn(ctx, input)
}

func (s *tournamentServiceStub) GetTournament(ctx context.Context, tenantID, id string) (*domain.Tournament, error) {
	return s.getFn(ctx, tenantID, id)
}

func (s *tournamentServiceStub) ListTournaments(ctx context.Context, input usecase.ListTournamentsInput) ([]*domain.Tournament, error) {
	return s.listFn(ctx, input)
}

func (s *tournamentServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterResult, error) {
	return s.registerFn(ctx, input)
}

func (s *tournamentServiceStub) Cancel(ctx context.Context, input usecase.CancelInput) (*usecase.CancelResult, error) {
	return s.cancelFn(ctx, input)
}

func (s *tournamentServiceStub) CancelTournament(ctx context.Context, tenantID, tournamentID string) error {
	return s.cancelTournFn(ctx, tenantID, tournamentID)
}

func (s *tournamentServiceStub) ListRegistrations(ctx context.Context, tenantID, tournamentID string) ([]*domain.Registration, error) {
	return s.listRegsFn(ctx, tenantID, tournamentID)
}

func TestTournamentHandler_Create_Success(t *testing.T) {
	start := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)

	var captured usecase.CreateTournamentInput
	h := NewTournamentHandler(&tournamentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTournamentInput) (*domain.Tournament, error) {
			captured = input
			return &domain.Tournament{
				ID:       "t-1",
				TenantID: input.TenantID,
				Name:     input.Name,
				Status:   domain.TournamentScheduled,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.CreateTournamentRequest{
		Name:                   "Friday Deepstack",
		BuyIn:                  decimal.RequireFromString("100"),
		Fee:                    decimal.RequireFromString("10"),
		MaxPlayers:             60,
		StartTime:              start,
		CancellationWindowSecs: 3600,
	})
	req := httptest.NewRequest(http.MethodPost, "/tournaments", bytes.NewReader(body))
	req = withActor(req, domain.RoleManager)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.TenantID != "club-1" || captured.Name != "Friday Deepstack" {
		t.Fatalf("unexpected input: %+v", captured)
	}
	if captured.CancellationWindow != time.Hour {
		t.Fatalf("expected 1h cancellation window, got %s", captured.CancellationWindow)
	}
}

func TestTournamentHandler_Create_InvalidAmount(t *testing.T) {
	h := NewTournamentHandler(&tournamentServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTournamentInput) (*domain.Tournament, error) {
			return nil, domain.ErrInvalidAmount
		},
	})

	body, _ := json.Marshal(dto.CreateTournamentRequest{Name: "Bad", BuyIn: decimal.RequireFromString("-1")})
	req := httptest.NewRequest(http.MethodPost, "/tournaments", bytes.NewReader(body))
	req = withActor(req, domain.RoleManager)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTournamentHandler_Register(t *testing.T) {
	h := NewTournamentHandler(&tournamentServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterResult, error) {
			if input.TenantID != "club-1" || input.ActorID != "actor-1" || input.TournamentID != "t-1" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &usecase.RegisterResult{
				Registration: &domain.Registration{
					TournamentID: "t-1",
					TenantID:     "club-1",
					ActorID:      "actor-1",
					Charge:       decimal.RequireFromString("110"),
				},
				NewBalance:    decimal.RequireFromString("390"),
				AmountCharged: decimal.RequireFromString("110"),
				PointsAwarded: 50,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/t-1/register", nil)
	req = withActor(req, domain.RoleMember)
	req = setChiURLParam(req, "id", "t-1")
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.AmountCharged.Equal(decimal.RequireFromString("110")) || resp.PointsAwarded != 50 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTournamentHandler_Register_Full(t *testing.T) {
	h := NewTournamentHandler(&tournamentServiceStub{
		registerFn: func(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterResult, error) {
			return nil, domain.ErrTournamentFull
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/t-1/register", nil)
	req = withActor(req, domain.RoleMember)
	req = setChiURLParam(req, "id", "t-1")
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestTournamentHandler_CancelRegistration(t *testing.T) {
	h := NewTournamentHandler(&tournamentServiceStub{
		cancelFn: func(ctx context.Context, input usecase.CancelInput) (*usecase.CancelResult, error) {
			return &usecase.CancelResult{
				NewBalance:   decimal.RequireFromString("500"),
				RefundAmount: decimal.RequireFromString("110"),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/tournaments/t-1/registration", nil)
	req = withActor(req, domain.RoleMember)
	req = setChiURLParam(req, "id", "t-1")
	rec := httptest.NewRecorder()

	h.CancelRegistration(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.CancelResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.RefundAmount.Equal(decimal.RequireFromString("110")) {
		t.Fatalf("expected refund 110, got %s", resp.RefundAmount)
	}
}

func TestTournamentHandler_CancelRegistration_DeadlinePassed(t *testing.T) {
	h := NewTournamentHandler(&tournamentServiceStub{
		cancelFn: func(ctx context.Context, input usecase.CancelInput) (*usecase.CancelResult, error) {
			return nil, domain.ErrCancelDeadlinePassed
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/tournaments/t-1/registration", nil)
	req = withActor(req, domain.RoleMember)
	req = setChiURLParam(req, "id", "t-1")
	rec := httptest.NewRecorder()

	h.CancelRegistration(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestTournamentHandler_Cancel(t *testing.T) {
	cancelled := false
	h := NewTournamentHandler(&tournamentServiceStub{
		cancelTournFn: func(ctx context.Context, tenantID, tournamentID string) error {
			cancelled = true
			return nil
		},
		getFn: func(ctx context.Context, tenantID, id string) (*domain.Tournament, error) {
			return &domain.Tournament{ID: id, Status: domain.TournamentCancelled}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/tournaments/t-1/cancel", nil)
	req = withActor(req, domain.RoleManager)
	req = setChiURLParam(req, "id", "t-1")
	rec := httptest.NewRecorder()

	h.Cancel(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !cancelled {
		t.Fatal("expected CancelTournament to be called")
	}
}

func TestTournamentHandler_ListRegistrations(t *testing.T) {
	h := NewTournamentHandler(&tournamentServiceStub{
		listRegsFn: func(ctx context.Context, tenantID, tournamentID string) ([]*domain.Registration, error) {
			return []*domain.Registration{
				{TournamentID: tournamentID, ActorID: "alice"},
				{TournamentID: tournamentID, ActorID: "bob"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/tournaments/t-1/registrations", nil)
	req = withActor(req, domain.RoleReceptionist)
	req = setChiURLParam(req, "id", "t-1")
	rec := httptest.NewRecorder()

	h.ListRegistrations(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*dto.RegistrationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(resp))
	}
}
