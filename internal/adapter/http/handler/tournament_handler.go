package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/dto"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/middleware"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

// TournamentService defines the behavior needed by TournamentHandler.
type TournamentService interface {
	CreateTournament(ctx context.Context, input usecase.CreateTournamentInput) (*domain.Tournament, error)
	GetTournament(ctx context.Context, tenantID, id string) (*domain.Tournament, error)
	ListTournaments(ctx context.Context, input usecase.ListTournamentsInput) ([]*domain.Tournament, error)
	Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterResult, error)
	Cancel(ctx context.Context, input usecase.CancelInput) (*usecase.CancelResult, error)
	CancelTournament(ctx context.Context, tenantID, tournamentID string) error
	ListRegistrations(ctx context.Context, tenantID, tournamentID string) ([]*domain.Registration, error)
}

// TournamentHandler handles tournament-related HTTP requests.
type TournamentHandler struct {
	tournamentUC TournamentService
}

// NewTournamentHandler creates a new TournamentHandler.
func NewTournamentHandler(tournamentUC TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentUC: tournamentUC}
}

// Create creates a new tournament.
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	t, err := h.tournamentUC.CreateTournament(r.Context(), req.ToUseCaseInput(actor.TenantID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create tournament", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TournamentFromDomain(t))
}

// Get retrieves a tournament by ID.
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tournament ID", "")
		return
	}

	t, err := h.tournamentUC.GetTournament(r.Context(), actor.TenantID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get tournament", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TournamentFromDomain(t))
}

// List lists the tenant's tournaments.
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	tournaments, err := h.tournamentUC.ListTournaments(r.Context(), usecase.ListTournamentsInput{
		TenantID: actor.TenantID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list tournaments", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTournamentsResponse{
		Tournaments: dto.TournamentsFromDomain(tournaments),
		Total:       int64(len(tournaments)),
	})
}

// Register registers the calling actor for a tournament and charges the
// buy-in plus fee.
func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tournament ID", "")
		return
	}

	result, err := h.tournamentUC.Register(r.Context(), usecase.RegisterInput{
		TenantID:     actor.TenantID,
		ActorID:      actor.ActorID,
		TournamentID: id,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterFromResult(result))
}

// CancelRegistration cancels the calling actor's registration and refunds
// the recorded charge.
func (h *TournamentHandler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tournament ID", "")
		return
	}

	result, err := h.tournamentUC.Cancel(r.Context(), usecase.CancelInput{
		TenantID:     actor.TenantID,
		ActorID:      actor.ActorID,
		TournamentID: id,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to cancel registration", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CancelFromResult(result))
}

// Cancel cancels the tournament itself and refunds every registered seat.
func (h *TournamentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tournament ID", "")
		return
	}

	if err := h.tournamentUC.CancelTournament(r.Context(), actor.TenantID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to cancel tournament", err.Error())
		return
	}

	t, err := h.tournamentUC.GetTournament(r.Context(), actor.TenantID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get tournament", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TournamentFromDomain(t))
}

// ListRegistrations lists a tournament's seats in registration order.
func (h *TournamentHandler) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing tournament ID", "")
		return
	}

	regs, err := h.tournamentUC.ListRegistrations(r.Context(), actor.TenantID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list registrations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegistrationsFromDomain(regs))
}
