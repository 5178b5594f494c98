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

// LedgerService defines the ledger behavior needed by LedgerHandler.
type LedgerService interface {
	MutateBalance(ctx context.Context, input usecase.MutateBalanceInput) (*usecase.MutationResult, error)
	GetTransaction(ctx context.Context, tenantID, reference string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// PointsService defines the points behavior needed by LedgerHandler.
type PointsService interface {
	AwardPoints(ctx context.Context, input usecase.AwardPointsInput) (*usecase.MutationResult, error)
	RedeemPoints(ctx context.Context, input usecase.AwardPointsInput) (*usecase.MutationResult, error)
}

// LedgerHandler handles balance and points mutation HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
	pointsUC PointsService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, pointsUC PointsService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, pointsUC: pointsUC}
}

// Deposit credits a member's balance.
func (h *LedgerHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, domain.KindDeposit)
}

// Withdraw debits a member's balance.
func (h *LedgerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, domain.KindWithdrawal)
}

// Adjust applies a signed correction to a member's balance.
func (h *LedgerHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, domain.KindAdjustment)
}

func (h *LedgerHandler) mutate(w http.ResponseWriter, r *http.Request, kind domain.TransactionKind) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	var req dto.MutationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	// Deposits and withdrawals take a positive amount; the sign comes from
	// the endpoint. Adjustments pass the signed amount through.
	delta := req.Amount
	switch kind {
	case domain.KindDeposit, domain.KindWithdrawal:
		if !req.Amount.IsPositive() {
			writeError(w, http.StatusBadRequest, "invalid amount", domain.ErrInvalidAmount.Error())
			return
		}
		if kind == domain.KindWithdrawal {
			delta = req.Amount.Neg()
		}
	}

	result, err := h.ledgerUC.MutateBalance(r.Context(), req.ToUseCaseInput(actor.TenantID, id, delta, kind))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply mutation", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MutationFromResult(result))
}

// AwardPoints credits points to a member.
func (h *LedgerHandler) AwardPoints(w http.ResponseWriter, r *http.Request) {
	h.mutatePoints(w, r, h.pointsUC.AwardPoints)
}

// RedeemPoints deducts points from a member.
func (h *LedgerHandler) RedeemPoints(w http.ResponseWriter, r *http.Request) {
	h.mutatePoints(w, r, h.pointsUC.RedeemPoints)
}

func (h *LedgerHandler) mutatePoints(w http.ResponseWriter, r *http.Request, fn func(context.Context, usecase.AwardPointsInput) (*usecase.MutationResult, error)) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	var req dto.PointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := fn(r.Context(), req.ToUseCaseInput(actor.TenantID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to apply points mutation", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MutationFromResult(result))
}

// GetTransaction retrieves one ledger entry by reference.
func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	reference := chi.URLParam(r, "reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing transaction reference", "")
		return
	}

	tx, err := h.ledgerUC.GetTransaction(r.Context(), actor.TenantID, reference)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// ListTransactions lists a member's ledger entries, newest first.
func (h *LedgerHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing member ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	txs, err := h.ledgerUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		TenantID: actor.TenantID,
		ActorID:  id,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txs),
		Total:        int64(len(txs)),
	})
}
