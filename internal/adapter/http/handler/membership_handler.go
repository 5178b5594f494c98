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

// MembershipService defines the behavior needed by MembershipHandler.
type MembershipService interface {
	CreateMember(ctx context.Context, input usecase.CreateMemberInput) (*domain.Membership, error)
	GetMembership(ctx context.Context, tenantID, actorID string) (*domain.Membership, error)
	ChangeRole(ctx context.Context, tenantID, actorID string, role domain.Role) error
	ListMembers(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Membership, error)
}

// MembershipHandler handles membership-related HTTP requests.
type MembershipHandler struct {
	membershipUC MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(membershipUC MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipUC: membershipUC}
}

// Create creates a new membership in the actor's tenant.
func (h *MembershipHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	member, err := h.membershipUC.CreateMember(r.Context(), req.ToUseCaseInput(actor.TenantID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create member", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MembershipFromDomain(member))
}

// Get retrieves a membership by actor ID.
func (h *MembershipHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	member, err := h.membershipUC.GetMembership(r.Context(), actor.TenantID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get member", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MembershipFromDomain(member))
}

// Me retrieves the calling actor's own membership.
func (h *MembershipHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	member, err := h.membershipUC.GetMembership(r.Context(), actor.TenantID, actor.ActorID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get member", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MembershipFromDomain(member))
}

// List lists the tenant's memberships.
func (h *MembershipHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	members, err := h.membershipUC.ListMembers(r.Context(), usecase.ListMembersInput{
		TenantID: actor.TenantID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list members", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListMembersResponse{
		Members: dto.MembershipsFromDomain(members),
		Total:   int64(len(members)),
	})
}

// ChangeRole changes a member's role within the tenant.
func (h *MembershipHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.membershipUC.ChangeRole(r.Context(), actor.TenantID, id, domain.Role(req.Role)); err != nil {
		writeError(w, mapDomainError(err), "failed to change role", err.Error())
		return
	}

	member, err := h.membershipUC.GetMembership(r.Context(), actor.TenantID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get member", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.MembershipFromDomain(member))
}
