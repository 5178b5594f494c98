package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/dto"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/middleware"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

// AssistantService defines the behavior needed by AssistantHandler.
type AssistantService interface {
	Handle(ctx context.Context, input usecase.AssistantInput) (*usecase.AssistantOutput, error)
}

// AssistantHandler handles natural-language assistant requests.
type AssistantHandler struct {
	assistantUC AssistantService
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(assistantUC AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantUC: assistantUC}
}

// Handle classifies the request text and executes or parks the matched
// operation under the actor's verified role.
func (h *AssistantHandler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AssistantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	output, err := h.assistantUC.Handle(r.Context(), req.ToUseCaseInput(actor.TenantID, actor.ActorID, actor.Role))
	if err != nil {
		writeError(w, mapDomainError(err), "assistant request failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, output)
}
