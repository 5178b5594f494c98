package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/adapter/http/dto"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/operation"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

type assistantServiceStub struct {
	handleFn func(ctx context.Context, input usecase.AssistantInput) (*usecase.AssistantOutput, error)
}

func (s *assistantServiceStub) Handle(ctx context.Context, input usecase.AssistantInput) (*usecase.AssistantOutput, error) {
	return s.handleFn(ctx, input)
}

func TestAssistantHandler_Handle(t *testing.T) {
	var captured usecase.AssistantInput
	h := NewAssistantHandler(&assistantServiceStub{
		handleFn: func(ctx context.Context, input usecase.AssistantInput) (*usecase.AssistantOutput, error) {
			captured = input
			return &usecase.AssistantOutput{
				Recognized: true,
				Operation:  operation.OpGetBalance,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.AssistantRequest{Text: "查询余额"})
	req := httptest.NewRequest(http.MethodPost, "/assistant", bytes.NewReader(body))
	req = withActor(req, domain.RoleMember)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.TenantID != "club-1" || captured.ActorID != "actor-1" || captured.ActorRole != domain.RoleMember {
		t.Fatalf("expected actor identity from context, got %+v", captured)
	}
	if captured.Text != "查询余额" || captured.Confirm {
		t.Fatalf("unexpected request passthrough: %+v", captured)
	}

	var resp usecase.AssistantOutput
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Recognized || resp.Operation != operation.OpGetBalance {
		t.Fatalf("unexpected output: %+v", resp)
	}
}

func TestAssistantHandler_Handle_Confirm(t *testing.T) {
	h := NewAssistantHandler(&assistantServiceStub{
		handleFn: func(ctx context.Context, input usecase.AssistantInput) (*usecase.AssistantOutput, error) {
			if !input.Confirm {
				t.Fatal("expected confirm flag to pass through")
			}
			return &usecase.AssistantOutput{Recognized: true}, nil
		},
	})

	body, _ := json.Marshal(dto.AssistantRequest{Confirm: true})
	req := httptest.NewRequest(http.MethodPost, "/assistant", bytes.NewReader(body))
	req = withActor(req, domain.RoleCashier)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAssistantHandler_Handle_PermissionDenied(t *testing.T) {
	h := NewAssistantHandler(&assistantServiceStub{
		handleFn: func(ctx context.Context, input usecase.AssistantInput) (*usecase.AssistantOutput, error) {
			return nil, domain.ErrPermissionDenied
		},
	})

	body, _ := json.Marshal(dto.AssistantRequest{Text: "充值 金额：100"})
	req := httptest.NewRequest(http.MethodPost, "/assistant", bytes.NewReader(body))
	req = withActor(req, domain.RoleMember)
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAssistantHandler_Handle_NoActor(t *testing.T) {
	h := NewAssistantHandler(&assistantServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/assistant", bytes.NewBufferString(`{"text":"查询余额"}`))
	rec := httptest.NewRecorder()

	h.Handle(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
