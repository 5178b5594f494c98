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
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/usecase"
)

type membershipServiceStub struct {
	createFn     func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Membership, error)
	getFn        func(ctx context.Context, tenantID, actorID string) (*domain.Membership, error)
	changeRoleFn func(ctx context.Context, tenantID, actorID string, role domain.Role) error
	listFn       func(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Membership, error)
}

func (s *membershipServiceStub) CreateMember(ctx context.Context, input usecase.CreateMemberInput) (*domain.Membership, error) {
	return s.createFn(ctx, input)
}

func (s *membershipServiceStub) GetMembership(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
	return s.getFn(ctx, tenantID, actorID)
}

func (s *membershipServiceStub) ChangeRole(ctx context.Context, tenantID, actorID string, role domain.Role) error {
	return s.changeRoleFn(ctx, tenantID, actorID, role)
}

func (s *membershipServiceStub) ListMembers(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Membership, error) {
	return s.listFn(ctx, input)
}

func TestMembershipHandler_Create_Success(t *testing.T) {
	member := &domain.Membership{
		TenantID:    "club-1",
		ActorID:     "actor-9",
		DisplayName: "Zhang Wei",
		Email:       "zhang@club.example",
		Role:        domain.RoleMember,
		Status:      domain.MembershipStatusActive,
	}

	var captured usecase.CreateMemberInput
	h := NewMembershipHandler(&membershipServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Membership, error) {
			captured = input
			return member, nil
		},
	})

	body, _ := json.Marshal(dto.CreateMemberRequest{
		DisplayName: "Zhang Wei",
		Email:       "zhang@club.example",
		Role:        "MEMBER",
	})

	req := httptest.NewRequest(http.MethodPost, "/memberships", bytes.NewReader(body))
	req = withActor(req, domain.RoleManager)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.TenantID != "club-1" || captured.DisplayName != "Zhang Wei" || captured.Role != domain.RoleMember {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.MembershipResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ActorID != "actor-9" {
		t.Fatalf("expected actor ID actor-9, got %s", resp.ActorID)
	}
}

func TestMembershipHandler_Create_InvalidJSON(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Membership, error) {
			t.Fatal("CreateMember should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/memberships", bytes.NewBufferString("{invalid json"))
	req = withActor(req, domain.RoleManager)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMembershipHandler_Create_DuplicateEmail(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateMemberInput) (*domain.Membership, error) {
			return nil, domain.ErrMembershipExists
		},
	})

	body, _ := json.Marshal(dto.CreateMemberRequest{DisplayName: "Zhang Wei", Email: "zhang@club.example"})
	req := httptest.NewRequest(http.MethodPost, "/memberships", bytes.NewReader(body))
	req = withActor(req, domain.RoleManager)
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestMembershipHandler_Create_NoActor(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/memberships", bytes.NewBufferString("{}"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMembershipHandler_Get(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{
		getFn: func(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
			if tenantID != "club-1" || actorID != "actor-9" {
				t.Fatalf("unexpected lookup: %s/%s", tenantID, actorID)
			}
			return &domain.Membership{TenantID: tenantID, ActorID: actorID}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/memberships/actor-9", nil)
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "actor-9")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMembershipHandler_Get_NotFound(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{
		getFn: func(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
			return nil, domain.ErrMembershipNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/memberships/ghost", nil)
	req = withActor(req, domain.RoleCashier)
	req = setChiURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestMembershipHandler_Me(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{
		getFn: func(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
			if actorID != "actor-1" {
				t.Fatalf("expected own actor ID, got %s", actorID)
			}
			return &domain.Membership{TenantID: tenantID, ActorID: actorID}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/memberships/me", nil)
	req = withActor(req, domain.RoleMember)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestMembershipHandler_List(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{
		listFn: func(ctx context.Context, input usecase.ListMembersInput) ([]*domain.Membership, error) {
			if input.TenantID != "club-1" || input.Limit != 5 || input.Offset != 2 {
				t.Fatalf("unexpected list input: %+v", input)
			}
			return []*domain.Membership{{ActorID: "a"}, {ActorID: "b"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/memberships?limit=5&offset=2", nil)
	req = withActor(req, domain.RoleReceptionist)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListMembersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(resp.Members))
	}
}

func TestMembershipHandler_ChangeRole(t *testing.T) {
	changed := false
	h := NewMembershipHandler(&membershipServiceStub{
		changeRoleFn: func(ctx context.Context, tenantID, actorID string, role domain.Role) error {
			if role != domain.RoleCashier {
				t.Fatalf("expected CASHIER, got %s", role)
			}
			changed = true
			return nil
		},
		getFn: func(ctx context.Context, tenantID, actorID string) (*domain.Membership, error) {
			return &domain.Membership{TenantID: tenantID, ActorID: actorID, Role: domain.RoleCashier}, nil
		},
	})

	body, _ := json.Marshal(dto.ChangeRoleRequest{Role: "CASHIER"})
	req := httptest.NewRequest(http.MethodPut, "/memberships/actor-9/role", bytes.NewReader(body))
	req = withActor(req, domain.RoleOwner)
	req = setChiURLParam(req, "id", "actor-9")
	rec := httptest.NewRecorder()

	h.ChangeRole(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !changed {
		t.Fatal("expected ChangeRole to be called")
	}
}

func TestMembershipHandler_ChangeRole_InvalidRole(t *testing.T) {
	h := NewMembershipHandler(&membershipServiceStub{
		changeRoleFn: func(ctx context.Context, tenantID, actorID string, role domain.Role) error {
			return domain.ErrInvalidRole
		},
	})

	body, _ := json.Marshal(dto.ChangeRoleRequest{Role: "KING"})
	req := httptest.NewRequest(http.MethodPut, "/memberships/actor-9/role", bytes.NewReader(body))
	req = withActor(req, domain.RoleOwner)
	req = setChiURLParam(req, "id", "actor-9")
	rec := httptest.NewRecorder()

	h.ChangeRole(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
