package domain

import "testing"

func TestRole_Rank(t *testing.T) {
	tests := []struct {
		role Role
		rank int
	}{
		{RoleGuest, 0},
		{RoleMember, 1},
		{RoleVIP, 1},
		{RoleDealer, 1},
		{RoleCashier, 2},
		{RoleReceptionist, 2},
		{RoleManager, 3},
		{RoleAdmin, 4},
		{RoleOwner, 5},
		{Role("BOGUS"), -1},
	}

	for _, tt := range tests {
		if got := tt.role.Rank(); got != tt.rank {
			t.Errorf("Rank(%s) = %d, want %d", tt.role, got, tt.rank)
		}
	}
}

func TestRole_HasAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		actor    Role
		required Role
		want     bool
	}{
		{"owner satisfies manager", RoleOwner, RoleManager, true},
		{"manager does not satisfy admin", RoleManager, RoleAdmin, false},
		{"peer tier satisfies itself", RoleDealer, RoleMember, true},
		{"vip satisfies dealer", RoleVIP, RoleDealer, true},
		{"cashier satisfies receptionist", RoleCashier, RoleReceptionist, true},
		{"member does not satisfy cashier", RoleMember, RoleCashier, false},
		{"guest satisfies guest", RoleGuest, RoleGuest, true},
		{"unknown role satisfies nothing", Role("BOGUS"), RoleGuest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.actor.HasAtLeast(tt.required); got != tt.want {
				t.Errorf("HasAtLeast(%s, %s) = %v, want %v", tt.actor, tt.required, got, tt.want)
			}
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	if !RoleOwner.IsValid() {
		t.Error("expected OWNER to be valid")
	}
	if Role("superuser").IsValid() {
		t.Error("expected unknown role to be invalid")
	}
}
