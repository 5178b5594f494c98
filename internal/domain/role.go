package domain

// Role represents an actor's privilege level within a single club.
type Role string

const (
	RoleGuest        Role = "GUEST"
	RoleMember       Role = "MEMBER"
	RoleVIP          Role = "VIP"
	RoleDealer       Role = "DEALER"
	RoleCashier      Role = "CASHIER"
	RoleReceptionist Role = "RECEPTIONIST"
	RoleManager      Role = "MANAGER"
	RoleAdmin        Role = "ADMIN"
	RoleOwner        Role = "OWNER"
)

// roleRanks orders roles for privilege comparisons. Peer tiers share a rank:
// member-tier roles (MEMBER, VIP, DEALER) and desk roles (CASHIER,
// RECEPTIONIST) are equal among themselves, not ranked above each other.
var roleRanks = map[Role]int{
	RoleGuest:        0,
	RoleMember:       1,
	RoleVIP:          1,
	RoleDealer:       1,
	RoleCashier:      2,
	RoleReceptionist: 2,
	RoleManager:      3,
	RoleAdmin:        4,
	RoleOwner:        5,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]
	return ok
}

// Rank returns the numeric privilege level of the role.
// Unknown roles rank below GUEST.
func (r Role) Rank() int {
	rank, ok := roleRanks[r]
	if !ok {
		return -1
	}
	return rank
}

// HasAtLeast reports whether r's privilege level is greater than or equal
// to required. The comparison is >= on ranks, so any role in a peer tier
// satisfies a check against another role of the same tier.
func (r Role) HasAtLeast(required Role) bool {
	return r.Rank() >= required.Rank()
}
