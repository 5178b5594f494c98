// Package operation is the static catalog of operations the platform can
// perform: each entry names its category, the explicit set of roles that may
// invoke it, and whether a confirmation round-trip is mandatory before a
// mutating operation executes. Unknown operation IDs are never permitted.
package operation

import "github.com/PorkerKing/pokerpal-final-app-sub000/internal/domain"

// Category distinguishes read-only queries from mutating commands.
type Category string

const (
	CategoryQuery  Category = "query"
	CategoryModify Category = "modify"
)

// ID identifies one operation in the catalog.
type ID string

const (
	// Queries
	OpGetBalance       ID = "get_balance"
	OpGetPoints        ID = "get_points"
	OpListTransactions ID = "list_transactions"
	OpListTournaments  ID = "list_tournaments"
	OpGetTournament    ID = "get_tournament"
	OpListMembers      ID = "list_members"

	// Commands
	OpCreateMember       ID = "create_member"
	OpDeposit            ID = "deposit"
	OpWithdraw           ID = "withdraw"
	OpAdjustBalance      ID = "adjust_balance"
	OpAwardPoints        ID = "award_points"
	OpRedeemPoints       ID = "redeem_points"
	OpRegisterTournament ID = "register_tournament"
	OpCancelRegistration ID = "cancel_registration"
	OpCreateTournament   ID = "create_tournament"
	OpCancelTournament   ID = "cancel_tournament"
	OpChangeRole         ID = "change_role"
)

// Config describes one catalog entry. RequiredRoles is an explicit set, not a
// rank cutoff: financial commands permit CASHIER but not DEALER even though
// the two roles share a rank.
type Config struct {
	Category             Category
	RequiredRoles        []domain.Role
	RequiresConfirmation bool
	ConfirmPrompt        string
}

var managerAndAbove = []domain.Role{domain.RoleManager, domain.RoleAdmin, domain.RoleOwner}

var financialRoles = []domain.Role{
	domain.RoleCashier, domain.RoleManager, domain.RoleAdmin, domain.RoleOwner,
}

var deskRoles = []domain.Role{
	domain.RoleCashier, domain.RoleReceptionist,
	domain.RoleManager, domain.RoleAdmin, domain.RoleOwner,
}

var memberAndAbove = []domain.Role{
	domain.RoleMember, domain.RoleVIP, domain.RoleDealer,
	domain.RoleCashier, domain.RoleReceptionist,
	domain.RoleManager, domain.RoleAdmin, domain.RoleOwner,
}

var registry = map[ID]Config{
	OpGetBalance:       {Category: CategoryQuery, RequiredRoles: memberAndAbove},
	OpGetPoints:        {Category: CategoryQuery, RequiredRoles: memberAndAbove},
	OpListTransactions: {Category: CategoryQuery, RequiredRoles: memberAndAbove},
	OpListTournaments:  {Category: CategoryQuery, RequiredRoles: memberAndAbove},
	OpGetTournament:    {Category: CategoryQuery, RequiredRoles: memberAndAbove},
	OpListMembers:      {Category: CategoryQuery, RequiredRoles: deskRoles},

	OpCreateMember: {
		Category:             CategoryModify,
		RequiredRoles:        deskRoles,
		RequiresConfirmation: true,
		ConfirmPrompt:        "Create a new member with the given name, email and role?",
	},
	OpDeposit: {
		Category:             CategoryModify,
		RequiredRoles:        financialRoles,
		RequiresConfirmation: true,
		ConfirmPrompt:        "Deposit the stated amount into the member's balance?",
	},
	OpWithdraw: {
		Category:             CategoryModify,
		RequiredRoles:        financialRoles,
		RequiresConfirmation: true,
		ConfirmPrompt:        "Withdraw the stated amount from the member's balance?",
	},
	OpAdjustBalance: {
		Category:             CategoryModify,
		RequiredRoles:        []domain.Role{domain.RoleAdmin, domain.RoleOwner},
		RequiresConfirmation: true,
		ConfirmPrompt:        "Apply a manual balance adjustment? This is audited.",
	},
	OpAwardPoints: {
		Category:             CategoryModify,
		RequiredRoles:        managerAndAbove,
		RequiresConfirmation: true,
		ConfirmPrompt:        "Award the stated points to the member?",
	},
	OpRedeemPoints: {
		Category:             CategoryModify,
		RequiredRoles:        deskRoles,
		RequiresConfirmation: true,
		ConfirmPrompt:        "Redeem the stated points from the member?",
	},
	OpRegisterTournament: {
		Category:      CategoryModify,
		RequiredRoles: memberAndAbove,
	},
	OpCancelRegistration: {
		Category:      CategoryModify,
		RequiredRoles: memberAndAbove,
	},
	OpCreateTournament: {
		Category:             CategoryModify,
		RequiredRoles:        managerAndAbove,
		RequiresConfirmation: true,
		ConfirmPrompt:        "Create the tournament with the given buy-in and schedule?",
	},
	OpCancelTournament: {
		Category:             CategoryModify,
		RequiredRoles:        managerAndAbove,
		RequiresConfirmation: true,
		ConfirmPrompt:        "Cancel the tournament? All registrations will be refunded.",
	},
	OpChangeRole: {
		Category:             CategoryModify,
		RequiredRoles:        []domain.Role{domain.RoleOwner, domain.RoleAdmin},
		RequiresConfirmation: true,
		ConfirmPrompt:        "Change the member's role?",
	},
}

// Lookup returns the config for an operation ID.
func Lookup(id ID) (Config, bool) {
	cfg, ok := registry[id]
	return cfg, ok
}

// IsPermitted reports whether a role may invoke an operation. Unknown
// operations fail closed.
func IsPermitted(role domain.Role, id ID) bool {
	cfg, ok := registry[id]
	if !ok {
		return false
	}
	for _, r := range cfg.RequiredRoles {
		if r == role {
			return true
		}
	}
	return false
}

// NeedsConfirmation reports whether an operation requires a confirmation
// round-trip before execution. Unknown operations report false; they are
// rejected by IsPermitted before confirmation is ever considered.
func NeedsConfirmation(id ID) bool {
	return registry[id].RequiresConfirmation
}

// ConfirmationPrompt returns the human prompt shown before a
// confirmation-gated operation executes.
func ConfirmationPrompt(id ID) string {
	return registry[id].ConfirmPrompt
}
