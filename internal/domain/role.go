package domain

import "context"

// Role and permission names are reference data seeded by migrations.
// The name constants below are the vocabulary the engine reasons with;
// the numeric identifiers are resolved per request from the store.
const (
	RoleOwner             = "Owner"
	RoleFarmAdministrator = "Farm Administrator"
	RoleFieldOperator     = "Field Operator"
)

const (
	PermAddAdministrator    = "add_administrator_farm"
	PermAddOperator         = "add_operator_farm"
	PermEditAdministrator   = "edit_administrator_farm"
	PermEditOperator        = "edit_operator_farm"
	PermDeleteAdministrator = "delete_administrator_farm"
	PermDeleteOperator      = "delete_operator_farm"
	PermReadCollaborators   = "read_collaborators"
	PermReadFinancialReport = "read_financial_report"
	PermAddPlot             = "add_plot"
	PermReadPlots           = "read_plots"
	PermAddTransaction      = "add_transaction"
	PermDeleteTransaction   = "delete_transaction"
)

// InvitePermission maps an invitable role to the permission the inviter
// must hold. Roles outside this map cannot be invited at all, regardless
// of the inviter's permissions.
var InvitePermission = map[string]string{
	RoleFarmAdministrator: PermAddAdministrator,
	RoleFieldOperator:     PermAddOperator,
}

// EditPermission and RemovePermission map a collaborator role to the
// permission needed to assign or revoke it.
var (
	EditPermission = map[string]string{
		RoleFarmAdministrator: PermEditAdministrator,
		RoleFieldOperator:     PermEditOperator,
	}
	RemovePermission = map[string]string{
		RoleFarmAdministrator: PermDeleteAdministrator,
		RoleFieldOperator:     PermDeleteOperator,
	}
)

// AssignableRoles is the role hierarchy: which roles each role may hand
// out when editing a collaborator.
var AssignableRoles = map[string][]string{
	RoleOwner:             {RoleFarmAdministrator, RoleFieldOperator},
	RoleFarmAdministrator: {RoleFieldOperator},
	RoleFieldOperator:     {},
}

// CanAssign reports whether actorRole may assign targetRole.
func CanAssign(actorRole, targetRole string) bool {
	for _, r := range AssignableRoles[actorRole] {
		if r == targetRole {
			return true
		}
	}
	return false
}

// Role represents a named permission set
type Role struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Permission represents a named capability
type Permission struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleRepository defines the interface for role/permission reference data
type RoleRepository interface {
	GetByID(ctx context.Context, id int) (*Role, error)
	GetByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context) ([]Role, error)
	HasPermission(ctx context.Context, roleID int, permission string) (bool, error)
}
