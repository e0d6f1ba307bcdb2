package rbac

import (
	"github.com/HafsaFatima26/hospital-management-system/internal/model"
)

// Permission names a sensitive operation class.
type Permission string

const (
	PermViewRawData        Permission = "patient:view_raw"
	PermViewAnonymizedData Permission = "patient:view_anonymized"
	PermWritePatient       Permission = "patient:write"
	PermAnonymize          Permission = "patient:anonymize"
	PermViewAuditLog       Permission = "audit:view"
	PermExportData         Permission = "data:export"
)

// capabilities is the fixed role capability table. Roles are seeded with
// the credential store and never change at runtime, so the policy is a
// literal rather than a stored relation.
var capabilities = map[model.Role]map[Permission]bool{
	model.RoleAdmin: {
		PermViewRawData:        true,
		PermViewAnonymizedData: true,
		PermWritePatient:       true,
		PermAnonymize:          true,
		PermViewAuditLog:       true,
		PermExportData:         true,
	},
	model.RoleDoctor: {
		PermViewAnonymizedData: true,
	},
	model.RoleReceptionist: {
		PermWritePatient: true,
	},
}

// Allowed consults the capability table. Pure; no side effects.
func Allowed(role model.Role, perm Permission) bool {
	return capabilities[role][perm]
}

// Check reports whether role is one of the required roles. Pure; every
// sensitive operation short-circuits on a false result before touching
// any state.
func Check(role model.Role, required ...model.Role) bool {
	for _, r := range required {
		if role == r {
			return true
		}
	}
	return false
}

// Permissions returns the permissions granted to role, for introspection
// on the dashboard.
func Permissions(role model.Role) []Permission {
	perms := make([]Permission, 0, len(capabilities[role]))
	for p, ok := range capabilities[role] {
		if ok {
			perms = append(perms, p)
		}
	}
	return perms
}
