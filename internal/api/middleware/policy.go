package middleware

import (
	"imovia/internal/models"
)

// PolicyRule maps one protected route to the roles allowed to call it.
// An empty role set means any authenticated admin.
type PolicyRule struct {
	Method string
	Path   string // the registered echo route path, e.g. /api/admins/:id
	Roles  []models.AdminRole
}

var superAdminOnly = []models.AdminRole{models.AdminRoleSuperAdmin}

// Policy is the authorization table for the back office. Role checks
// happen here, in one place, instead of ad hoc inside each handler.
var Policy = []PolicyRule{
	{Method: "POST", Path: "/api/properties"},
	{Method: "PUT", Path: "/api/properties/:id"},
	{Method: "DELETE", Path: "/api/properties/:id"},

	{Method: "GET", Path: "/api/admins", Roles: superAdminOnly},
	{Method: "GET", Path: "/api/admins/:id", Roles: superAdminOnly},
	{Method: "POST", Path: "/api/admins", Roles: superAdminOnly},
	{Method: "PUT", Path: "/api/admins/:id", Roles: superAdminOnly},
	{Method: "PATCH", Path: "/api/admins/:id/status", Roles: superAdminOnly},
	{Method: "DELETE", Path: "/api/admins/:id", Roles: superAdminOnly},
}

// requiredRoles looks up the policy entry for a route. The second
// return is false when the route carries no explicit rule, in which
// case authentication alone suffices.
func requiredRoles(method, path string) ([]models.AdminRole, bool) {
	for _, rule := range Policy {
		if rule.Method == method && rule.Path == path {
			return rule.Roles, true
		}
	}
	return nil, false
}

// RoleAllowed reports whether role satisfies the rule's role set.
func RoleAllowed(roles []models.AdminRole, role models.AdminRole) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
