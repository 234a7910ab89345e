package middleware

import (
	"net/http"

	"clinical-office-api/internal/domain/entity"
	"clinical-office-api/pkg/response"
)

// Permission identifies a (resource, action) pair in the policy table.
type Permission struct {
	Resource string
	Action   string
}

// policy is the central role table: every protected endpoint resolves to one
// row here, so the whole access policy is auditable in one place.
var policy = map[Permission][]entity.UserRole{
	{"patients", "create"}: {entity.RoleAdmin, entity.RoleReceptionist},
	{"patients", "read"}:   {entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse, entity.RoleViewer},
	{"patients", "update"}: {entity.RoleAdmin, entity.RoleReceptionist},
	{"patients", "delete"}: {entity.RoleAdmin},

	{"doctors", "create"}: {entity.RoleAdmin, entity.RoleReceptionist},
	{"doctors", "read"}:   {entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse, entity.RoleViewer},
	{"doctors", "update"}: {entity.RoleAdmin, entity.RoleReceptionist},
	{"doctors", "delete"}: {entity.RoleAdmin},

	{"appointments", "create"}:        {entity.RoleAdmin, entity.RoleReceptionist},
	{"appointments", "read"}:          {entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse, entity.RoleViewer},
	{"appointments", "update"}:        {entity.RoleAdmin, entity.RoleReceptionist},
	{"appointments", "update_status"}: {entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse},
	{"appointments", "delete"}:        {entity.RoleAdmin},

	{"medical_orders", "create"}: {entity.RoleAdmin, entity.RoleReceptionist},
	{"medical_orders", "read"}:   {entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse, entity.RoleViewer},
	{"medical_orders", "attach"}: {entity.RoleAdmin, entity.RoleNurse},
	{"medical_orders", "detach"}: {entity.RoleAdmin},

	{"medications", "create"}: {entity.RoleAdmin, entity.RoleNurse},
	{"medications", "read"}:   {entity.RoleAdmin, entity.RoleReceptionist, entity.RoleNurse, entity.RoleViewer},
	{"medications", "update"}: {entity.RoleAdmin, entity.RoleNurse},
	{"medications", "delete"}: {entity.RoleAdmin},
}

// AllowedRoles returns the role set for a permission. Unknown permissions
// return an empty set, denying everyone.
func AllowedRoles(resource, action string) []entity.UserRole {
	return policy[Permission{Resource: resource, Action: action}]
}

// Authorize checks the authenticated user's role against the policy table.
// Must run after Authenticate.
func Authorize(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetUserRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, r, "Role information not found")
				return
			}

			for _, allowed := range AllowedRoles(resource, action) {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, r, "You don't have permission to access this resource")
		})
	}
}
