package middleware

import (
	"strings"

	"github.com/kev405/toolflow/internal/models"
)

// rolePrefixes maps each role to the path prefixes it may reach. A "/"
// prefix grants everything. Unknown roles get nothing.
var rolePrefixes = map[string][]string{
	models.RoleAdministrator: {"/"},
	models.RoleCoordinator: {
		"/api/headquarters",
		"/api/transfers",
		"/api/tools",
		"/api/vehicle-parts",
		"/api/vehicles",
		"/api/loans",
		"/tools",
		"/vehicle",
	},
	models.RoleAssistant: {
		"/api/loans",
		"/api/tools",
		"/tools",
	},
}

// CanAccess reports whether the role may reach the request path.
func CanAccess(role, path string) bool {
	prefixes, ok := rolePrefixes[role]
	if !ok {
		return false
	}
	for _, prefix := range prefixes {
		if prefix == "/" || path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
