package middleware

import (
	"testing"

	"github.com/kev405/toolflow/internal/models"
)

func TestCanAccess(t *testing.T) {
	cases := []struct {
		role string
		path string
		want bool
	}{
		{models.RoleAdministrator, "/api/users", true},
		{models.RoleAdministrator, "/api/transfers/9/accept", true},
		{models.RoleCoordinator, "/api/transfers", true},
		{models.RoleCoordinator, "/api/transfers/9/accept", true},
		{models.RoleCoordinator, "/api/users", false},
		{models.RoleCoordinator, "/tools/available-for-transfer", true},
		{models.RoleCoordinator, "/vehicle/available-for-transfer", true},
		{models.RoleAssistant, "/api/loans", true},
		{models.RoleAssistant, "/api/loans/3", true},
		{models.RoleAssistant, "/api/transfers", false},
		{models.RoleAssistant, "/api/vehicles", false},
		{"UNKNOWN", "/api/loans", false},
		{"", "/api/tools", false},
	}
	for _, tc := range cases {
		if got := CanAccess(tc.role, tc.path); got != tc.want {
			t.Errorf("CanAccess(%q, %q) = %v, want %v", tc.role, tc.path, got, tc.want)
		}
	}
}

func TestCanAccessPrefixBoundary(t *testing.T) {
	// "/api/loans" must not leak into "/api/loansX".
	if CanAccess(models.RoleAssistant, "/api/loansX") {
		t.Error("prefix match must respect path segment boundaries")
	}
}
