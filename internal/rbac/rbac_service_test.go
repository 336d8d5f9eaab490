package rbac_test

import (
	"testing"

	"go-salescrm/internal/rbac"
	"go-salescrm/internal/rbac/infra"
	"go-salescrm/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRBAC(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	require.NoError(t, err)
	svc, err := rbac.NewService(enforcer, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newRBAC(t)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{user.RoleAdmin, "commission", "pay", true},
		{user.RoleAdmin, "anything", "whatever", true},

		{user.RoleFinance, "commission", "pay", true},
		{user.RoleFinance, "commission", "approve", true},
		{user.RoleFinance, "customer", "read", false},

		{user.RoleManager, "commission", "approve", true},
		{user.RoleManager, "commission", "pay", false},
		{user.RoleManager, "salestarget", "create", true},

		{user.RoleEmployee, "customer", "create", true},
		{user.RoleEmployee, "commission", "read", true},
		{user.RoleEmployee, "commission", "approve", false},
		{user.RoleEmployee, "salestarget", "create", false},

		{user.RoleSupervisor, "training", "update", true},
		{user.RoleSupervisor, "training", "approve", false},

		{user.RoleHR, "training", "approve", true},
		{user.RoleHR, "commission", "read", false},

		{"INTERN", "customer", "read", false},
	}

	for _, tc := range cases {
		got, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, got, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}

// The policy spells role names out as literals; this pins them to the
// catalog the user package defines so the two cannot drift apart.
func TestDefaultPolicy_RolesMatchUserCatalog(t *testing.T) {
	known := map[string]bool{
		user.RoleAdmin:      true,
		user.RoleManager:    true,
		user.RoleSupervisor: true,
		user.RoleEmployee:   true,
		user.RoleHR:         true,
		user.RoleFinance:    true,
	}

	seen := map[string]bool{}
	for _, p := range rbac.DefaultPolicy() {
		assert.True(t, known[p.Role], "unknown role %q in policy", p.Role)
		seen[p.Role] = true
	}

	for role := range known {
		assert.True(t, seen[role], "role %q has no policy rules", role)
	}
}
