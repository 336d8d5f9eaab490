package rbac

type Permission struct {
	Role     string
	Resource string
	Action   string
}

// DefaultPolicy is the fixed role catalog. Roles are static; there is no
// per-tenant policy storage. Role names are spelled out here rather than
// pulled from the user package so rbac stays a leaf that route files can
// import freely.
func DefaultPolicy() []Permission {
	return []Permission{
		{"ADMIN", "*", "*"},

		{"MANAGER", "customer", "read"},
		{"MANAGER", "customer", "create"},
		{"MANAGER", "customer", "update"},
		{"MANAGER", "commission", "read"},
		{"MANAGER", "commission", "update"},
		{"MANAGER", "commission", "approve"},
		{"MANAGER", "user", "read"},
		{"MANAGER", "user", "create"},
		{"MANAGER", "user", "update"},
		{"MANAGER", "department", "read"},
		{"MANAGER", "channel", "read"},
		{"MANAGER", "channel", "create"},
		{"MANAGER", "channel", "update"},
		{"MANAGER", "salestarget", "read"},
		{"MANAGER", "salestarget", "create"},
		{"MANAGER", "salestarget", "update"},
		{"MANAGER", "training", "read"},
		{"MANAGER", "training", "create"},
		{"MANAGER", "training", "update"},
		{"MANAGER", "training", "approve"},

		{"SUPERVISOR", "customer", "read"},
		{"SUPERVISOR", "customer", "create"},
		{"SUPERVISOR", "customer", "update"},
		{"SUPERVISOR", "commission", "read"},
		{"SUPERVISOR", "user", "read"},
		{"SUPERVISOR", "department", "read"},
		{"SUPERVISOR", "channel", "read"},
		{"SUPERVISOR", "salestarget", "read"},
		{"SUPERVISOR", "salestarget", "update"},
		{"SUPERVISOR", "training", "read"},
		{"SUPERVISOR", "training", "update"},

		{"EMPLOYEE", "customer", "read"},
		{"EMPLOYEE", "customer", "create"},
		{"EMPLOYEE", "customer", "update"},
		{"EMPLOYEE", "commission", "read"},
		{"EMPLOYEE", "user", "read"},
		{"EMPLOYEE", "department", "read"},
		{"EMPLOYEE", "channel", "read"},
		{"EMPLOYEE", "salestarget", "read"},
		{"EMPLOYEE", "training", "read"},
		{"EMPLOYEE", "training", "update"},

		{"HR", "user", "read"},
		{"HR", "user", "create"},
		{"HR", "user", "update"},
		{"HR", "user", "delete"},
		{"HR", "department", "read"},
		{"HR", "department", "create"},
		{"HR", "department", "update"},
		{"HR", "department", "delete"},
		{"HR", "training", "read"},
		{"HR", "training", "create"},
		{"HR", "training", "approve"},

		{"FINANCE", "commission", "read"},
		{"FINANCE", "commission", "update"},
		{"FINANCE", "commission", "approve"},
		{"FINANCE", "commission", "pay"},
		{"FINANCE", "channel", "read"},
	}
}
