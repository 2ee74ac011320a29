package auth

// Role is the closed set of account roles.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Action is a guarded capability. Authorization is a single table lookup, not
// scattered string comparisons.
type Action string

const (
	ActionCheckout     Action = "checkout"
	ActionCancelOrder  Action = "cancel_order"
	ActionManageOrders Action = "manage_orders"
	ActionManageUsers  Action = "manage_users"
)

var rolePermissions = map[Role]map[Action]bool{
	RoleCustomer: {
		ActionCheckout:    true,
		ActionCancelOrder: true,
	},
	RoleEmployee: {
		ActionCheckout:     true,
		ActionCancelOrder:  true,
		ActionManageOrders: true,
	},
	RoleAdmin: {
		ActionCheckout:     true,
		ActionCancelOrder:  true,
		ActionManageOrders: true,
		ActionManageUsers:  true,
	},
}

// Permits reports whether the role may perform the action.
func (r Role) Permits(a Action) bool {
	return rolePermissions[r][a]
}
