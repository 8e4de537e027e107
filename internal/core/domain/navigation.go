package domain

// MenuItem is a single navigation entry with the set of roles allowed to see it.
// The client renders these to build its navigation, but the same allow-sets gate
// the corresponding API routes: the client-side menu is a convenience, never a
// security boundary.
type MenuItem struct {
	ID           string     `json:"id"`
	Label        string     `json:"label"`
	Path         string     `json:"path"`
	AllowedRoles []UserRole `json:"-"`
}

// menu is the full navigation table in display order.
var menu = []MenuItem{
	{ID: "dashboard", Label: "Dashboard", Path: "/dashboard", AllowedRoles: []UserRole{RoleEmployee, RoleManager, RoleFinance}},
	{ID: "expenses", Label: "My Expenses", Path: "/expenses", AllowedRoles: []UserRole{RoleEmployee, RoleManager, RoleFinance}},
	{ID: "approvals", Label: "Approvals", Path: "/approvals", AllowedRoles: []UserRole{RoleManager, RoleFinance}},
	{ID: "users", Label: "Users", Path: "/users", AllowedRoles: []UserRole{RoleFinance}},
	{ID: "departments", Label: "Departments", Path: "/departments", AllowedRoles: []UserRole{RoleFinance}},
	{ID: "categories", Label: "Categories", Path: "/categories", AllowedRoles: []UserRole{RoleFinance}},
	{ID: "alerts", Label: "Budget Alerts", Path: "/alerts", AllowedRoles: []UserRole{RoleFinance}},
	{ID: "reports", Label: "Reports", Path: "/reports", AllowedRoles: []UserRole{RoleManager, RoleFinance}},
}

// MenuForRole returns the ordered menu entries visible to the given role.
func MenuForRole(role UserRole) []MenuItem {
	visible := make([]MenuItem, 0, len(menu))
	for _, item := range menu {
		if roleAllowed(item.AllowedRoles, role) {
			visible = append(visible, item)
		}
	}
	return visible
}

// CanAccess reports whether role may see the menu entry with the given ID.
// Unknown IDs are not accessible to anyone.
func CanAccess(menuItemID string, role UserRole) bool {
	for _, item := range menu {
		if item.ID == menuItemID {
			return roleAllowed(item.AllowedRoles, role)
		}
	}
	return false
}

func roleAllowed(allowed []UserRole, role UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
