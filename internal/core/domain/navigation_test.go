package domain_test

import (
	"testing"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestMenuForRole(t *testing.T) {
	ids := func(items []domain.MenuItem) []string {
		out := make([]string, 0, len(items))
		for _, item := range items {
			out = append(out, item.ID)
		}
		return out
	}

	t.Run("employee sees only their own pages", func(t *testing.T) {
		assert.Equal(t, []string{"dashboard", "expenses"}, ids(domain.MenuForRole(domain.RoleEmployee)))
	})

	t.Run("manager additionally sees approvals and reports", func(t *testing.T) {
		assert.Equal(t, []string{"dashboard", "expenses", "approvals", "reports"}, ids(domain.MenuForRole(domain.RoleManager)))
	})

	t.Run("finance sees everything in display order", func(t *testing.T) {
		assert.Equal(t,
			[]string{"dashboard", "expenses", "approvals", "users", "departments", "categories", "alerts", "reports"},
			ids(domain.MenuForRole(domain.RoleFinance)),
		)
	})
}

func TestCanAccess(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
		role   domain.UserRole
		want   bool
	}{
		{"finance can open users", "users", domain.RoleFinance, true},
		{"employee cannot open users", "users", domain.RoleEmployee, false},
		{"manager cannot open alerts", "alerts", domain.RoleManager, false},
		{"manager can open approvals", "approvals", domain.RoleManager, true},
		{"everyone can open the dashboard", "dashboard", domain.RoleEmployee, true},
		{"unknown menu item is inaccessible", "admin", domain.RoleFinance, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.CanAccess(tt.itemID, tt.role))
		})
	}
}
