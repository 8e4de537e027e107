package domain_test

import (
	"testing"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     domain.ExpenseStatus
		role       domain.UserRole
		action     domain.ExpenseAction
		wantNext   domain.ExpenseStatus
		wantAllowed bool
	}{
		{
			name:        "manager approves pending expense",
			status:      domain.StatusPending,
			role:        domain.RoleManager,
			action:      domain.ActionApprove,
			wantNext:    domain.StatusApprovedByManager,
			wantAllowed: true,
		},
		{
			name:        "manager rejects pending expense",
			status:      domain.StatusPending,
			role:        domain.RoleManager,
			action:      domain.ActionReject,
			wantNext:    domain.StatusRejected,
			wantAllowed: true,
		},
		{
			name:        "manager requests revision on pending expense",
			status:      domain.StatusPending,
			role:        domain.RoleManager,
			action:      domain.ActionRequestRevision,
			wantNext:    domain.StatusRequiresRevision,
			wantAllowed: true,
		},
		{
			name:        "finance approves manager-approved expense",
			status:      domain.StatusApprovedByManager,
			role:        domain.RoleFinance,
			action:      domain.ActionApprove,
			wantNext:    domain.StatusApprovedByFinance,
			wantAllowed: true,
		},
		{
			name:        "finance rejects manager-approved expense",
			status:      domain.StatusApprovedByManager,
			role:        domain.RoleFinance,
			action:      domain.ActionReject,
			wantNext:    domain.StatusRejected,
			wantAllowed: true,
		},
		{
			name:        "finance requests revision on manager-approved expense",
			status:      domain.StatusApprovedByManager,
			role:        domain.RoleFinance,
			action:      domain.ActionRequestRevision,
			wantNext:    domain.StatusRequiresRevision,
			wantAllowed: true,
		},
		{
			name:        "finance cannot act before the manager",
			status:      domain.StatusPending,
			role:        domain.RoleFinance,
			action:      domain.ActionApprove,
			wantAllowed: false,
		},
		{
			name:        "manager cannot approve twice",
			status:      domain.StatusApprovedByManager,
			role:        domain.RoleManager,
			action:      domain.ActionApprove,
			wantAllowed: false,
		},
		{
			name:        "employee cannot review at all",
			status:      domain.StatusPending,
			role:        domain.RoleEmployee,
			action:      domain.ActionApprove,
			wantAllowed: false,
		},
		{
			name:        "no action on fully approved expense",
			status:      domain.StatusApprovedByFinance,
			role:        domain.RoleFinance,
			action:      domain.ActionReject,
			wantAllowed: false,
		},
		{
			name:        "no action on rejected expense",
			status:      domain.StatusRejected,
			role:        domain.RoleManager,
			action:      domain.ActionApprove,
			wantAllowed: false,
		},
		{
			name:        "revision-requested expense waits for the owner, not a reviewer",
			status:      domain.StatusRequiresRevision,
			role:        domain.RoleManager,
			action:      domain.ActionApprove,
			wantAllowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok := domain.NextStatus(tt.status, tt.role, tt.action)
			assert.Equal(t, tt.wantAllowed, ok)
			if tt.wantAllowed {
				assert.Equal(t, tt.wantNext, next)
				assert.True(t, domain.CanTransition(tt.status, tt.role, tt.action))
			} else {
				assert.False(t, domain.CanTransition(tt.status, tt.role, tt.action))
			}
		})
	}
}

func TestTerminalStatusesAdmitNoTransitions(t *testing.T) {
	statuses := []domain.ExpenseStatus{
		domain.StatusPending,
		domain.StatusApprovedByManager,
		domain.StatusApprovedByFinance,
		domain.StatusRejected,
		domain.StatusRequiresRevision,
	}
	roles := []domain.UserRole{domain.RoleEmployee, domain.RoleManager, domain.RoleFinance}
	actions := []domain.ExpenseAction{domain.ActionApprove, domain.ActionReject, domain.ActionRequestRevision}

	rapid.Check(t, func(t *rapid.T) {
		status := rapid.SampledFrom(statuses).Draw(t, "status")
		role := rapid.SampledFrom(roles).Draw(t, "role")
		action := rapid.SampledFrom(actions).Draw(t, "action")

		next, ok := domain.NextStatus(status, role, action)
		if status.IsTerminal() {
			assert.False(t, ok, "terminal status %s allowed action %s by %s", status, action, role)
		}
		if ok {
			// Every reachable status is a known one, and a review never
			// lands back on the status it started from.
			assert.True(t, next.IsValid())
			assert.NotEqual(t, status, next)
		}
	})
}

func TestExpenseStatus_IsTerminal(t *testing.T) {
	assert.True(t, domain.StatusApprovedByFinance.IsTerminal())
	assert.True(t, domain.StatusRejected.IsTerminal())
	assert.False(t, domain.StatusPending.IsTerminal())
	assert.False(t, domain.StatusApprovedByManager.IsTerminal())
	assert.False(t, domain.StatusRequiresRevision.IsTerminal())
}

func TestExpense_CanBeEditedBy(t *testing.T) {
	tests := []struct {
		name   string
		status domain.ExpenseStatus
		owner  string
		userID string
		want   bool
	}{
		{"owner edits pending expense", domain.StatusPending, "user-1", "user-1", true},
		{"owner edits expense sent back for revision", domain.StatusRequiresRevision, "user-1", "user-1", true},
		{"owner cannot edit after manager approval", domain.StatusApprovedByManager, "user-1", "user-1", false},
		{"owner cannot edit a rejected expense", domain.StatusRejected, "user-1", "user-1", false},
		{"non-owner cannot edit even while pending", domain.StatusPending, "user-1", "user-2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.Expense{OwnerUserID: tt.owner, Status: tt.status}
			assert.Equal(t, tt.want, e.CanBeEditedBy(tt.userID))
		})
	}
}

func TestExpense_CanBeDeletedBy(t *testing.T) {
	e := domain.Expense{OwnerUserID: "user-1", Status: domain.StatusPending}
	assert.True(t, e.CanBeDeletedBy("user-1"))
	assert.False(t, e.CanBeDeletedBy("user-2"))

	e.Status = domain.StatusRequiresRevision
	assert.False(t, e.CanBeDeletedBy("user-1"), "only pending expenses may be deleted")
}

func TestExpense_CanBeResubmittedBy(t *testing.T) {
	e := domain.Expense{OwnerUserID: "user-1", Status: domain.StatusRequiresRevision}
	assert.True(t, e.CanBeResubmittedBy("user-1"))
	assert.False(t, e.CanBeResubmittedBy("user-2"))

	e.Status = domain.StatusPending
	assert.False(t, e.CanBeResubmittedBy("user-1"), "only revision-requested expenses may be resubmitted")
}
