package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus is the workflow state of a submitted expense.
type ExpenseStatus string

const (
	StatusPending           ExpenseStatus = "PENDING"
	StatusApprovedByManager ExpenseStatus = "APPROVED_BY_MANAGER"
	StatusApprovedByFinance ExpenseStatus = "APPROVED_BY_FINANCE"
	StatusRejected          ExpenseStatus = "REJECTED"
	StatusRequiresRevision  ExpenseStatus = "REQUIRES_REVISION"
)

// ExpenseAction is a review action performed on an expense by a manager or finance user.
type ExpenseAction string

const (
	ActionApprove         ExpenseAction = "APPROVE"
	ActionReject          ExpenseAction = "REJECT"
	ActionRequestRevision ExpenseAction = "REQUEST_REVISION"
)

// MaxExpenseAmount is the upper bound for a single expense amount, in the expense currency.
var MaxExpenseAmount = decimal.NewFromInt(1_000_000)

// Expense represents a submitted expense in the domain.
type Expense struct {
	ExpenseID    string          `json:"expenseID"` // Primary Key (UUID)
	OwnerUserID  string          `json:"ownerUserID"`
	CategoryID   string          `json:"categoryID"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExpenseDate  time.Time       `json:"expenseDate"`
	Description  string          `json:"description"`
	ReceiptURL   *string         `json:"receiptURL,omitempty"`
	Status       ExpenseStatus   `json:"status"`
	ReviewNote   *string         `json:"reviewNote,omitempty"`  // Set by the latest reviewer, cleared on resubmit
	ProcessedAt  *time.Time      `json:"processedAt,omitempty"` // Set when a terminal status is reached
	AuditFields
}

type transitionKey struct {
	status ExpenseStatus
	role   UserRole
	action ExpenseAction
}

// transitions is the full review-action table. Anything absent is disallowed:
// finance cannot act before the manager has, a manager cannot act twice, and
// terminal statuses admit no actions at all.
var transitions = map[transitionKey]ExpenseStatus{
	{StatusPending, RoleManager, ActionApprove}:                   StatusApprovedByManager,
	{StatusPending, RoleManager, ActionReject}:                    StatusRejected,
	{StatusPending, RoleManager, ActionRequestRevision}:           StatusRequiresRevision,
	{StatusApprovedByManager, RoleFinance, ActionApprove}:         StatusApprovedByFinance,
	{StatusApprovedByManager, RoleFinance, ActionReject}:          StatusRejected,
	{StatusApprovedByManager, RoleFinance, ActionRequestRevision}: StatusRequiresRevision,
}

// NextStatus returns the status resulting from applying action in the given
// status by an actor of the given role. The second return value is false when
// the combination is not allowed.
func NextStatus(status ExpenseStatus, role UserRole, action ExpenseAction) (ExpenseStatus, bool) {
	next, ok := transitions[transitionKey{status, role, action}]
	return next, ok
}

// CanTransition reports whether an actor of the given role may apply action to
// an expense in the given status.
func CanTransition(status ExpenseStatus, role UserRole, action ExpenseAction) bool {
	_, ok := NextStatus(status, role, action)
	return ok
}

// IsTerminal reports whether the status admits no further actions.
func (s ExpenseStatus) IsTerminal() bool {
	return s == StatusApprovedByFinance || s == StatusRejected
}

// IsValid reports whether s is one of the known workflow statuses.
func (s ExpenseStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApprovedByManager, StatusApprovedByFinance, StatusRejected, StatusRequiresRevision:
		return true
	}
	return false
}

// CanBeEditedBy reports whether userID may edit the expense. Only the owner may
// edit, and only before a manager has acted or after a revision was requested.
func (e *Expense) CanBeEditedBy(userID string) bool {
	if e.OwnerUserID != userID {
		return false
	}
	return e.Status == StatusPending || e.Status == StatusRequiresRevision
}

// CanBeDeletedBy reports whether userID may delete the expense. Deletion is
// only possible for the owner while no reviewer has acted yet.
func (e *Expense) CanBeDeletedBy(userID string) bool {
	return e.OwnerUserID == userID && e.Status == StatusPending
}

// CanBeResubmittedBy reports whether userID may resubmit the expense back into
// the approval chain after a revision was requested.
func (e *Expense) CanBeResubmittedBy(userID string) bool {
	return e.OwnerUserID == userID && e.Status == StatusRequiresRevision
}
