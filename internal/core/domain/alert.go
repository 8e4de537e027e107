package domain

import "github.com/shopspring/decimal"

// AlertScope selects what a budget alert watches.
type AlertScope string

const (
	AlertScopeCategory   AlertScope = "CATEGORY"
	AlertScopeDepartment AlertScope = "DEPARTMENT"
)

// AlertPeriod is the rolling window a budget alert is evaluated over.
type AlertPeriod string

const (
	AlertPeriodDaily   AlertPeriod = "DAILY"
	AlertPeriodMonthly AlertPeriod = "MONTHLY"
)

// Alert is a finance-managed budget alert rule: it fires when the summed
// approved spend of its target within the period reaches the threshold.
type Alert struct {
	AlertID   string          `json:"alertID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Scope     AlertScope      `json:"scope"`
	TargetID  string          `json:"targetID"` // CategoryID or DepartmentID depending on Scope
	Period    AlertPeriod     `json:"period"`
	Threshold decimal.Decimal `json:"threshold"`
	IsActive  bool            `json:"isActive"`
	AuditFields
}

// TriggeredAlert pairs an alert with the spend that tripped it.
type TriggeredAlert struct {
	Alert        Alert           `json:"alert"`
	CurrentSpend decimal.Decimal `json:"currentSpend"`
}
