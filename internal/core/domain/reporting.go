package domain

import "github.com/shopspring/decimal"

// ExpenseSummaryRow is one group (category or department) in an expense summary report.
type ExpenseSummaryRow struct {
	GroupID      string          `json:"groupID"`
	GroupName    string          `json:"groupName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ExpenseCount int64           `json:"expenseCount"`
}

// MonthlySummaryRow is the total approved spend for one calendar month.
type MonthlySummaryRow struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"` // 1-12
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ExpenseCount int64           `json:"expenseCount"`
}

// SummaryGroupBy selects the grouping dimension of the expense summary report.
type SummaryGroupBy string

const (
	GroupByCategory   SummaryGroupBy = "category"
	GroupByDepartment SummaryGroupBy = "department"
)
