package dto

import (
	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExpenseSummaryParams defines the query parameters of the expense summary report.
type ExpenseSummaryParams struct {
	GroupBy  string `form:"groupBy,default=category" binding:"omitempty,oneof=category department"`
	DateFrom string `form:"dateFrom" binding:"required,datetime=2006-01-02"`
	DateTo   string `form:"dateTo" binding:"required,datetime=2006-01-02"`
}

// ExpenseSummaryRowResponse is one group in the expense summary report.
type ExpenseSummaryRowResponse struct {
	GroupID      string          `json:"groupID"`
	GroupName    string          `json:"groupName"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ExpenseCount int64           `json:"expenseCount"`
}

// ExpenseSummaryResponse is the expense summary report response.
type ExpenseSummaryResponse struct {
	GroupBy  string                      `json:"groupBy"`
	DateFrom string                      `json:"dateFrom"`
	DateTo   string                      `json:"dateTo"`
	Rows     []ExpenseSummaryRowResponse `json:"rows"`
	Total    decimal.Decimal             `json:"total"`
}

// ToExpenseSummaryResponse converts summary rows to the report response,
// computing the grand total.
func ToExpenseSummaryResponse(rows []domain.ExpenseSummaryRow, groupBy, dateFrom, dateTo string) ExpenseSummaryResponse {
	resp := ExpenseSummaryResponse{
		GroupBy:  groupBy,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Rows:     make([]ExpenseSummaryRowResponse, len(rows)),
		Total:    decimal.Zero,
	}
	for i, row := range rows {
		resp.Rows[i] = ExpenseSummaryRowResponse{
			GroupID:      row.GroupID,
			GroupName:    row.GroupName,
			TotalAmount:  row.TotalAmount,
			ExpenseCount: row.ExpenseCount,
		}
		resp.Total = resp.Total.Add(row.TotalAmount)
	}
	return resp
}

// MonthlySummaryParams defines the query parameters of the monthly report.
type MonthlySummaryParams struct {
	Year int `form:"year" binding:"required,min=2000,max=2100"`
}

// MonthlySummaryRowResponse is one month in the monthly summary report.
type MonthlySummaryRowResponse struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	ExpenseCount int64           `json:"expenseCount"`
}

// MonthlySummaryResponse is the monthly summary report response.
type MonthlySummaryResponse struct {
	Year int                         `json:"year"`
	Rows []MonthlySummaryRowResponse `json:"rows"`
}

// ToMonthlySummaryResponse converts monthly rows to the report response.
func ToMonthlySummaryResponse(rows []domain.MonthlySummaryRow, year int) MonthlySummaryResponse {
	resp := MonthlySummaryResponse{Year: year, Rows: make([]MonthlySummaryRowResponse, len(rows))}
	for i, row := range rows {
		resp.Rows[i] = MonthlySummaryRowResponse{
			Year:         row.Year,
			Month:        row.Month,
			TotalAmount:  row.TotalAmount,
			ExpenseCount: row.ExpenseCount,
		}
	}
	return resp
}
