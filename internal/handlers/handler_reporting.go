package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// registerReportingRoutes registers reporting routes (managers and finance).
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports", reviewerOnly())
	{
		reports.GET("/expense-summary", h.expenseSummary)
		reports.GET("/expense-summary/export", h.expenseSummaryCSV)
		reports.GET("/monthly", h.monthlySummary)
		reports.GET("/monthly/export", h.monthlySummaryCSV)
	}
}

// expenseSummary godoc
// @Summary Expense summary report
// @Description Totals finance-approved spend per category or department within a date range.
// @Tags reports
// @Produce json
// @Param groupBy query string false "category (default) or department"
// @Param dateFrom query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param dateTo query string true "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {object} dto.ExpenseSummaryResponse
// @Failure 400 {object} dto.APIError
// @Security BearerAuth
// @Router /reports/expense-summary [get]
func (h *reportingHandler) expenseSummary(c *gin.Context) {
	params, from, to, ok := bindSummaryParams(c)
	if !ok {
		return
	}
	rows, err := h.reportingService.ExpenseSummary(c.Request.Context(), domain.SummaryGroupBy(params.GroupBy), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseSummaryResponse(rows, params.GroupBy, params.DateFrom, params.DateTo))
}

// expenseSummaryCSV godoc
// @Summary Expense summary report as CSV
// @Tags reports
// @Produce text/csv
// @Param groupBy query string false "category (default) or department"
// @Param dateFrom query string true "Start date (YYYY-MM-DD, inclusive)"
// @Param dateTo query string true "End date (YYYY-MM-DD, inclusive)"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} dto.APIError
// @Security BearerAuth
// @Router /reports/expense-summary/export [get]
func (h *reportingHandler) expenseSummaryCSV(c *gin.Context) {
	params, from, to, ok := bindSummaryParams(c)
	if !ok {
		return
	}
	doc, err := h.reportingService.ExpenseSummaryCSV(c.Request.Context(), domain.SummaryGroupBy(params.GroupBy), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("expense-summary-%s-%s-%s.csv", params.GroupBy, params.DateFrom, params.DateTo)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", doc)
}

// monthlySummary godoc
// @Summary Monthly totals report
// @Description Per-month finance-approved totals for a year.
// @Tags reports
// @Produce json
// @Param year query int true "Calendar year"
// @Success 200 {object} dto.MonthlySummaryResponse
// @Failure 400 {object} dto.APIError
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) monthlySummary(c *gin.Context) {
	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	rows, err := h.reportingService.MonthlySummary(c.Request.Context(), params.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMonthlySummaryResponse(rows, params.Year))
}

// monthlySummaryCSV godoc
// @Summary Monthly totals report as CSV
// @Tags reports
// @Produce text/csv
// @Param year query int true "Calendar year"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} dto.APIError
// @Security BearerAuth
// @Router /reports/monthly/export [get]
func (h *reportingHandler) monthlySummaryCSV(c *gin.Context) {
	var params dto.MonthlySummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	doc, err := h.reportingService.MonthlySummaryCSV(c.Request.Context(), params.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("monthly-summary-%d.csv", params.Year)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", doc)
}

// bindSummaryParams parses the summary query params and widens dateTo to the
// end of its day so the range is inclusive.
func bindSummaryParams(c *gin.Context) (dto.ExpenseSummaryParams, time.Time, time.Time, bool) {
	var params dto.ExpenseSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return params, time.Time{}, time.Time{}, false
	}
	from, _ := time.Parse("2006-01-02", params.DateFrom)
	to, _ := time.Parse("2006-01-02", params.DateTo)
	to = to.AddDate(0, 0, 1)
	return params, from, to, true
}
