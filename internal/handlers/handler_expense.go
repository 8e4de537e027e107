package handlers

import (
	"log/slog"
	"net/http"

	"github.com/expensly/expensly_backend/internal/core/domain"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/expensly/expensly_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// expenseHandler handles HTTP requests related to expenses.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

// newExpenseHandler creates a new expenseHandler.
func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{
		expenseService: es,
	}
}

// registerExpenseRoutes registers all expense-related routes. Visibility and
// ownership rules live in the service; only the review actions get a role
// gate up front.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.listExpenses)
		expenses.POST("", h.createExpense)
		expenses.GET("/:id", h.getExpense)
		expenses.PUT("/:id", h.updateExpense)
		expenses.DELETE("/:id", h.deleteExpense)
		expenses.POST("/:id/resubmit", h.resubmitExpense)

		review := expenses.Group("", reviewerOnly())
		{
			review.POST("/:id/approve", h.reviewAction(domain.ActionApprove))
			review.POST("/:id/reject", h.reviewAction(domain.ActionReject))
			review.POST("/:id/request-revision", h.reviewAction(domain.ActionRequestRevision))
		}
	}
}

// requester pulls the caller's identity out of the context for response shaping.
func requester(c *gin.Context) (string, domain.UserRole, bool) {
	userID, ok := mustUserID(c)
	if !ok {
		return "", "", false
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewAPIError(http.StatusUnauthorized, "Unauthorized", c.Request.URL.Path))
		return "", "", false
	}
	return userID, role, true
}

// listExpenses godoc
// @Summary List expenses
// @Description Returns a page of expenses visible to the caller: employees see their own, managers their subordinates', finance everything.
// @Tags expenses
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Param sort query string false "Sort expression, e.g. expenseDate,desc"
// @Param status query string false "Filter by status"
// @Param categoryID query string false "Filter by category"
// @Param ownerID query string false "Filter by owner"
// @Param dateFrom query string false "Filter from date (YYYY-MM-DD)"
// @Param dateTo query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {object} dto.Page[dto.ExpenseResponse]
// @Failure 403 {object} dto.APIError
// @Security BearerAuth
// @Router /expenses [get]
func (h *expenseHandler) listExpenses(c *gin.Context) {
	var params dto.ListExpensesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	expenses, total, err := h.expenseService.ListExpenses(c.Request.Context(), params, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpensePage(expenses, params.PageParams, total, userID, role))
}

// createExpense godoc
// @Summary Submit a new expense
// @Description Creates an expense in PENDING status owned by the caller.
// @Tags expenses
// @Accept json
// @Produce json
// @Param expense body dto.CreateExpenseRequest true "Expense details"
// @Success 201 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.APIError
// @Failure 403 {object} dto.APIError
// @Security BearerAuth
// @Router /expenses [post]
func (h *expenseHandler) createExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense submitted",
		slog.String("expense_id", expense.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseResponse(expense, userID, role))
}

// getExpense godoc
// @Summary Get an expense by ID
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 404 {object} dto.APIError
// @Security BearerAuth
// @Router /expenses/{id} [get]
func (h *expenseHandler) getExpense(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, userID, role))
}

// updateExpense godoc
// @Summary Edit an expense
// @Description Edits an expense; only the owner, and only in PENDING or REQUIRES_REVISION status.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param expense body dto.UpdateExpenseRequest true "Fields to update"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} dto.APIError
// @Failure 403 {object} dto.APIError
// @Failure 409 {object} dto.APIError "No longer editable in its current status"
// @Security BearerAuth
// @Router /expenses/{id} [put]
func (h *expenseHandler) updateExpense(c *gin.Context) {
	var req dto.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, role, ok := requester(c)
	if !ok {
		return
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, userID, role))
}

// deleteExpense godoc
// @Summary Delete an expense
// @Description Deletes an expense; only the owner, and only in PENDING status.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.APIError
// @Failure 409 {object} dto.APIError "No longer deletable in its current status"
// @Security BearerAuth
// @Router /expenses/{id} [delete]
func (h *expenseHandler) deleteExpense(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// resubmitExpense godoc
// @Summary Resubmit an expense
// @Description Returns a REQUIRES_REVISION expense to PENDING; owner only.
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} dto.APIError
// @Failure 409 {object} dto.APIError
// @Security BearerAuth
// @Router /expenses/{id}/resubmit [post]
func (h *expenseHandler) resubmitExpense(c *gin.Context) {
	userID, role, ok := requester(c)
	if !ok {
		return
	}
	expense, err := h.expenseService.ResubmitExpense(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, userID, role))
}

// reviewAction builds a handler applying one review action. The optional body
// carries a note for the decision.
//
// @Summary Review an expense (approve / reject / request-revision)
// @Description Applies the review action named by the route, enforcing the approval chain: managers first, then finance. Only PENDING and APPROVED_BY_MANAGER expenses can be acted on.
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param review body dto.ReviewExpenseRequest false "Optional review note"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 403 {object} dto.APIError "Not the owner's manager"
// @Failure 409 {object} dto.APIError "Action not allowed in the current status, or a concurrent reviewer won"
// @Security BearerAuth
// @Router /expenses/{id}/approve [post]
func (h *expenseHandler) reviewAction(action domain.ExpenseAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ReviewExpenseRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				respondBindError(c, err)
				return
			}
		}
		userID, role, ok := requester(c)
		if !ok {
			return
		}

		expense, err := h.expenseService.ReviewExpense(c.Request.Context(), c.Param("id"), action, req.Note, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		middleware.GetLoggerFromCtx(c.Request.Context()).Info("Expense reviewed",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("action", string(action)),
			slog.String("new_status", string(expense.Status)))
		c.JSON(http.StatusOK, dto.ToExpenseResponse(expense, userID, role))
	}
}
