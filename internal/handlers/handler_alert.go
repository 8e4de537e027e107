package handlers

import (
	"net/http"

	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// alertHandler handles HTTP requests related to budget alerts.
type alertHandler struct {
	alertService portssvc.AlertSvcFacade
}

// registerAlertRoutes registers budget alert routes (finance only).
func registerAlertRoutes(rg *gin.RouterGroup, alertService portssvc.AlertSvcFacade) {
	h := &alertHandler{alertService: alertService}

	alerts := rg.Group("/alerts", financeOnly())
	{
		alerts.GET("", h.listAlerts)
		alerts.POST("", h.createAlert)
		alerts.GET("/triggered", h.listTriggeredAlerts)
		alerts.GET("/:id", h.getAlert)
		alerts.PUT("/:id", h.updateAlert)
	}
}

// listAlerts godoc
// @Summary List budget alert rules
// @Tags alerts
// @Produce json
// @Success 200 {object} dto.Page[dto.AlertResponse]
// @Security BearerAuth
// @Router /alerts [get]
func (h *alertHandler) listAlerts(c *gin.Context) {
	var params dto.PageParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	alerts, total, err := h.alertService.ListAlerts(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertPage(alerts, params, total))
}

// createAlert godoc
// @Summary Create a budget alert rule
// @Tags alerts
// @Accept json
// @Produce json
// @Param alert body dto.CreateAlertRequest true "Alert details"
// @Success 201 {object} dto.AlertResponse
// @Failure 400 {object} dto.APIError
// @Security BearerAuth
// @Router /alerts [post]
func (h *alertHandler) createAlert(c *gin.Context) {
	var req dto.CreateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	creatorUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	alert, err := h.alertService.CreateAlert(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAlertResponse(alert))
}

// listTriggeredAlerts godoc
// @Summary List currently triggered alerts
// @Description Evaluates every active alert against the approved spend of its window and returns the ones at or over threshold.
// @Tags alerts
// @Produce json
// @Success 200 {array} dto.TriggeredAlertResponse
// @Security BearerAuth
// @Router /alerts/triggered [get]
func (h *alertHandler) listTriggeredAlerts(c *gin.Context) {
	triggered, err := h.alertService.EvaluateTriggeredAlerts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTriggeredAlertsResponse(triggered))
}

// getAlert godoc
// @Summary Get an alert rule by ID
// @Tags alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} dto.AlertResponse
// @Failure 404 {object} dto.APIError
// @Security BearerAuth
// @Router /alerts/{id} [get]
func (h *alertHandler) getAlert(c *gin.Context) {
	alert, err := h.alertService.GetAlertByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}

// updateAlert godoc
// @Summary Update an alert rule
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param alert body dto.UpdateAlertRequest true "Fields to update"
// @Success 200 {object} dto.AlertResponse
// @Failure 400 {object} dto.APIError
// @Failure 404 {object} dto.APIError
// @Security BearerAuth
// @Router /alerts/{id} [put]
func (h *alertHandler) updateAlert(c *gin.Context) {
	var req dto.UpdateAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	requestingUserID, ok := mustUserID(c)
	if !ok {
		return
	}

	alert, err := h.alertService.UpdateAlert(c.Request.Context(), c.Param("id"), req, requestingUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}
