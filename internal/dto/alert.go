package dto

import (
	"time"

	"github.com/expensly/expensly_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAlertRequest defines data for creating a budget alert rule.
type CreateAlertRequest struct {
	Name      string             `json:"name" binding:"required,max=100"`
	Scope     domain.AlertScope  `json:"scope" binding:"required,oneof=CATEGORY DEPARTMENT"`
	TargetID  string             `json:"targetID" binding:"required,uuid"`
	Period    domain.AlertPeriod `json:"period" binding:"required,oneof=DAILY MONTHLY"`
	Threshold decimal.Decimal    `json:"threshold" binding:"required"`
}

// UpdateAlertRequest defines the data allowed for updating an alert rule.
type UpdateAlertRequest struct {
	Name      *string             `json:"name" binding:"omitempty,max=100"`
	Period    *domain.AlertPeriod `json:"period" binding:"omitempty,oneof=DAILY MONTHLY"`
	Threshold *decimal.Decimal    `json:"threshold"`
	IsActive  *bool               `json:"isActive"`
}

// AlertResponse defines the alert fields exposed over the API.
type AlertResponse struct {
	AlertID   string             `json:"alertID"`
	Name      string             `json:"name"`
	Scope     domain.AlertScope  `json:"scope"`
	TargetID  string             `json:"targetID"`
	Period    domain.AlertPeriod `json:"period"`
	Threshold decimal.Decimal    `json:"threshold"`
	IsActive  bool               `json:"isActive"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ToAlertResponse converts a domain.Alert to its API representation.
func ToAlertResponse(a *domain.Alert) AlertResponse {
	return AlertResponse{
		AlertID:   a.AlertID,
		Name:      a.Name,
		Scope:     a.Scope,
		TargetID:  a.TargetID,
		Period:    a.Period,
		Threshold: a.Threshold,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
}

// ToAlertPage converts alerts plus a total into the page envelope.
func ToAlertPage(alerts []domain.Alert, params PageParams, total int64) Page[AlertResponse] {
	content := make([]AlertResponse, len(alerts))
	for i := range alerts {
		content[i] = ToAlertResponse(&alerts[i])
	}
	return NewPage(content, params, total)
}

// TriggeredAlertResponse pairs an alert with the spend that tripped it.
type TriggeredAlertResponse struct {
	Alert        AlertResponse   `json:"alert"`
	CurrentSpend decimal.Decimal `json:"currentSpend"`
}

// ToTriggeredAlertsResponse converts triggered alerts to their API representation.
func ToTriggeredAlertsResponse(triggered []domain.TriggeredAlert) []TriggeredAlertResponse {
	out := make([]TriggeredAlertResponse, len(triggered))
	for i := range triggered {
		out[i] = TriggeredAlertResponse{
			Alert:        ToAlertResponse(&triggered[i].Alert),
			CurrentSpend: triggered[i].CurrentSpend,
		}
	}
	return out
}
