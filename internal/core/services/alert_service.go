package services

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	portssvc "github.com/expensly/expensly_backend/internal/core/ports/services"
	"github.com/expensly/expensly_backend/internal/dto"
	"github.com/expensly/expensly_backend/internal/platform/validation"
	"github.com/google/uuid"
)

// alertService implements the AlertSvcFacade interface.
type alertService struct {
	BaseService
	alertRepo      portsrepo.AlertRepository
	categoryRepo   portsrepo.CategoryRepository
	departmentRepo portsrepo.DepartmentRepository
	reportingRepo  portsrepo.ReportingRepository
	now            func() time.Time
}

// NewAlertService creates a new alert service.
func NewAlertService(
	alertRepo portsrepo.AlertRepository,
	categoryRepo portsrepo.CategoryRepository,
	departmentRepo portsrepo.DepartmentRepository,
	reportingRepo portsrepo.ReportingRepository,
) portssvc.AlertSvcFacade {
	return &alertService{
		alertRepo:      alertRepo,
		categoryRepo:   categoryRepo,
		departmentRepo: departmentRepo,
		reportingRepo:  reportingRepo,
		now:            time.Now,
	}
}

var _ portssvc.AlertSvcFacade = (*alertService)(nil)

func (s *alertService) CreateAlert(ctx context.Context, req dto.CreateAlertRequest, creatorUserID string) (*domain.Alert, error) {
	if err := validation.Budget(req.Threshold); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
	}
	if err := s.checkTarget(ctx, req.Scope, req.TargetID); err != nil {
		return nil, err
	}

	alert := domain.Alert{
		AlertID:     uuid.NewString(),
		Name:        req.Name,
		Scope:       req.Scope,
		TargetID:    req.TargetID,
		Period:      req.Period,
		Threshold:   req.Threshold,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, s.now()),
	}

	if err := s.alertRepo.SaveAlert(ctx, alert); err != nil {
		s.LogError(ctx, err, "Failed to save alert", slog.String("alert_id", alert.AlertID))
		return nil, err
	}

	s.LogInfo(ctx, "Alert created", slog.String("alert_id", alert.AlertID), slog.String("scope", string(alert.Scope)))
	return &alert, nil
}

func (s *alertService) GetAlertByID(ctx context.Context, alertID string) (*domain.Alert, error) {
	return s.alertRepo.FindAlertByID(ctx, alertID)
}

func (s *alertService) ListAlerts(ctx context.Context, params dto.PageParams) ([]domain.Alert, int64, error) {
	alerts, total, err := s.alertRepo.FindAlerts(ctx, params.Limit(), params.Offset(), params.Sort)
	if err != nil {
		s.LogError(ctx, err, "Failed to list alerts")
		return nil, 0, err
	}
	return alerts, total, nil
}

func (s *alertService) UpdateAlert(ctx context.Context, alertID string, req dto.UpdateAlertRequest, requestingUserID string) (*domain.Alert, error) {
	alert, err := s.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		alert.Name = *req.Name
	}
	if req.Period != nil {
		alert.Period = *req.Period
	}
	if req.Threshold != nil {
		if err := validation.Budget(*req.Threshold); err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), apperrors.ErrValidation)
		}
		alert.Threshold = *req.Threshold
	}
	if req.IsActive != nil {
		alert.IsActive = *req.IsActive
	}

	alert.Touch(requestingUserID, s.now())
	if err := s.alertRepo.UpdateAlert(ctx, *alert); err != nil {
		s.LogError(ctx, err, "Failed to update alert", slog.String("alert_id", alertID))
		return nil, err
	}

	s.LogInfo(ctx, "Alert updated", slog.String("alert_id", alertID))
	return alert, nil
}

func (s *alertService) EvaluateTriggeredAlerts(ctx context.Context) ([]domain.TriggeredAlert, error) {
	alerts, err := s.alertRepo.FindActiveAlerts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load active alerts")
		return nil, err
	}

	now := s.now()
	triggered := []domain.TriggeredAlert{}
	for i := range alerts {
		from, to := alertWindow(alerts[i].Period, now)
		spend, err := s.reportingRepo.SumApprovedSpend(ctx, alerts[i].Scope, alerts[i].TargetID, from, to)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum spend for alert", slog.String("alert_id", alerts[i].AlertID))
			return nil, err
		}
		if spend.GreaterThanOrEqual(alerts[i].Threshold) {
			triggered = append(triggered, domain.TriggeredAlert{Alert: alerts[i], CurrentSpend: spend})
		}
	}
	return triggered, nil
}

// alertWindow returns the half-open evaluation window [from, to) of an alert
// period relative to now.
func alertWindow(period domain.AlertPeriod, now time.Time) (time.Time, time.Time) {
	switch period {
	case domain.AlertPeriodDaily:
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 0, 1)
	default:
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 1, 0)
	}
}

func (s *alertService) checkTarget(ctx context.Context, scope domain.AlertScope, targetID string) error {
	var err error
	switch scope {
	case domain.AlertScopeCategory:
		_, err = s.categoryRepo.FindCategoryByID(ctx, targetID)
	case domain.AlertScopeDepartment:
		_, err = s.departmentRepo.FindDepartmentByID(ctx, targetID)
	default:
		return apperrors.NewAppError(http.StatusBadRequest, "unknown alert scope", apperrors.ErrValidation)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewAppError(http.StatusBadRequest, "alert target does not exist", apperrors.ErrValidation)
		}
		return err
	}
	return nil
}
