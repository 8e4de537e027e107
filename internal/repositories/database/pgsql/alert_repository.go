package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/expensly/expensly_backend/internal/apperrors"
	"github.com/expensly/expensly_backend/internal/core/domain"
	portsrepo "github.com/expensly/expensly_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAlertRepository struct {
	BaseRepository
}

func newPgxAlertRepository(db *pgxpool.Pool) portsrepo.AlertRepository {
	return &PgxAlertRepository{BaseRepository{Pool: db}}
}

// Ensure PgxAlertRepository implements portsrepo.AlertRepository
var _ portsrepo.AlertRepository = (*PgxAlertRepository)(nil)

const alertColumns = `
	alert_id, name, scope, target_id, period, threshold, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

var alertSortColumns = map[string]string{
	"name":      "name",
	"scope":     "scope",
	"createdAt": "created_at",
}

func scanAlert(row pgx.Row) (*domain.Alert, error) {
	var alert domain.Alert
	err := row.Scan(
		&alert.AlertID,
		&alert.Name,
		&alert.Scope,
		&alert.TargetID,
		&alert.Period,
		&alert.Threshold,
		&alert.IsActive,
		&alert.CreatedAt,
		&alert.CreatedBy,
		&alert.LastUpdatedAt,
		&alert.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *PgxAlertRepository) SaveAlert(ctx context.Context, alert domain.Alert) error {
	query := `
		INSERT INTO alerts (alert_id, name, scope, target_id, period, threshold, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		alert.AlertID,
		alert.Name,
		alert.Scope,
		alert.TargetID,
		alert.Period,
		alert.Threshold,
		alert.IsActive,
		alert.CreatedAt,
		alert.CreatedBy,
		alert.LastUpdatedAt,
		alert.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save alert: %w", err)
	}
	return nil
}

func (r *PgxAlertRepository) FindAlertByID(ctx context.Context, alertID string) (*domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE alert_id = $1;`
	alert, err := scanAlert(r.Pool.QueryRow(ctx, query, alertID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find alert by ID %s: %w", alertID, err)
	}
	return alert, nil
}

func (r *PgxAlertRepository) FindAlerts(ctx context.Context, limit, offset int, sort string) ([]domain.Alert, int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM alerts;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count alerts: %w", err)
	}

	query := `SELECT ` + alertColumns + ` FROM alerts ORDER BY ` +
		orderClause(sort, alertSortColumns, "created_at DESC") + ` LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, *alert)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate alert rows: %w", err)
	}
	return alerts, total, nil
}

func (r *PgxAlertRepository) FindActiveAlerts(ctx context.Context) ([]domain.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE is_active ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active alerts: %w", err)
	}
	defer rows.Close()

	alerts := []domain.Alert{}
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, *alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alert rows: %w", err)
	}
	return alerts, nil
}

func (r *PgxAlertRepository) UpdateAlert(ctx context.Context, alert domain.Alert) error {
	query := `
		UPDATE alerts
		SET name = $2, period = $3, threshold = $4, is_active = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE alert_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		alert.AlertID,
		alert.Name,
		alert.Period,
		alert.Threshold,
		alert.IsActive,
		alert.LastUpdatedAt,
		alert.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update alert %s: %w", alert.AlertID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
