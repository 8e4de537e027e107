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

type PgxDepartmentRepository struct {
	BaseRepository
}

func newPgxDepartmentRepository(db *pgxpool.Pool) portsrepo.DepartmentRepository {
	return &PgxDepartmentRepository{BaseRepository{Pool: db}}
}

// Ensure PgxDepartmentRepository implements portsrepo.DepartmentRepository
var _ portsrepo.DepartmentRepository = (*PgxDepartmentRepository)(nil)

const departmentColumns = `
	department_id, name, currency_code, daily_budget, monthly_budget, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

var departmentSortColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

func scanDepartment(row pgx.Row) (*domain.Department, error) {
	var department domain.Department
	err := row.Scan(
		&department.DepartmentID,
		&department.Name,
		&department.CurrencyCode,
		&department.DailyBudget,
		&department.MonthlyBudget,
		&department.IsActive,
		&department.CreatedAt,
		&department.CreatedBy,
		&department.LastUpdatedAt,
		&department.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *PgxDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	query := `
		INSERT INTO departments (department_id, name, currency_code, daily_budget, monthly_budget,
			is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		department.DepartmentID,
		department.Name,
		department.CurrencyCode,
		department.DailyBudget,
		department.MonthlyBudget,
		department.IsActive,
		department.CreatedAt,
		department.CreatedBy,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save department: %w", err)
	}
	return nil
}

func (r *PgxDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE department_id = $1;`
	department, err := scanDepartment(r.Pool.QueryRow(ctx, query, departmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find department by ID %s: %w", departmentID, err)
	}
	return department, nil
}

func (r *PgxDepartmentRepository) FindDepartments(ctx context.Context, limit, offset int, sort string) ([]domain.Department, int64, error) {
	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT count(*) FROM departments;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY ` +
		orderClause(sort, departmentSortColumns, "name ASC") + ` LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []domain.Department{}
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, *department)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate department rows: %w", err)
	}
	return departments, total, nil
}

func (r *PgxDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	query := `
		UPDATE departments
		SET name = $2, currency_code = $3, daily_budget = $4, monthly_budget = $5,
			is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE department_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		department.DepartmentID,
		department.Name,
		department.CurrencyCode,
		department.DailyBudget,
		department.MonthlyBudget,
		department.IsActive,
		department.LastUpdatedAt,
		department.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update department %s: %w", department.DepartmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
