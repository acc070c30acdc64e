package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un nuevo empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, branch_id, ci, name, phone, position, salary, photo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.BranchID, employee.CI, employee.Name, employee.Phone,
		employee.Position, employee.Salary, employee.PhotoURL,
		employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	query := `
		SELECT id, branch_id, ci, name, phone, position, salary, photo_url, created_at, updated_at
		FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.BranchID, &e.CI, &e.Name, &e.Phone, &e.Position, &e.Salary, &e.PhotoURL,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// ListByBranch lista empleados de una sucursal, con filtros opcionales por
// cargo y nombre (búsqueda parcial case-insensitive).
func (r *EmployeeRepo) ListByBranch(branchID string, filter repository.EmployeeFilter) ([]*entity.Employee, error) {
	query := `
		SELECT id, branch_id, ci, name, phone, position, salary, photo_url, created_at, updated_at
		FROM employees WHERE branch_id = $1`
	args := []any{branchID}
	if filter.Position != "" {
		args = append(args, filter.Position)
		query += fmt.Sprintf(" AND position = $%d", len(args))
	}
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	query += " ORDER BY name ASC"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.BranchID, &e.CI, &e.Name, &e.Phone, &e.Position, &e.Salary, &e.PhotoURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Update actualiza un empleado existente.
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET ci = $2, name = $3, phone = $4, position = $5, salary = $6, photo_url = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.CI, employee.Name, employee.Phone, employee.Position,
		employee.Salary, employee.PhotoURL, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// Delete elimina un empleado por ID.
func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
