package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/normalize"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL.
// Mantiene una columna name_normalized (minúsculas, sin acentos) para la
// búsqueda por nombre visible.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de persistencia para sucursales.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// Create persiste una nueva sucursal.
func (r *BranchRepo) Create(branch *entity.Branch) error {
	query := `
		INSERT INTO branches (id, name, name_normalized, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.Name, normalize.Name(branch.Name), branch.Address, branch.Phone,
		branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM branches WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get branch")
}

// GetByName obtiene una sucursal por su nombre normalizado.
func (r *BranchRepo) GetByName(name string) (*entity.Branch, error) {
	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM branches WHERE name_normalized = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, normalize.Name(name)), "get branch by name")
}

// List lista sucursales con paginación.
func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM branches ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza una sucursal existente.
func (r *BranchRepo) Update(branch *entity.Branch) error {
	query := `
		UPDATE branches SET name = $2, name_normalized = $3, address = $4, phone = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.Name, normalize.Name(branch.Name), branch.Address, branch.Phone, branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update branch: %w", err)
	}
	return nil
}

// Delete elimina una sucursal por ID.
func (r *BranchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM branches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete branch: %w", err)
	}
	return nil
}

func (r *BranchRepo) scanOne(row pgx.Row, op string) (*entity.Branch, error) {
	var b entity.Branch
	err := row.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &b, nil
}
