package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL
// (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un nuevo ingrediente.
func (r *IngredientRepo) Create(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, branch_id, name, unit, current_stock, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.BranchID, ingredient.Name, ingredient.Unit,
		ingredient.CurrentStock, ingredient.Cost,
		ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `
		SELECT id, branch_id, name, unit, current_stock, cost, created_at, updated_at
		FROM ingredients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get ingredient")
}

// GetForUpdate obtiene el ingrediente y bloquea la fila (SELECT FOR UPDATE).
// Se usa durante el cierre de inventario para conciliar stock sin carreras.
func (r *IngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	query := `
		SELECT id, branch_id, name, unit, current_stock, cost, created_at, updated_at
		FROM ingredients WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get ingredient for update")
}

// ListByBranch lista los ingredientes de una sucursal.
func (r *IngredientRepo) ListByBranch(branchID string) ([]*entity.Ingredient, error) {
	query := `
		SELECT id, branch_id, name, unit, current_stock, cost, created_at, updated_at
		FROM ingredients WHERE branch_id = $1 ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.BranchID, &i.Name, &i.Unit, &i.CurrentStock, &i.Cost, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// Update actualiza un ingrediente existente.
func (r *IngredientRepo) Update(ingredient *entity.Ingredient) error {
	query := `
		UPDATE ingredients SET name = $2, unit = $3, current_stock = $4, cost = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit, ingredient.CurrentStock,
		ingredient.Cost, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	return nil
}

// UpdateStock fija el stock actual del ingrediente.
func (r *IngredientRepo) UpdateStock(id string, stock decimal.Decimal) error {
	query := `UPDATE ingredients SET current_stock = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, stock)
	if err != nil {
		return fmt.Errorf("update ingredient stock: %w", err)
	}
	return nil
}

// Delete elimina un ingrediente por ID.
func (r *IngredientRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}

func (r *IngredientRepo) scanOne(row pgx.Row, op string) (*entity.Ingredient, error) {
	var i entity.Ingredient
	err := row.Scan(&i.ID, &i.BranchID, &i.Name, &i.Unit, &i.CurrentStock, &i.Cost, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}
