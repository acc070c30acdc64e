package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
// La receta se guarda como JSONB en la misma fila: siempre se lee y escribe
// completa junto con el producto.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	recipe, err := json.Marshal(product.Recipe)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}
	query := `
		INSERT INTO products (id, branch_id, name, description, price, image_url, recipe, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		product.ID, product.BranchID, product.Name, product.Description,
		product.Price, product.ImageURL, recipe,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, branch_id, name, description, price, image_url, recipe, created_at, updated_at
		FROM products WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// ListByBranch lista los productos de una sucursal con paginación.
func (r *ProductRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, branch_id, name, description, price, image_url, recipe, created_at, updated_at
		FROM products WHERE branch_id = $1 ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update actualiza un producto existente (sin tocar la receta).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, price = $4, image_url = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price, product.ImageURL, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// UpdateRecipe reemplaza la receta completa del producto.
func (r *ProductRepo) UpdateRecipe(productID string, recipe []entity.RecipeItem) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}
	query := `UPDATE products SET recipe = $2, updated_at = now() WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query, productID, data)
	if err != nil {
		return fmt.Errorf("update recipe: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	var p entity.Product
	var recipe []byte
	err := row.Scan(&p.ID, &p.BranchID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &recipe, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(recipe) > 0 {
		if err := json.Unmarshal(recipe, &p.Recipe); err != nil {
			return nil, fmt.Errorf("unmarshal recipe: %w", err)
		}
	}
	return &p, nil
}

func (r *ProductRepo) scanProduct(rows pgx.Rows) (*entity.Product, error) {
	var p entity.Product
	var recipe []byte
	if err := rows.Scan(&p.ID, &p.BranchID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &recipe, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if len(recipe) > 0 {
		if err := json.Unmarshal(recipe, &p.Recipe); err != nil {
			return nil, fmt.Errorf("unmarshal recipe: %w", err)
		}
	}
	return &p, nil
}
