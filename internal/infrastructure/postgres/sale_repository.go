package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL. Los renglones se
// guardan como JSONB: una venta es inmutable después de registrada, salvo el
// estado.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, branch_id, client_name, client_ci, items, discount, total, sale_date, status, created_at, updated_at`

// Create persiste una nueva venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("marshal sale items: %w", err)
	}
	query := `
		INSERT INTO sales (id, branch_id, client_name, client_ci, items, discount, total, sale_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(context.Background(), query,
		sale.ID, sale.BranchID, sale.ClientName, sale.ClientCI, items,
		sale.Discount, sale.Total, sale.SaleDate, sale.Status,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	var s entity.Sale
	var items []byte
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.BranchID, &s.ClientName, &s.ClientCI, &items,
		&s.Discount, &s.Total, &s.SaleDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("unmarshal sale items: %w", err)
		}
	}
	return &s, nil
}

// ListByBranch lista las ventas de una sucursal, más recientes primero.
func (r *SaleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE branch_id = $1 ORDER BY sale_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListByBranchAndRange devuelve las ventas de la sucursal con SaleDate en
// [from, to).
func (r *SaleRepo) ListByBranchAndRange(branchID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales WHERE branch_id = $1 AND sale_date >= $2 AND sale_date < $3
		ORDER BY sale_date ASC`
	rows, err := r.q.Query(context.Background(), query, branchID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales by range: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// UpdateStatus cambia el estado de la venta. La validación de la transición es
// responsabilidad del caso de uso.
func (r *SaleRepo) UpdateStatus(id, status string) error {
	query := `UPDATE sales SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var items []byte
		if err := rows.Scan(&s.ID, &s.BranchID, &s.ClientName, &s.ClientCI, &items, &s.Discount, &s.Total, &s.SaleDate, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &s.Items); err != nil {
				return nil, fmt.Errorf("unmarshal sale items: %w", err)
			}
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
