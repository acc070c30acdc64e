package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL.
// Renglones y empleados se guardan como JSONB: el inventario diario se edita
// siempre como documento completo y el volumen por fila es acotado (decenas
// de ingredientes).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, branch_id, date, status, employees, lines, observations, created_at, updated_at, closed_at`

// Create persiste un nuevo inventario diario.
func (r *InventoryRepo) Create(inv *entity.DailyInventory) error {
	employees, err := json.Marshal(inv.Employees)
	if err != nil {
		return fmt.Errorf("marshal employees: %w", err)
	}
	lines, err := json.Marshal(inv.Lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	query := `
		INSERT INTO daily_inventories (id, branch_id, date, status, employees, lines, observations, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		inv.ID, inv.BranchID, inv.Date, inv.Status, employees, lines, inv.Observations,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInventoryOpen
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un inventario por ID.
func (r *InventoryRepo) GetByID(id string) (*entity.DailyInventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM daily_inventories WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get inventory")
}

// GetOpenByBranch devuelve el inventario abierto de la sucursal para la fecha
// dada, o nil si no hay ninguno.
func (r *InventoryRepo) GetOpenByBranch(branchID string, date time.Time) (*entity.DailyInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM daily_inventories
		WHERE branch_id = $1 AND date = $2 AND status = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, date, entity.InventoryStatusOpen), "get open inventory")
}

// GetByBranchAndDate devuelve el inventario de la sucursal para la fecha dada
// sin importar su estado, o nil si no existe.
func (r *InventoryRepo) GetByBranchAndDate(branchID string, date time.Time) (*entity.DailyInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM daily_inventories
		WHERE branch_id = $1 AND date = $2
		ORDER BY created_at DESC LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, branchID, date), "get inventory by date")
}

// ListByBranch lista los inventarios de una sucursal, más recientes primero.
func (r *InventoryRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.DailyInventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM daily_inventories
		WHERE branch_id = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer rows.Close()
	var list []*entity.DailyInventory
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// UpdateLines reemplaza renglones y observaciones del inventario. Solo aplica
// sobre inventarios abiertos; sobre uno cerrado devuelve ErrInventoryClosed.
func (r *InventoryRepo) UpdateLines(id string, lines []entity.InventoryLine, observations string) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal lines: %w", err)
	}
	query := `
		UPDATE daily_inventories SET lines = $2, observations = $3, updated_at = now()
		WHERE id = $1 AND status = $4`
	cmd, err := r.q.Exec(context.Background(), query, id, data, observations, entity.InventoryStatusOpen)
	if err != nil {
		return fmt.Errorf("update inventory lines: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInventoryClosed
	}
	return nil
}

// Close marca el inventario como cerrado. Idempotente: cerrar un inventario ya
// cerrado no es error.
func (r *InventoryRepo) Close(id string, closedAt time.Time) error {
	query := `
		UPDATE daily_inventories SET status = $2, closed_at = $3, updated_at = now()
		WHERE id = $1 AND status = $4`
	_, err := r.q.Exec(context.Background(), query, id, entity.InventoryStatusClosed, closedAt, entity.InventoryStatusOpen)
	if err != nil {
		return fmt.Errorf("close inventory: %w", err)
	}
	return nil
}

func (r *InventoryRepo) scanOne(row pgx.Row, op string) (*entity.DailyInventory, error) {
	inv, err := scanInventoryRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return inv, nil
}

func scanInventoryRow(row pgx.Row) (*entity.DailyInventory, error) {
	var inv entity.DailyInventory
	var employees, lines []byte
	err := row.Scan(
		&inv.ID, &inv.BranchID, &inv.Date, &inv.Status, &employees, &lines,
		&inv.Observations, &inv.CreatedAt, &inv.UpdatedAt, &inv.ClosedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalInventoryDocs(&inv, employees, lines); err != nil {
		return nil, err
	}
	return &inv, nil
}

func scanInventory(rows pgx.Rows) (*entity.DailyInventory, error) {
	inv, err := scanInventoryRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan inventory: %w", err)
	}
	return inv, nil
}

func unmarshalInventoryDocs(inv *entity.DailyInventory, employees, lines []byte) error {
	if len(employees) > 0 {
		if err := json.Unmarshal(employees, &inv.Employees); err != nil {
			return fmt.Errorf("unmarshal employees: %w", err)
		}
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &inv.Lines); err != nil {
			return fmt.Errorf("unmarshal lines: %w", err)
		}
	}
	return nil
}
