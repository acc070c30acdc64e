package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/reconcile"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// UseCase maneja el ciclo del inventario diario de una sucursal: apertura con
// stock semilla, edición de movimientos, guardado y cierre en dos pasos con
// conciliación transaccional del stock de ingredientes.
type UseCase struct {
	invRepo        repository.InventoryRepository
	branchRepo     repository.BranchRepository
	ingredientRepo repository.IngredientRepository
	txRunner       TxRunner
	pdf            ClosingPDFGenerator
	log            *logger.Logger

	// Now permite fijar el reloj en tests; nil usa time.Now.
	Now func() time.Time
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	invRepo repository.InventoryRepository,
	branchRepo repository.BranchRepository,
	ingredientRepo repository.IngredientRepository,
	txRunner TxRunner,
	pdf ClosingPDFGenerator,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		invRepo:        invRepo,
		branchRepo:     branchRepo,
		ingredientRepo: ingredientRepo,
		txRunner:       txRunner,
		pdf:            pdf,
		log:            log,
	}
}

func (uc *UseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// resolveBranch acepta id o nombre visible de la sucursal.
func (uc *UseCase) resolveBranch(branchID, branchName string) (*entity.Branch, error) {
	if branchID != "" {
		return uc.branchRepo.GetByID(branchID)
	}
	if branchName != "" {
		return uc.branchRepo.GetByName(branchName)
	}
	return nil, domain.ErrInvalidInput
}

// Open crea el inventario del día con status open: un renglón por ingrediente
// de la sucursal, stock inicial sembrado desde el stock actual y sin
// movimientos. Falla sin empleados, con sucursal sin resolver, o si ya hay un
// inventario abierto para la sucursal hoy.
func (uc *UseCase) Open(ctx context.Context, in dto.OpenInventoryRequest) (*dto.InventoryResponse, error) {
	if len(in.Employees) == 0 {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.resolveBranch(in.BranchID, in.BranchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	today := dayStart(now)
	if existing, err := uc.invRepo.GetOpenByBranch(branch.ID, today); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrInventoryOpen
	}

	ingredients, err := uc.ingredientRepo.ListByBranch(branch.ID)
	if err != nil {
		return nil, err
	}

	inv := &entity.DailyInventory{
		ID:           uuid.New().String(),
		BranchID:     branch.ID,
		Date:         today,
		Status:       entity.InventoryStatusOpen,
		Observations: in.Observations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if inv.Observations == "" {
		inv.Observations = "Inventario inicial del día"
	}
	for _, e := range in.Employees {
		inv.Employees = append(inv.Employees, entity.InventoryEmployee{EmployeeCI: e.EmployeeCI, Name: e.Name})
	}
	for _, ing := range ingredients {
		inv.Lines = append(inv.Lines, entity.InventoryLine{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Unit:         ing.Unit,
			InitialStock: ing.CurrentStock,
			FinalStock:   ing.CurrentStock,
			Movements:    []entity.Movement{},
		})
	}

	if err := uc.invRepo.Create(inv); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// AddMovement agrega un movimiento al renglón del ingrediente y persiste los
// renglones. Valida antes de tocar nada: referencia en blanco o cantidad
// normalizada cero se rechazan sin efecto.
func (uc *UseCase) AddMovement(ctx context.Context, inventoryID, ingredientID string, in dto.AddMovementRequest) (*dto.InventoryResponse, error) {
	if strings.TrimSpace(in.Reference) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	qty := reconcile.NormalizeQuantity(in.Type, in.Quantity)
	if qty.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.IsClosed() {
		return nil, domain.ErrInventoryClosed
	}
	line := inv.FindLine(ingredientID)
	if line == nil {
		return nil, domain.ErrNotFound
	}

	reconcile.AddMovement(line, entity.Movement{
		Date:      uc.now(),
		Type:      in.Type,
		Quantity:  in.Quantity,
		Unit:      line.Unit,
		Reference: in.Reference,
	})

	if err := uc.invRepo.UpdateLines(inv.ID, inv.Lines, inv.Observations); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// RemoveMovement elimina el movimiento en la posición indicada del renglón.
// Un índice fuera de rango es un no-op que devuelve el inventario sin cambios.
func (uc *UseCase) RemoveMovement(ctx context.Context, inventoryID, ingredientID string, index int) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.IsClosed() {
		return nil, domain.ErrInventoryClosed
	}
	line := inv.FindLine(ingredientID)
	if line == nil {
		return nil, domain.ErrNotFound
	}

	before := len(line.Movements)
	reconcile.RemoveMovement(line, index)
	if len(line.Movements) == before {
		// Fuera de rango: nada que guardar.
		return toInventoryResponse(inv), nil
	}

	if err := uc.invRepo.UpdateLines(inv.ID, inv.Lines, inv.Observations); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// Update guarda de una sola vez los renglones editados y las observaciones.
// El FinalStock de cada renglón se rederiva en el servidor; el valor que
// mande el cliente se ignora.
func (uc *UseCase) Update(ctx context.Context, inventoryID string, in dto.UpdateInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.IsClosed() {
		return nil, domain.ErrInventoryClosed
	}

	if err := applyLines(inv, in.Lines); err != nil {
		return nil, err
	}
	if in.Observations != "" {
		inv.Observations = in.Observations
	}

	if err := uc.invRepo.UpdateLines(inv.ID, inv.Lines, inv.Observations); err != nil {
		return nil, err
	}
	return toInventoryResponse(inv), nil
}

// Close ejecuta el cierre en dos pasos: primero persiste los renglones
// (Update); si eso falla el cierre no se intenta. Después, en una sola
// transacción, concilia el stock actual de cada ingrediente con el FinalStock
// del renglón y marca el inventario como cerrado. Si el segundo paso falla,
// el inventario queda abierto con los datos guardados y el cierre puede
// reintentarse.
//
// Cerrar un inventario ya cerrado es idempotente: no toca los FinalStock
// comprometidos y devuelve el registro tal cual.
func (uc *UseCase) Close(ctx context.Context, inventoryID string, in dto.CloseInventoryRequest) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.IsClosed() {
		return toInventoryResponse(inv), nil
	}

	if len(in.Lines) > 0 {
		if err := applyLines(inv, in.Lines); err != nil {
			return nil, err
		}
	}
	if in.Observations != "" {
		inv.Observations = in.Observations
	}

	// Paso 1: guardar renglones. Sin esto no hay cierre.
	if err := uc.invRepo.UpdateLines(inv.ID, inv.Lines, inv.Observations); err != nil {
		return nil, err
	}

	// Paso 2: conciliar stock y cerrar, atómico.
	closedAt := uc.now()
	err = uc.txRunner.Run(ctx, func(invRepo repository.InventoryRepository, ingredientRepo repository.IngredientRepository) error {
		for _, line := range inv.Lines {
			ing, err := ingredientRepo.GetForUpdate(line.IngredientID)
			if err != nil {
				return err
			}
			if ing == nil {
				// El ingrediente pudo haberse borrado durante el día; el
				// renglón queda solo como registro histórico.
				continue
			}
			newStock := line.FinalStock
			if newStock.IsNegative() {
				newStock = decimal.Zero
			}
			if err := ingredientRepo.UpdateStock(ing.ID, newStock); err != nil {
				return err
			}
		}
		return invRepo.Close(inv.ID, closedAt)
	})
	if err != nil {
		uc.log.Error().Err(err).Str("inventory_id", inv.ID).Msg("cierre de inventario falló tras guardar renglones")
		return nil, err
	}

	inv.Status = entity.InventoryStatusClosed
	inv.ClosedAt = &closedAt
	return toInventoryResponse(inv), nil
}

// GetByID devuelve el inventario con el resumen de movimientos por renglón.
func (uc *UseCase) GetByID(ctx context.Context, inventoryID string) (*dto.InventoryResponse, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(inv), nil
}

// Current devuelve el inventario abierto del día para la sucursal, o
// ErrNotFound si no hay ninguno.
func (uc *UseCase) Current(ctx context.Context, branchID, branchName string) (*dto.InventoryResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invRepo.GetOpenByBranch(branch.ID, dayStart(uc.now()))
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(inv), nil
}

// ByDate devuelve el inventario de la sucursal para una fecha concreta.
func (uc *UseCase) ByDate(ctx context.Context, branchID, branchName string, date time.Time) (*dto.InventoryResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	inv, err := uc.invRepo.GetByBranchAndDate(branch.ID, dayStart(date))
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toInventoryResponse(inv), nil
}

// ListByBranch lista los inventarios de la sucursal, más recientes primero.
func (uc *UseCase) ListByBranch(ctx context.Context, branchID, branchName string, page dto.PageRequest) ([]*dto.InventoryResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	invs, err := uc.invRepo.ListByBranch(branch.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InventoryResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInventoryResponse(inv))
	}
	return out, nil
}

// ClosingPDF genera el reporte imprimible del inventario.
func (uc *UseCase) ClosingPDF(ctx context.Context, inventoryID string) ([]byte, error) {
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	branch, err := uc.branchRepo.GetByID(inv.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	return uc.pdf.GenerateClosingPDF(ctx, inv, branch)
}

// applyLines reemplaza los movimientos de cada renglón con los del request,
// normalizando signos y rederivando FinalStock. Renglones desconocidos se
// rechazan; renglones no mencionados quedan como están.
func applyLines(inv *entity.DailyInventory, lines []dto.InventoryLineDTO) error {
	for _, lineDTO := range lines {
		line := inv.FindLine(lineDTO.IngredientID)
		if line == nil {
			return domain.ErrInvalidInput
		}
		movs := make([]entity.Movement, 0, len(lineDTO.Movements))
		for _, m := range lineDTO.Movements {
			if strings.TrimSpace(m.Reference) == "" {
				return domain.ErrInvalidInput
			}
			if !entity.ValidMovementType(m.Type) {
				return domain.ErrInvalidInput
			}
			qty := reconcile.NormalizeQuantity(m.Type, m.Quantity)
			if qty.IsZero() {
				return domain.ErrInvalidInput
			}
			unit := m.Unit
			if unit == "" {
				unit = line.Unit
			}
			movs = append(movs, entity.Movement{
				Date:      m.Date,
				Type:      m.Type,
				Quantity:  qty,
				Unit:      unit,
				Reference: m.Reference,
			})
		}
		line.Movements = movs
		reconcile.Recalculate(line)
	}
	return nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toInventoryResponse(inv *entity.DailyInventory) *dto.InventoryResponse {
	resp := &dto.InventoryResponse{
		ID:           inv.ID,
		BranchID:     inv.BranchID,
		Date:         inv.Date,
		Status:       inv.Status,
		Observations: inv.Observations,
		ClosedAt:     inv.ClosedAt,
	}
	for _, e := range inv.Employees {
		resp.Employees = append(resp.Employees, dto.InventoryEmployeeDTO{EmployeeCI: e.EmployeeCI, Name: e.Name})
	}
	for _, line := range inv.Lines {
		sum := reconcile.Summarize(line.Movements)
		view := dto.InventoryLineView{
			InventoryLineDTO: dto.InventoryLineDTO{
				IngredientID: line.IngredientID,
				Name:         line.Name,
				Unit:         line.Unit,
				InitialStock: line.InitialStock,
				FinalStock:   line.FinalStock,
				Movements:    toMovementDTOs(line.Movements),
			},
			Summary: dto.MovementSummaryDTO{
				Sales:       sum.Sales,
				Purchases:   sum.Purchases,
				Adjustments: sum.Adjustments,
				Losses:      sum.Losses,
			},
		}
		resp.Lines = append(resp.Lines, view)
	}
	return resp
}

func toMovementDTOs(movs []entity.Movement) []dto.MovementDTO {
	out := make([]dto.MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementDTO{
			Date:      m.Date,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			Reference: m.Reference,
		})
	}
	return out
}
