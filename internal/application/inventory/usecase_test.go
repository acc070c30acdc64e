package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/inventory"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	byID map[string]*entity.DailyInventory

	updateLinesErr error
	closeErr       error
	closeCalls     int
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{byID: make(map[string]*entity.DailyInventory)}
}

func (r *fakeInventoryRepo) Create(inv *entity.DailyInventory) error {
	for _, existing := range r.byID {
		if existing.BranchID == inv.BranchID && existing.Date.Equal(inv.Date) &&
			existing.Status == entity.InventoryStatusOpen {
			return domain.ErrInventoryOpen
		}
	}
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) GetByID(id string) (*entity.DailyInventory, error) {
	inv, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInventoryRepo) GetOpenByBranch(branchID string, date time.Time) (*entity.DailyInventory, error) {
	for _, inv := range r.byID {
		if inv.BranchID == branchID && inv.Date.Equal(date) && inv.Status == entity.InventoryStatusOpen {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) GetByBranchAndDate(branchID string, date time.Time) (*entity.DailyInventory, error) {
	for _, inv := range r.byID {
		if inv.BranchID == branchID && inv.Date.Equal(date) {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.DailyInventory, error) {
	var out []*entity.DailyInventory
	for _, inv := range r.byID {
		if inv.BranchID == branchID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) UpdateLines(id string, lines []entity.InventoryLine, observations string) error {
	if r.updateLinesErr != nil {
		return r.updateLinesErr
	}
	inv, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.IsClosed() {
		return domain.ErrInventoryClosed
	}
	inv.Lines = lines
	inv.Observations = observations
	return nil
}

func (r *fakeInventoryRepo) Close(id string, closedAt time.Time) error {
	r.closeCalls++
	if r.closeErr != nil {
		return r.closeErr
	}
	inv, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if inv.IsClosed() {
		// Idempotente: cerrar dos veces no es error.
		return nil
	}
	inv.Status = entity.InventoryStatusClosed
	inv.ClosedAt = &closedAt
	return nil
}

type fakeBranchRepo struct {
	byID map[string]*entity.Branch
}

func newFakeBranchRepo(branches ...*entity.Branch) *fakeBranchRepo {
	r := &fakeBranchRepo{byID: make(map[string]*entity.Branch)}
	for _, b := range branches {
		r.byID[b.ID] = b
	}
	return r
}

func (r *fakeBranchRepo) Create(branch *entity.Branch) error { r.byID[branch.ID] = branch; return nil }
func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	return r.byID[id], nil
}
func (r *fakeBranchRepo) GetByName(name string) (*entity.Branch, error) {
	for _, b := range r.byID {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, nil
}
func (r *fakeBranchRepo) List(limit, offset int) ([]*entity.Branch, error) { return nil, nil }
func (r *fakeBranchRepo) Update(branch *entity.Branch) error               { return nil }
func (r *fakeBranchRepo) Delete(id string) error                           { return nil }

type fakeIngredientRepo struct {
	byID map[string]*entity.Ingredient

	stockUpdates map[string]decimal.Decimal
	updateErr    error
}

func newFakeIngredientRepo(ings ...*entity.Ingredient) *fakeIngredientRepo {
	r := &fakeIngredientRepo{
		byID:         make(map[string]*entity.Ingredient),
		stockUpdates: make(map[string]decimal.Decimal),
	}
	for _, ing := range ings {
		r.byID[ing.ID] = ing
	}
	return r
}

func (r *fakeIngredientRepo) Create(ing *entity.Ingredient) error { r.byID[ing.ID] = ing; return nil }
func (r *fakeIngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	return r.byID[id], nil
}
func (r *fakeIngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	return r.byID[id], nil
}
func (r *fakeIngredientRepo) ListByBranch(branchID string) ([]*entity.Ingredient, error) {
	var out []*entity.Ingredient
	for _, ing := range r.byID {
		if ing.BranchID == branchID {
			out = append(out, ing)
		}
	}
	return out, nil
}
func (r *fakeIngredientRepo) Update(ing *entity.Ingredient) error { return nil }
func (r *fakeIngredientRepo) UpdateStock(id string, stock decimal.Decimal) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	ing, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	ing.CurrentStock = stock
	r.stockUpdates[id] = stock
	return nil
}
func (r *fakeIngredientRepo) Delete(id string) error { delete(r.byID, id); return nil }

// fakeTxRunner ejecuta la función directamente contra los mismos fakes;
// si fn falla, deshace las actualizaciones de stock (simula el rollback).
type fakeTxRunner struct {
	invRepo *fakeInventoryRepo
	ingRepo *fakeIngredientRepo
}

func (tx *fakeTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	ingredientRepo repository.IngredientRepository,
) error) error {
	snapshot := make(map[string]decimal.Decimal, len(tx.ingRepo.byID))
	for id, ing := range tx.ingRepo.byID {
		snapshot[id] = ing.CurrentStock
	}
	if err := fn(tx.invRepo, tx.ingRepo); err != nil {
		for id, stock := range snapshot {
			tx.ingRepo.byID[id].CurrentStock = stock
		}
		return err
	}
	return nil
}

type fakePDF struct{ calls int }

func (p *fakePDF) GenerateClosingPDF(ctx context.Context, inv *entity.DailyInventory, branch *entity.Branch) ([]byte, error) {
	p.calls++
	return []byte("%PDF-1.4"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type invFixture struct {
	uc      *inventory.UseCase
	invRepo *fakeInventoryRepo
	ingRepo *fakeIngredientRepo
	pdf     *fakePDF
	now     time.Time
}

func newInvFixture(t *testing.T) *invFixture {
	t.Helper()
	branch := &entity.Branch{ID: "branch-1", Name: "Sucursal Centro"}
	harina := &entity.Ingredient{
		ID: "ing-harina", BranchID: "branch-1", Name: "Harina",
		Unit: entity.UnitKg, CurrentStock: decimal.NewFromInt(20),
	}
	queso := &entity.Ingredient{
		ID: "ing-queso", BranchID: "branch-1", Name: "Queso",
		Unit: entity.UnitKg, CurrentStock: decimal.NewFromInt(8),
	}

	invRepo := newFakeInventoryRepo()
	ingRepo := newFakeIngredientRepo(harina, queso)
	pdf := &fakePDF{}
	uc := inventory.NewUseCase(
		invRepo,
		newFakeBranchRepo(branch),
		ingRepo,
		&fakeTxRunner{invRepo: invRepo, ingRepo: ingRepo},
		pdf,
		logger.Nop(),
	)
	now := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	uc.Now = func() time.Time { return now }
	return &invFixture{uc: uc, invRepo: invRepo, ingRepo: ingRepo, pdf: pdf, now: now}
}

func openToday(t *testing.T, f *invFixture) *dto.InventoryResponse {
	t.Helper()
	resp, err := f.uc.Open(context.Background(), dto.OpenInventoryRequest{
		BranchID: "branch-1",
		Employees: []dto.InventoryEmployeeDTO{
			{EmployeeCI: "12345678", Name: "María Pérez"},
		},
	})
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Open
// ──────────────────────────────────────────────────────────────────────────────

func TestOpen_SiembraRenglonesDesdeStockActual(t *testing.T) {
	f := newInvFixture(t)
	resp := openToday(t, f)

	assert.Equal(t, entity.InventoryStatusOpen, resp.Status)
	assert.Equal(t, "branch-1", resp.BranchID)
	assert.True(t, resp.Date.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		"la fecha debe truncarse al inicio del día")
	require.Len(t, resp.Lines, 2)
	for _, line := range resp.Lines {
		assert.True(t, line.InitialStock.Equal(line.FinalStock),
			"sin movimientos el saldo final es el inicial")
		assert.Empty(t, line.Movements)
	}
	assert.Equal(t, "Inventario inicial del día", resp.Observations)
}

func TestOpen_SinEmpleadosFalla(t *testing.T) {
	f := newInvFixture(t)
	_, err := f.uc.Open(context.Background(), dto.OpenInventoryRequest{BranchID: "branch-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpen_SucursalDesconocidaFalla(t *testing.T) {
	f := newInvFixture(t)
	_, err := f.uc.Open(context.Background(), dto.OpenInventoryRequest{
		BranchID:  "branch-nope",
		Employees: []dto.InventoryEmployeeDTO{{EmployeeCI: "1", Name: "X"}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOpen_DosVecesElMismoDiaConflicto(t *testing.T) {
	f := newInvFixture(t)
	openToday(t, f)

	_, err := f.uc.Open(context.Background(), dto.OpenInventoryRequest{
		BranchID:  "branch-1",
		Employees: []dto.InventoryEmployeeDTO{{EmployeeCI: "2", Name: "Otro"}},
	})
	assert.ErrorIs(t, err, domain.ErrInventoryOpen)
}

func TestOpen_PorNombreDeSucursal(t *testing.T) {
	f := newInvFixture(t)
	resp, err := f.uc.Open(context.Background(), dto.OpenInventoryRequest{
		BranchName: "Sucursal Centro",
		Employees:  []dto.InventoryEmployeeDTO{{EmployeeCI: "1", Name: "X"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "branch-1", resp.BranchID)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddMovement / RemoveMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestAddMovement_ActualizaSaldoYResumen(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)

	resp, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-harina", dto.AddMovementRequest{
		Type:      entity.MovementTypeSale,
		Quantity:  decimal.NewFromInt(-4),
		Reference: "venta mediodía",
	})
	require.NoError(t, err)

	var line *dto.InventoryLineView
	for i := range resp.Lines {
		if resp.Lines[i].IngredientID == "ing-harina" {
			line = &resp.Lines[i]
		}
	}
	require.NotNil(t, line)
	assert.True(t, line.FinalStock.Equal(decimal.NewFromInt(16)), "20 - 4 = 16")
	assert.True(t, line.Summary.Sales.Equal(decimal.NewFromInt(4)),
		"el resumen agrega en valor absoluto")
}

func TestAddMovement_MermaPositivaSeNormalizaNegativa(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)

	resp, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-queso", dto.AddMovementRequest{
		Type:      entity.MovementTypeLoss,
		Quantity:  decimal.NewFromInt(2), // ingresada en positivo
		Reference: "se echó a perder",
	})
	require.NoError(t, err)

	for _, line := range resp.Lines {
		if line.IngredientID == "ing-queso" {
			require.Len(t, line.Movements, 1)
			assert.True(t, line.Movements[0].Quantity.Equal(decimal.NewFromInt(-2)))
			assert.True(t, line.FinalStock.Equal(decimal.NewFromInt(6)))
		}
	}
}

func TestAddMovement_ReferenciaEnBlancoSeRechaza(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)

	_, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-harina", dto.AddMovementRequest{
		Type:      entity.MovementTypePurchase,
		Quantity:  decimal.NewFromInt(5),
		Reference: "   ",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Sin efecto: el inventario queda intacto.
	after, err := f.uc.GetByID(context.Background(), inv.ID)
	require.NoError(t, err)
	for _, line := range after.Lines {
		assert.Empty(t, line.Movements)
	}
}

func TestAddMovement_TipoInvalidoYCantidadCero(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)

	_, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-harina", dto.AddMovementRequest{
		Type: "donacion", Quantity: decimal.NewFromInt(1), Reference: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.AddMovement(context.Background(), inv.ID, "ing-harina", dto.AddMovementRequest{
		Type: entity.MovementTypeSale, Quantity: decimal.Zero, Reference: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveMovement_FueraDeRangoEsNoOp(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)
	_, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-harina", dto.AddMovementRequest{
		Type: entity.MovementTypePurchase, Quantity: decimal.NewFromInt(5), Reference: "compra",
	})
	require.NoError(t, err)

	resp, err := f.uc.RemoveMovement(context.Background(), inv.ID, "ing-harina", 9)
	require.NoError(t, err)
	for _, line := range resp.Lines {
		if line.IngredientID == "ing-harina" {
			assert.Len(t, line.Movements, 1)
			assert.True(t, line.FinalStock.Equal(decimal.NewFromInt(25)))
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Close — dos pasos, conciliación e idempotencia
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_ConciliaStockYMarcaCerrado(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)
	_, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-harina", dto.AddMovementRequest{
		Type: entity.MovementTypeSale, Quantity: decimal.NewFromInt(-6), Reference: "ventas del día",
	})
	require.NoError(t, err)

	resp, err := f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{
		Observations: "cierre normal",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InventoryStatusClosed, resp.Status)
	require.NotNil(t, resp.ClosedAt)
	assert.True(t, resp.ClosedAt.Equal(f.now))

	// El stock del ingrediente queda conciliado con el FinalStock del renglón.
	harina, _ := f.ingRepo.GetByID("ing-harina")
	assert.True(t, harina.CurrentStock.Equal(decimal.NewFromInt(14)), "20 - 6 = 14")
	queso, _ := f.ingRepo.GetByID("ing-queso")
	assert.True(t, queso.CurrentStock.Equal(decimal.NewFromInt(8)), "sin movimientos no cambia")
}

func TestClose_SaldoNegativoSeRecortaACero(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)
	_, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-queso", dto.AddMovementRequest{
		Type: entity.MovementTypeSale, Quantity: decimal.NewFromInt(-10), Reference: "sobreventa",
	})
	require.NoError(t, err)

	_, err = f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{})
	require.NoError(t, err)

	queso, _ := f.ingRepo.GetByID("ing-queso")
	assert.True(t, queso.CurrentStock.IsZero(),
		"el stock persistido nunca queda negativo, got %s", queso.CurrentStock)
}

func TestClose_EsIdempotente(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)
	_, err := f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{})
	require.NoError(t, err)
	closeCalls := f.invRepo.closeCalls

	// Segundo cierre: devuelve el registro tal cual, sin tocar la BD.
	resp, err := f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryStatusClosed, resp.Status)
	assert.Equal(t, closeCalls, f.invRepo.closeCalls,
		"un inventario ya cerrado no debe volver a conciliar")
}

func TestClose_FalloAlGuardarNoIntentaCerrar(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)
	f.invRepo.updateLinesErr = errors.New("db caída")

	_, err := f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{})
	require.Error(t, err)
	assert.Zero(t, f.invRepo.closeCalls, "si el guardado falla el cierre ni se intenta")

	after, _ := f.invRepo.GetByID(inv.ID)
	assert.Equal(t, entity.InventoryStatusOpen, after.Status)
}

func TestClose_FalloEnTransaccionDejaAbiertoYRevierte(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)
	_, err := f.uc.AddMovement(context.Background(), inv.ID, "ing-harina", dto.AddMovementRequest{
		Type: entity.MovementTypeSale, Quantity: decimal.NewFromInt(-6), Reference: "ventas",
	})
	require.NoError(t, err)
	f.invRepo.closeErr = errors.New("deadlock")

	_, err = f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{})
	require.Error(t, err)

	// El inventario sigue abierto con los renglones guardados y el stock de
	// los ingredientes sin tocar: el cierre puede reintentarse.
	after, _ := f.invRepo.GetByID(inv.ID)
	assert.Equal(t, entity.InventoryStatusOpen, after.Status)
	harina, _ := f.ingRepo.GetByID("ing-harina")
	assert.True(t, harina.CurrentStock.Equal(decimal.NewFromInt(20)))

	// Reintento sin el fallo: ahora sí cierra y concilia.
	f.invRepo.closeErr = nil
	resp, err := f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.InventoryStatusClosed, resp.Status)
	harina, _ = f.ingRepo.GetByID("ing-harina")
	assert.True(t, harina.CurrentStock.Equal(decimal.NewFromInt(14)))
}

func TestClose_IngredienteBorradoSeOmite(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)
	require.NoError(t, f.ingRepo.Delete("ing-queso"))

	_, err := f.uc.Close(context.Background(), inv.ID, dto.CloseInventoryRequest{})
	require.NoError(t, err, "un renglón huérfano no debe impedir el cierre")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrent_DevuelveElAbiertoDelDia(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)

	resp, err := f.uc.Current(context.Background(), "branch-1", "")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, resp.ID)
}

func TestCurrent_SinAbiertoRetornaNotFound(t *testing.T) {
	f := newInvFixture(t)
	_, err := f.uc.Current(context.Background(), "branch-1", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClosingPDF_GeneraDocumento(t *testing.T) {
	f := newInvFixture(t)
	inv := openToday(t, f)

	data, err := f.uc.ClosingPDF(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, 1, f.pdf.calls)
}
