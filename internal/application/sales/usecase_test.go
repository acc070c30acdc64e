package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/application/sales"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// Jueves y miércoles de referencia para el descuento del día.
var (
	unJueves    = time.Date(2026, 3, 12, 13, 0, 0, 0, time.UTC)
	unMiercoles = time.Date(2026, 3, 11, 13, 0, 0, 0, time.UTC)
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	byID map[string]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{byID: make(map[string]*entity.Sale)}
}

func (r *fakeSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.byID[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSaleRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.byID {
		if s.BranchID == branchID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) ListByBranchAndRange(branchID string, from, to time.Time) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.byID {
		if s.BranchID == branchID && !s.SaleDate.Before(from) && s.SaleDate.Before(to) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeSaleRepo) UpdateStatus(id, status string) error {
	s, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

type fakeBranchRepo struct{ byID map[string]*entity.Branch }

func newFakeBranchRepo(branches ...*entity.Branch) *fakeBranchRepo {
	r := &fakeBranchRepo{byID: make(map[string]*entity.Branch)}
	for _, b := range branches {
		r.byID[b.ID] = b
	}
	return r
}

func (r *fakeBranchRepo) Create(branch *entity.Branch) error          { return nil }
func (r *fakeBranchRepo) GetByID(id string) (*entity.Branch, error)   { return r.byID[id], nil }
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

type fakeProductRepo struct{ byID map[string]*entity.Product }

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{byID: make(map[string]*entity.Product)}
	for _, p := range products {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(product *entity.Product) error          { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)    { return r.byID[id], nil }
func (r *fakeProductRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) Update(product *entity.Product) error { return nil }
func (r *fakeProductRepo) UpdateRecipe(productID string, recipe []entity.RecipeItem) error {
	return nil
}
func (r *fakeProductRepo) Delete(id string) error { return nil }

type fakeReceipts struct{ calls int }

func (f *fakeReceipts) GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, branch *entity.Branch) ([]byte, error) {
	f.calls++
	return []byte("%PDF-1.4"), nil
}

func newSalesUseCase(t *testing.T, at time.Time) (*sales.UseCase, *fakeSaleRepo) {
	t.Helper()
	branch := &entity.Branch{ID: "branch-1", Name: "Sucursal Centro"}
	pizza := &entity.Product{ID: "prod-pizza", BranchID: "branch-1", Name: "Pizza Margarita", Price: dec("45")}
	soda := &entity.Product{ID: "prod-soda", BranchID: "branch-1", Name: "Refresco", Price: dec("10")}

	saleRepo := newFakeSaleRepo()
	uc := sales.NewUseCase(
		saleRepo,
		newFakeBranchRepo(branch),
		newFakeProductRepo(pizza, soda),
		&fakeReceipts{},
		logger.Nop(),
	)
	uc.Now = func() time.Time { return at }
	return uc, saleRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Quote — descuento del jueves y aritmética de totales
// ──────────────────────────────────────────────────────────────────────────────

func TestDiscountFor_SoloLosJueves(t *testing.T) {
	assert.True(t, sales.DiscountFor(unJueves).Equal(dec("4")))
	assert.True(t, sales.DiscountFor(unMiercoles).IsZero())
	// Recorremos la semana completa: solo el jueves descuenta.
	for d := 0; d < 7; d++ {
		day := unMiercoles.AddDate(0, 0, d)
		got := sales.DiscountFor(day)
		if day.Weekday() == time.Thursday {
			assert.True(t, got.Equal(dec("4")), "%s debe descontar 4%%", day.Weekday())
		} else {
			assert.True(t, got.IsZero(), "%s no debe descontar", day.Weekday())
		}
	}
}

func TestQuote_SinDescuentoEntreSemana(t *testing.T) {
	items := []dto.SaleItemDTO{
		{ProductID: "prod-pizza", Quantity: 2, Price: dec("45")},
		{ProductID: "prod-soda", Quantity: 3, Price: dec("10")},
	}
	q := sales.Quote(items, unMiercoles)

	assert.True(t, q.Subtotal.Equal(dec("120")), "2×45 + 3×10 = 120, got %s", q.Subtotal)
	assert.True(t, q.Discount.IsZero())
	assert.True(t, q.DiscountAmount.IsZero())
	assert.True(t, q.Total.Equal(dec("120")))
	assert.Empty(t, q.DiscountMessage)
}

func TestQuote_JuevesAplicaCuatroPorCiento(t *testing.T) {
	items := []dto.SaleItemDTO{
		{ProductID: "prod-pizza", Quantity: 2, Price: dec("45")},
		{ProductID: "prod-soda", Quantity: 3, Price: dec("10")},
	}
	q := sales.Quote(items, unJueves)

	assert.True(t, q.Subtotal.Equal(dec("120")))
	assert.True(t, q.Discount.Equal(dec("4")))
	assert.True(t, q.DiscountAmount.Equal(dec("4.8")), "4%% de 120 = 4.8, got %s", q.DiscountAmount)
	assert.True(t, q.Total.Equal(dec("115.2")))
	assert.NotEmpty(t, q.DiscountMessage)
}

func TestQuote_TotalRedondeadoADosDecimales(t *testing.T) {
	// 3 × 3.33 = 9.99; 4% = 0.3996; total 9.5904 → 9.59.
	items := []dto.SaleItemDTO{{ProductID: "p", Quantity: 3, Price: dec("3.33")}}
	q := sales.Quote(items, unJueves)

	assert.True(t, q.Subtotal.Equal(dec("9.99")))
	assert.True(t, q.DiscountAmount.Equal(dec("0.3996")),
		"el monto de descuento se reporta sin redondeo intermedio")
	assert.True(t, q.Total.Equal(dec("9.59")), "got %s", q.Total)
}

func TestQuote_CarritoDeReferencia(t *testing.T) {
	// Dos unidades a 10 y una a 5: 25.00 sin descuento, 24.00 los jueves.
	items := []dto.SaleItemDTO{
		{ProductID: "a", Quantity: 2, Price: dec("10")},
		{ProductID: "b", Quantity: 1, Price: dec("5")},
	}
	assert.True(t, sales.Quote(items, unMiercoles).Total.Equal(dec("25")))
	assert.True(t, sales.Quote(items, unJueves).Total.Equal(dec("24")))
}

func TestQuote_SinRenglonesEsCero(t *testing.T) {
	q := sales.Quote(nil, unJueves)
	assert.True(t, q.Subtotal.IsZero())
	assert.True(t, q.Total.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Register — consolidación y precios del catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ConsolidaRenglonesPorProducto(t *testing.T) {
	uc, _ := newSalesUseCase(t, unMiercoles)

	resp, err := uc.Register(context.Background(), dto.RegisterSaleRequest{
		BranchID:   "branch-1",
		ClientName: "Carlos Mamani",
		ClientCI:   "9876543",
		Items: []dto.SaleItemDTO{
			{ProductID: "prod-pizza", Quantity: 1},
			{ProductID: "prod-soda", Quantity: 2},
			{ProductID: "prod-pizza", Quantity: 1}, // repetido: se fusiona
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2, "renglones repetidos se consolidan por product_id")
	assert.Equal(t, entity.SaleStatusInProgress, resp.Status)
	assert.True(t, resp.Total.Equal(dec("110")), "2×45 + 2×10 = 110, got %s", resp.Total)
}

func TestRegister_IgnoraPrecioDelCliente(t *testing.T) {
	uc, _ := newSalesUseCase(t, unMiercoles)

	resp, err := uc.Register(context.Background(), dto.RegisterSaleRequest{
		BranchID:   "branch-1",
		ClientName: "Carlos",
		Items: []dto.SaleItemDTO{
			// El cliente manda precio 1; el servidor usa el del catálogo.
			{ProductID: "prod-pizza", Quantity: 1, Price: dec("1")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(dec("45")), "el precio sale del catálogo, got %s", resp.Total)
	assert.Equal(t, "Pizza Margarita", resp.Items[0].Name)
}

func TestRegister_JuevesGuardaElDescuento(t *testing.T) {
	uc, _ := newSalesUseCase(t, unJueves)

	resp, err := uc.Register(context.Background(), dto.RegisterSaleRequest{
		BranchID:   "branch-1",
		ClientName: "Ana",
		Items:      []dto.SaleItemDTO{{ProductID: "prod-pizza", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Discount.Equal(dec("4")))
	assert.True(t, resp.Total.Equal(dec("86.4")), "90 - 4%% = 86.4, got %s", resp.Total)
}

func TestRegister_ValidaEntrada(t *testing.T) {
	uc, _ := newSalesUseCase(t, unMiercoles)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterSaleRequest{BranchID: "branch-1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin cliente ni renglones")

	_, err = uc.Register(ctx, dto.RegisterSaleRequest{
		BranchID: "branch-1", ClientName: "X",
		Items: []dto.SaleItemDTO{{ProductID: "prod-pizza", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Register(ctx, dto.RegisterSaleRequest{
		BranchID: "branch-1", ClientName: "X",
		Items: []dto.SaleItemDTO{{ProductID: "prod-nope", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")
}

// ──────────────────────────────────────────────────────────────────────────────
// AdvanceStatus — máquina de estados de la venta
// ──────────────────────────────────────────────────────────────────────────────

func registerSale(t *testing.T, uc *sales.UseCase) *dto.SaleResponse {
	t.Helper()
	resp, err := uc.Register(context.Background(), dto.RegisterSaleRequest{
		BranchID:   "branch-1",
		ClientName: "Cliente",
		Items:      []dto.SaleItemDTO{{ProductID: "prod-pizza", Quantity: 1}},
	})
	require.NoError(t, err)
	return resp
}

func TestAdvanceStatus_InProgressAFinished(t *testing.T) {
	uc, _ := newSalesUseCase(t, unMiercoles)
	sale := registerSale(t, uc)

	resp, err := uc.AdvanceStatus(context.Background(), sale.ID, entity.SaleStatusFinished)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusFinished, resp.Status)
}

func TestAdvanceStatus_InProgressACancelled(t *testing.T) {
	uc, _ := newSalesUseCase(t, unMiercoles)
	sale := registerSale(t, uc)

	resp, err := uc.AdvanceStatus(context.Background(), sale.ID, entity.SaleStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, resp.Status)
}

func TestAdvanceStatus_EstadosTerminalesNoTransicionan(t *testing.T) {
	uc, repo := newSalesUseCase(t, unMiercoles)
	sale := registerSale(t, uc)
	_, err := uc.AdvanceStatus(context.Background(), sale.ID, entity.SaleStatusFinished)
	require.NoError(t, err)

	// finished → cancelled no existe.
	_, err = uc.AdvanceStatus(context.Background(), sale.ID, entity.SaleStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// El estado persistido no cambió.
	persisted, _ := repo.GetByID(sale.ID)
	assert.Equal(t, entity.SaleStatusFinished, persisted.Status)
}

func TestAdvanceStatus_DestinoDesconocidoFalla(t *testing.T) {
	uc, _ := newSalesUseCase(t, unMiercoles)
	sale := registerSale(t, uc)

	_, err := uc.AdvanceStatus(context.Background(), sale.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados por rango
// ──────────────────────────────────────────────────────────────────────────────

func TestListByRange_RangoSemiAbierto(t *testing.T) {
	uc, repo := newSalesUseCase(t, unMiercoles)
	registerSale(t, uc)

	from := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	ventas, err := uc.ListByRange(context.Background(), "branch-1", "", from, to)
	require.NoError(t, err)
	assert.Len(t, ventas, 1)

	// [from, to): una venta exactamente en `to` queda fuera.
	boundary := &entity.Sale{
		ID: "sale-boundary", BranchID: "branch-1", SaleDate: to,
		Status: entity.SaleStatusFinished,
	}
	require.NoError(t, repo.Create(boundary))
	ventas, err = uc.ListByRange(context.Background(), "branch-1", "", from, to)
	require.NoError(t, err)
	assert.Len(t, ventas, 1, "la venta en el límite superior no debe entrar")
}
