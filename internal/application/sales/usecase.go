package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// UseCase maneja ventas: cotización con descuento del día, registro,
// transición de estado validada y comprobante PDF.
type UseCase struct {
	saleRepo    repository.SaleRepository
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	receipts    ReceiptPDFGenerator
	log         *logger.Logger

	// Now permite fijar el reloj en tests; nil usa time.Now.
	Now func() time.Time
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	saleRepo repository.SaleRepository,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	receipts ReceiptPDFGenerator,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		saleRepo:    saleRepo,
		branchRepo:  branchRepo,
		productRepo: productRepo,
		receipts:    receipts,
		log:         log,
	}
}

func (uc *UseCase) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func (uc *UseCase) resolveBranch(branchID, branchName string) (*entity.Branch, error) {
	if branchID != "" {
		return uc.branchRepo.GetByID(branchID)
	}
	if branchName != "" {
		return uc.branchRepo.GetByName(branchName)
	}
	return nil, domain.ErrInvalidInput
}

// QuoteNow cotiza los renglones con el descuento vigente en este momento.
func (uc *UseCase) QuoteNow(items []dto.SaleItemDTO) dto.QuoteResponse {
	return Quote(items, uc.now())
}

// Register registra una venta: resuelve sucursal y productos, consolida
// renglones por product_id, recalcula totales en el servidor con el descuento
// del día y persiste con estado inProgress.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	if in.ClientName == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	branch, err := uc.resolveBranch(in.BranchID, in.BranchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}

	// Consolidar por product_id y tomar precio/nombre del catálogo, nunca del
	// cliente.
	merged := make([]entity.SaleItem, 0, len(in.Items))
	index := make(map[string]int, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if pos, ok := index[it.ProductID]; ok {
			merged[pos].Quantity += it.Quantity
			continue
		}
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.BranchID != branch.ID {
			return nil, domain.ErrNotFound
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, entity.SaleItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  it.Quantity,
			Price:     product.Price,
		})
	}

	now := uc.now()
	quoteItems := make([]dto.SaleItemDTO, 0, len(merged))
	for _, it := range merged {
		quoteItems = append(quoteItems, dto.SaleItemDTO{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	quote := Quote(quoteItems, now)

	sale := &entity.Sale{
		ID:         uuid.New().String(),
		BranchID:   branch.ID,
		ClientName: in.ClientName,
		ClientCI:   in.ClientCI,
		Items:      merged,
		Discount:   quote.Discount,
		Total:      quote.Total,
		SaleDate:   now,
		Status:     entity.SaleStatusInProgress,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// AdvanceStatus cambia el estado de la venta validando la transición:
// inProgress → finished o cancelled; finished y cancelled son terminales.
func (uc *UseCase) AdvanceStatus(ctx context.Context, saleID, next string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if !sale.CanTransition(next) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.saleRepo.UpdateStatus(sale.ID, next); err != nil {
		return nil, err
	}
	sale.Status = next
	return toSaleResponse(sale), nil
}

// GetByID devuelve una venta.
func (uc *UseCase) GetByID(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListByBranch lista las ventas de la sucursal, más recientes primero.
func (uc *UseCase) ListByBranch(ctx context.Context, branchID, branchName string, page dto.PageRequest) ([]*dto.SaleResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	ventas, err := uc.saleRepo.ListByBranch(branch.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(ventas))
	for _, s := range ventas {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// ListByRange lista las ventas de la sucursal cuyo SaleDate cae en [from, to).
func (uc *UseCase) ListByRange(ctx context.Context, branchID, branchName string, from, to time.Time) ([]*dto.SaleResponse, error) {
	branch, err := uc.resolveBranch(branchID, branchName)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	ventas, err := uc.saleRepo.ListByBranchAndRange(branch.ID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(ventas))
	for _, s := range ventas {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// ReceiptPDF genera el comprobante imprimible de la venta.
func (uc *UseCase) ReceiptPDF(ctx context.Context, saleID string) ([]byte, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	branch, err := uc.branchRepo.GetByID(sale.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceiptPDF(ctx, sale, branch)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:         s.ID,
		BranchID:   s.BranchID,
		ClientName: s.ClientName,
		ClientCI:   s.ClientCI,
		Discount:   s.Discount,
		Total:      s.Total,
		SaleDate:   s.SaleDate,
		Status:     s.Status,
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}
	return resp
}
