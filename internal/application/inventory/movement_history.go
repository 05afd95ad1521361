package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// MovementHistoryUseCase consultas de sólo lectura sobre el libro de
// movimientos y las existencias por bodega. Sin efectos secundarios.
type MovementHistoryUseCase struct {
	movRepo     repository.StockMovementRepository
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewMovementHistoryUseCase construye el caso de uso.
func NewMovementHistoryUseCase(
	movRepo repository.StockMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) *MovementHistoryUseCase {
	return &MovementHistoryUseCase{movRepo: movRepo, stockRepo: stockRepo, productRepo: productRepo}
}

// History devuelve el historial paginado de un producto, siempre más
// recientes primero (created_at DESC). El orden es parte del contrato.
func (uc *MovementHistoryUseCase) History(ctx context.Context, companyID, productID string, in dto.MovementHistoryQuery) (*dto.MovementHistoryResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Type != "" && !entity.IsMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}

	filters := repository.MovementFilters{
		Type:        in.Type,
		WarehouseID: in.WarehouseID,
	}
	if in.StartDate != "" {
		from, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filters.From = &from
	}
	if in.EndDate != "" {
		to, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		// Inclusivo hasta fin de día
		to = to.Add(24*time.Hour - time.Nanosecond)
		filters.To = &to
	}

	in.DefaultPage()
	list, total, err := uc.movRepo.ListByProduct(productID, filters, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return &dto.MovementHistoryResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Stock devuelve el desglose de existencias por bodega más el saldo global.
func (uc *MovementHistoryUseCase) Stock(ctx context.Context, companyID, productID string) (*dto.ProductStockResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	stocks, err := uc.stockRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	warehouses := make([]dto.WarehouseStockDTO, 0, len(stocks))
	for _, s := range stocks {
		warehouses = append(warehouses, dto.WarehouseStockDTO{
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
			UpdatedAt:   s.UpdatedAt,
		})
	}
	return &dto.ProductStockResponse{
		ProductID:    product.ID,
		CurrentStock: product.CurrentStock,
		Warehouses:   warehouses,
	}, nil
}
