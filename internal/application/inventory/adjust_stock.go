package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/ledger"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// AdjustStockUseCase aplica ajustes manuales al libro de inventario
// (add/subtract/set) de forma transaccional, con bloqueo de fila
// (SELECT FOR UPDATE) sobre el alcance ajustado y Commit/Rollback.
type AdjustStockUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Adjust valida la entrada, bloquea el alcance (fila de stock por bodega, o la
// fila del producto para el alcance global), calcula el nuevo saldo con
// ledger.Apply y registra movimiento + saldo en la misma transacción.
//
// Política ante stock insuficiente en subtract: rechazar (409), nunca truncar.
// El saldo leído por un ajuste concurrente siempre refleja el commit anterior.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, companyID, userID, productID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if !ledger.IsOperation(in.Operation) || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	// Validar que producto y bodega existan y sean de la empresa
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.WarehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh == nil || wh.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	var movement *entity.StockMovement
	var newGlobalStock decimal.Decimal

	// Inicia transacción; Commit si todo ok, Rollback si algo falla
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		var before, after, delta decimal.Decimal

		if in.WarehouseID != "" {
			// Alcance bodega: bloquea la fila de stock (SELECT FOR UPDATE)
			stock, err := stockRepo.GetForUpdate(productID, in.WarehouseID)
			if err != nil {
				return err
			}
			before = stock.Quantity
			after, delta, err = ledger.Apply(in.Operation, before, in.Quantity)
			if err != nil {
				return err
			}
			stock.Quantity = after
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			// El saldo global denormalizado se mueve por el mismo delta
			if err := productRepo.AddToCurrentStock(productID, delta); err != nil {
				return err
			}
			// Releer dentro de la tx: la lectura previa es anterior al inicio
			// de la transacción y puede acarrear commits intermedios.
			fresh, err := productRepo.GetByID(productID)
			if err != nil {
				return err
			}
			if fresh == nil {
				return domain.ErrNotFound
			}
			newGlobalStock = fresh.CurrentStock
		} else {
			// Alcance global: bloquea la fila del producto
			locked, err := productRepo.GetForUpdate(productID)
			if err != nil {
				return err
			}
			if locked == nil {
				return domain.ErrNotFound
			}
			before = locked.CurrentStock
			after, delta, err = ledger.Apply(in.Operation, before, in.Quantity)
			if err != nil {
				return err
			}
			if err := productRepo.SetCurrentStock(productID, after); err != nil {
				return err
			}
			newGlobalStock = after
		}

		movement = &entity.StockMovement{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			ProductID:     productID,
			WarehouseID:   in.WarehouseID,
			Type:          entity.MovementTypeAdjustment,
			Quantity:      delta,
			BalanceBefore: before,
			BalanceAfter:  after,
			Reason:        in.Reason,
			Reference:     in.Reference,
			PerformedBy:   userID,
			CreatedAt:     now,
		}
		return movRepo.Create(movement)
	})
	if err != nil {
		return nil, err
	}

	product.CurrentStock = newGlobalStock
	product.UpdatedAt = now
	return &dto.AdjustStockResponse{
		Product:  ToProductResponse(product),
		Movement: ToMovementResponse(movement),
	}, nil
}

// ToProductResponse mapea la entidad a su DTO de salida.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:           p.ID,
		CompanyID:    p.CompanyID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		UnitMeasure:  p.UnitMeasure,
		Price:        p.Price,
		Cost:         p.Cost,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento a su DTO de salida.
func ToMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		WarehouseID:   m.WarehouseID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		Reason:        m.Reason,
		Reference:     m.Reference,
		PerformedBy:   m.PerformedBy,
		CreatedAt:     m.CreatedAt,
	}
}
