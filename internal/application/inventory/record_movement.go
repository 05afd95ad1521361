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

// RecordMovementUseCase registra movimientos de negocio con tipo fijo
// (compra, venta, devoluciones, pérdida, vencimiento). Todos pasan por la
// misma contabilidad balance-before/after y la misma serialización por fila
// que los ajustes manuales.
type RecordMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Record valida y registra el movimiento. Reglas:
//   - Quantity siempre se recibe positiva; el signo lo fija el tipo.
//   - purchase exige unit_cost >= 0 y recalcula el costo promedio ponderado.
//   - Las salidas (sale, return_out, loss, expired) rechazan si exceden el saldo.
func (uc *RecordMovementUseCase) Record(ctx context.Context, companyID, userID string, in dto.RecordMovementRequest) (*dto.StockMovementResponse, error) {
	direction := ledger.Direction(in.Type)
	if direction == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.MovementTypePurchase && (in.UnitCost == nil || in.UnitCost.LessThan(decimal.Zero)) {
		return nil, domain.ErrInvalidInput
	}
	if in.Reference == "" {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
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

	operation := ledger.OperationAdd
	if direction < 0 {
		operation = ledger.OperationSubtract
	}

	now := time.Now()
	var movement *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		var before, after, delta decimal.Decimal
		var globalBefore, currentCost decimal.Decimal

		if in.WarehouseID != "" {
			stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
			if err != nil {
				return err
			}
			before = stock.Quantity
			after, delta, err = ledger.Apply(operation, before, in.Quantity)
			if err != nil {
				return err
			}
			if in.Type == entity.MovementTypePurchase {
				// El costo promedio pondera sobre el saldo global del producto,
				// no sobre el saldo de la bodega. Se bloquea la fila del
				// producto para leer saldo y costo vigentes.
				locked, err := productRepo.GetForUpdate(in.ProductID)
				if err != nil {
					return err
				}
				if locked == nil {
					return domain.ErrNotFound
				}
				globalBefore = locked.CurrentStock
				currentCost = locked.Cost
			}
			stock.Quantity = after
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}
			if err := productRepo.AddToCurrentStock(in.ProductID, delta); err != nil {
				return err
			}
		} else {
			locked, err := productRepo.GetForUpdate(in.ProductID)
			if err != nil {
				return err
			}
			if locked == nil {
				return domain.ErrNotFound
			}
			before = locked.CurrentStock
			after, delta, err = ledger.Apply(operation, before, in.Quantity)
			if err != nil {
				return err
			}
			if err := productRepo.SetCurrentStock(in.ProductID, after); err != nil {
				return err
			}
			globalBefore = before
			currentCost = locked.Cost
		}

		// En compras el costo promedio ponderado se recalcula dentro de la misma tx
		if in.Type == entity.MovementTypePurchase {
			newCost := ledger.CostCalculator(globalBefore, currentCost, in.Quantity, *in.UnitCost)
			if err := productRepo.UpdateCost(in.ProductID, newCost); err != nil {
				return err
			}
		}

		movement = &entity.StockMovement{
			ID:            uuid.New().String(),
			CompanyID:     companyID,
			ProductID:     in.ProductID,
			WarehouseID:   in.WarehouseID,
			Type:          in.Type,
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

	resp := ToMovementResponse(movement)
	return &resp, nil
}
