package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TransferStockUseCase crea traslados entre bodegas: dos movimientos por ítem
// (salida en origen, entrada en destino) más el documento numerado, todo en
// una sola transacción. O confirma todo o no escribe nada.
type TransferStockUseCase struct {
	txRunner      TransferTxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	transferRepo  repository.StockTransferRepository
}

// NewTransferStockUseCase construye el caso de uso.
func NewTransferStockUseCase(
	txRunner TransferTxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	transferRepo repository.StockTransferRepository,
) *TransferStockUseCase {
	return &TransferStockUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		transferRepo:  transferRepo,
	}
}

// scopeKey identifica una fila de stock (bodega, producto) a bloquear.
type scopeKey struct {
	warehouseID string
	productID   string
}

// Create valida el traslado completo antes de escribir: si algún ítem no tiene
// saldo suficiente en la bodega origen, el traslado entero se rechaza con un
// error que nombra el producto ofensor y no queda ningún movimiento escrito.
func (uc *TransferStockUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateTransferRequest) (*dto.TransferResponse, error) {
	if in.SourceWarehouseID == in.TargetWarehouseID || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	source, err := uc.warehouseRepo.GetByID(in.SourceWarehouseID)
	if err != nil {
		return nil, err
	}
	target, err := uc.warehouseRepo.GetByID(in.TargetWarehouseID)
	if err != nil {
		return nil, err
	}
	if source == nil || target == nil || source.CompanyID != companyID || target.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	// Cargar productos y rechazar ítems duplicados
	products := make(map[string]*entity.Product, len(in.Items))
	for _, item := range in.Items {
		if _, dup := products[item.ProductID]; dup {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
		products[item.ProductID] = p
	}

	now := time.Now()
	transfer := &entity.StockTransfer{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SourceWarehouseID: in.SourceWarehouseID,
		TargetWarehouseID: in.TargetWarehouseID,
		Status:            entity.TransferStatusCompleted,
		Responsible:       in.Responsible,
		Reason:            in.Reason,
		Date:              now,
		CreatedAt:         now,
	}
	for _, item := range in.Items {
		transfer.Items = append(transfer.Items, entity.StockTransferItem{
			ID:         uuid.New().String(),
			TransferID: transfer.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
		})
	}

	err = uc.txRunner.RunTransfer(ctx, func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.StockTransferRepository,
		seqRepo repository.SequenceRepository,
	) error {
		// Bloquear todas las filas de stock involucradas en orden determinista
		// (bodega, producto) para evitar deadlocks entre traslados cruzados.
		keys := make([]scopeKey, 0, len(in.Items)*2)
		for _, item := range in.Items {
			keys = append(keys, scopeKey{in.SourceWarehouseID, item.ProductID})
			keys = append(keys, scopeKey{in.TargetWarehouseID, item.ProductID})
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].warehouseID != keys[j].warehouseID {
				return keys[i].warehouseID < keys[j].warehouseID
			}
			return keys[i].productID < keys[j].productID
		})
		locked := make(map[scopeKey]*entity.Stock, len(keys))
		for _, k := range keys {
			stock, err := stockRepo.GetForUpdate(k.productID, k.warehouseID)
			if err != nil {
				return err
			}
			locked[k] = stock
		}

		// Verificar disponibilidad de TODOS los ítems antes de escribir nada
		for _, item := range in.Items {
			src := locked[scopeKey{in.SourceWarehouseID, item.ProductID}]
			if src.Quantity.LessThan(item.Quantity) {
				p := products[item.ProductID]
				return &domain.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Available:   src.Quantity,
					Requested:   item.Quantity,
				}
			}
		}

		// Numerar el documento: GT-<año>-<seq> por empresa y año
		year := now.Year()
		seq, err := seqRepo.Next(companyID, repository.SequenceKindTransfer, year)
		if err != nil {
			return err
		}
		transfer.Number = FormatTransferNumber(year, seq)

		if err := transferRepo.Create(transfer); err != nil {
			return err
		}

		for _, item := range in.Items {
			src := locked[scopeKey{in.SourceWarehouseID, item.ProductID}]
			dst := locked[scopeKey{in.TargetWarehouseID, item.ProductID}]

			srcBefore := src.Quantity
			dstBefore := dst.Quantity
			src.Quantity = srcBefore.Sub(item.Quantity)
			dst.Quantity = dstBefore.Add(item.Quantity)
			src.UpdatedAt = now
			dst.UpdatedAt = now
			if err := stockRepo.Upsert(src); err != nil {
				return err
			}
			if err := stockRepo.Upsert(dst); err != nil {
				return err
			}

			// El saldo global del producto no cambia: las dos patas se cancelan.
			out := &entity.StockMovement{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				ProductID:     item.ProductID,
				WarehouseID:   in.SourceWarehouseID,
				Type:          entity.MovementTypeTransfer,
				Quantity:      item.Quantity.Neg(),
				BalanceBefore: srcBefore,
				BalanceAfter:  src.Quantity,
				Reason:        in.Reason,
				Reference:     transfer.ID,
				PerformedBy:   userID,
				CreatedAt:     now,
			}
			if err := movRepo.Create(out); err != nil {
				return err
			}
			inMov := &entity.StockMovement{
				ID:            uuid.New().String(),
				CompanyID:     companyID,
				ProductID:     item.ProductID,
				WarehouseID:   in.TargetWarehouseID,
				Type:          entity.MovementTypeTransfer,
				Quantity:      item.Quantity,
				BalanceBefore: dstBefore,
				BalanceAfter:  dst.Quantity,
				Reason:        in.Reason,
				Reference:     transfer.ID,
				PerformedBy:   userID,
				CreatedAt:     now,
			}
			if err := movRepo.Create(inMov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toTransferResponse(transfer), nil
}

// GetByID devuelve un traslado de la empresa.
func (uc *TransferStockUseCase) GetByID(companyID, id string) (*dto.TransferResponse, error) {
	transfer, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if transfer == nil || transfer.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toTransferResponse(transfer), nil
}

// List lista los traslados de la empresa, más recientes primero.
func (uc *TransferStockUseCase) List(companyID string, limit, offset int) (*dto.TransferListResponse, error) {
	list, err := uc.transferRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(list))
	for _, tr := range list {
		items = append(items, *toTransferResponse(tr))
	}
	return &dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// FormatTransferNumber arma el consecutivo legible GT-<año>-<seq>.
func FormatTransferNumber(year, seq int) string {
	return fmt.Sprintf("GT-%d-%05d", year, seq)
}

func toTransferResponse(tr *entity.StockTransfer) *dto.TransferResponse {
	items := make([]dto.TransferItemResponse, 0, len(tr.Items))
	for _, it := range tr.Items {
		items = append(items, dto.TransferItemResponse{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return &dto.TransferResponse{
		ID:                tr.ID,
		Number:            tr.Number,
		SourceWarehouseID: tr.SourceWarehouseID,
		TargetWarehouseID: tr.TargetWarehouseID,
		Status:            tr.Status,
		Responsible:       tr.Responsible,
		Reason:            tr.Reason,
		Date:              tr.Date,
		Items:             items,
	}
}
