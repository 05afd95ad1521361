package inventory

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para el motor de inventario: la inserción
// del movimiento y la actualización del saldo confirman o fallan juntas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// TransferTxRunner extiende TxRunner con los repos de traslados y secuencias
// (para CreateTransfer, que además numera el documento dentro de la misma tx).
type TransferTxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		transferRepo repository.StockTransferRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
