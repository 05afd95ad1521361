package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// StockTransferRepository define el puerto de persistencia para traslados.
type StockTransferRepository interface {
	// Create persiste el traslado con sus ítems (misma transacción que los movimientos).
	Create(transfer *entity.StockTransfer) error
	GetByID(id string) (*entity.StockTransfer, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error)
}
