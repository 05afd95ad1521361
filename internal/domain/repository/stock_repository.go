package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar stock por bodega+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE): dos ajustes
	// concurrentes sobre el mismo (producto, bodega) jamás leen el mismo saldo.
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	ListByProduct(productID string) ([]*entity.Stock, error)
}
