package repository

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// MovementFilters filtros para el historial de movimientos de un producto.
type MovementFilters struct {
	Type        string // vacío = todos
	WarehouseID string // vacío = todos los alcances
	From        *time.Time
	To          *time.Time
}

// StockMovementRepository define el puerto de persistencia para el libro de
// movimientos. Sólo inserta y consulta: los movimientos son inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// ListByProduct devuelve los movimientos del producto más recientes primero
	// (orden estable por created_at DESC, id DESC).
	ListByProduct(productID string, filters MovementFilters, limit, offset int) ([]*entity.StockMovement, int, error)
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
