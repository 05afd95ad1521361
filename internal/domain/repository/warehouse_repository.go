package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// WarehouseListParams filtros para listados de bodegas.
type WarehouseListParams struct {
	Search string
	Status string // active, inactive, vacío = todas
	Limit  int
	Offset int
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	ListByCompany(companyID string, params WarehouseListParams) ([]*entity.Warehouse, int, error)
	Delete(id string) error
}
