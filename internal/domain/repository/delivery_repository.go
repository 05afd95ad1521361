package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// DeliveryListParams filtros para listados de entregas.
type DeliveryListParams struct {
	Status    string
	VehicleID string
	DriverID  string
	Limit     int
	Offset    int
}

// DeliveryRepository define el puerto de persistencia para Delivery y sus paquetes.
type DeliveryRepository interface {
	// Create persiste la entrega con sus paquetes.
	Create(delivery *entity.Delivery) error
	GetByID(id string) (*entity.Delivery, error)
	Update(delivery *entity.Delivery) error
	ListByCompany(companyID string, params DeliveryListParams) ([]*entity.Delivery, error)
}
