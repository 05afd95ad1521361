package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// VehicleRepository define el puerto de persistencia para Vehicle (DIP).
type VehicleRepository interface {
	Create(vehicle *entity.Vehicle) error
	GetByID(id string) (*entity.Vehicle, error)
	Update(vehicle *entity.Vehicle) error
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Vehicle, error)
	Delete(id string) error
}
