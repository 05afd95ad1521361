package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// DriverRepository define el puerto de persistencia para Driver (DIP).
type DriverRepository interface {
	Create(driver *entity.Driver) error
	GetByID(id string) (*entity.Driver, error)
	Update(driver *entity.Driver) error
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Driver, error)
	Delete(id string) error
}
