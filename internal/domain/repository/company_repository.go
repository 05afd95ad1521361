package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByNIT(nit string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	// Módulos SaaS activados por empresa (configuración de la empresa).
	ListModules(companyID string) ([]*entity.CompanyModule, error)
	SetModule(module *entity.CompanyModule) error
}
