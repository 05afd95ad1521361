package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// EmployeeListParams filtros para listados de empleados.
type EmployeeListParams struct {
	Search     string
	Department string
	Status     string
	Limit      int
	Offset     int
}

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByCompanyAndDocument(companyID, document string) (*entity.Employee, error)
	Update(employee *entity.Employee) error
	ListByCompany(companyID string, params EmployeeListParams) ([]*entity.Employee, int, error)
	Delete(id string) error
}
