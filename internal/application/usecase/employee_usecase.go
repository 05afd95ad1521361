package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/textutil"
)

// EmployeeUseCase casos de uso CRUD para empleados (módulo de talento humano).
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// Create registra un empleado. Rechaza documento duplicado dentro de la empresa.
func (uc *EmployeeUseCase) Create(companyID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	existing, _ := uc.repo.GetByCompanyAndDocument(companyID, in.Document)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Salary.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Document:   in.Document,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Position:   in.Position,
		Department: in.Department,
		Salary:     in.Salary,
		HiredAt:    in.HiredAt,
		Status:     entity.EmployeeStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un empleado de la empresa por ID.
func (uc *EmployeeUseCase) GetByID(companyID, id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(employee), nil
}

// Update actualiza un empleado (el documento es inmutable).
func (uc *EmployeeUseCase) Update(companyID, id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil || employee.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		employee.Name = *in.Name
	}
	if in.Email != nil {
		employee.Email = *in.Email
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if in.Position != nil {
		employee.Position = *in.Position
	}
	if in.Department != nil {
		employee.Department = *in.Department
	}
	if in.Salary != nil {
		if in.Salary.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		employee.Salary = *in.Salary
	}
	if in.Status != nil {
		employee.Status = *in.Status
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List lista empleados de la empresa con búsqueda y filtros.
func (uc *EmployeeUseCase) List(companyID string, q dto.EmployeeListQuery) (*dto.EmployeeListResponse, error) {
	q.DefaultPage()
	list, total, err := uc.repo.ListByCompany(companyID, repository.EmployeeListParams{
		Search:     textutil.Normalize(q.Search),
		Department: q.Department,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset, Total: total},
	}, nil
}

// Delete elimina un empleado de la empresa.
func (uc *EmployeeUseCase) Delete(companyID, id string) error {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if employee == nil || employee.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		Document:   e.Document,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
		Department: e.Department,
		Salary:     e.Salary,
		HiredAt:    e.HiredAt,
		Status:     e.Status,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
