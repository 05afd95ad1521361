package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// DriverUseCase casos de uso CRUD para conductores.
type DriverUseCase struct {
	repo repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(repo repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{repo: repo}
}

// Create registra un conductor activo.
func (uc *DriverUseCase) Create(companyID string, in dto.CreateDriverRequest) (*dto.DriverResponse, error) {
	now := time.Now()
	driver := &entity.Driver{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Document:  in.Document,
		License:   in.License,
		Phone:     in.Phone,
		Status:    entity.DriverStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// GetByID obtiene un conductor de la empresa por ID.
func (uc *DriverUseCase) GetByID(companyID, id string) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil || driver.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toDriverResponse(driver), nil
}

// Update actualiza un conductor (el documento es inmutable).
func (uc *DriverUseCase) Update(companyID, id string, in dto.UpdateDriverRequest) (*dto.DriverResponse, error) {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if driver == nil || driver.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		driver.Name = *in.Name
	}
	if in.License != nil {
		driver.License = *in.License
	}
	if in.Phone != nil {
		driver.Phone = *in.Phone
	}
	if in.Status != nil {
		driver.Status = *in.Status
	}
	driver.UpdatedAt = time.Now()
	if err := uc.repo.Update(driver); err != nil {
		return nil, err
	}
	return toDriverResponse(driver), nil
}

// List lista conductores de la empresa, opcionalmente por estado.
func (uc *DriverUseCase) List(companyID, status string, limit, offset int) ([]dto.DriverResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.repo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DriverResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDriverResponse(d))
	}
	return items, nil
}

// Delete elimina un conductor de la empresa.
func (uc *DriverUseCase) Delete(companyID, id string) error {
	driver, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if driver == nil || driver.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toDriverResponse(d *entity.Driver) *dto.DriverResponse {
	if d == nil {
		return nil
	}
	return &dto.DriverResponse{
		ID:        d.ID,
		CompanyID: d.CompanyID,
		Name:      d.Name,
		Document:  d.Document,
		License:   d.License,
		Phone:     d.Phone,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
