package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// VehicleUseCase casos de uso CRUD para la flota de vehículos.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create registra un vehículo disponible.
func (uc *VehicleUseCase) Create(companyID string, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if in.CapacityKg.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		Plate:      in.Plate,
		Brand:      in.Brand,
		Model:      in.Model,
		CapacityKg: in.CapacityKg,
		Status:     entity.VehicleStatusAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// GetByID obtiene un vehículo de la empresa por ID.
func (uc *VehicleUseCase) GetByID(companyID, id string) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toVehicleResponse(vehicle), nil
}

// Update actualiza un vehículo (la placa es inmutable).
func (uc *VehicleUseCase) Update(companyID, id string, in dto.UpdateVehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if in.Brand != nil {
		vehicle.Brand = *in.Brand
	}
	if in.Model != nil {
		vehicle.Model = *in.Model
	}
	if in.CapacityKg != nil {
		if in.CapacityKg.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		vehicle.CapacityKg = *in.CapacityKg
	}
	if in.Status != nil {
		vehicle.Status = *in.Status
	}
	vehicle.UpdatedAt = time.Now()
	if err := uc.repo.Update(vehicle); err != nil {
		return nil, err
	}
	return toVehicleResponse(vehicle), nil
}

// List lista vehículos de la empresa, opcionalmente por estado.
func (uc *VehicleUseCase) List(companyID, status string, limit, offset int) ([]dto.VehicleResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	list, err := uc.repo.ListByCompany(companyID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VehicleResponse, 0, len(list))
	for _, v := range list {
		items = append(items, *toVehicleResponse(v))
	}
	return items, nil
}

// Delete elimina un vehículo de la empresa.
func (uc *VehicleUseCase) Delete(companyID, id string) error {
	vehicle, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if vehicle == nil || vehicle.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toVehicleResponse(v *entity.Vehicle) *dto.VehicleResponse {
	if v == nil {
		return nil
	}
	return &dto.VehicleResponse{
		ID:         v.ID,
		CompanyID:  v.CompanyID,
		Plate:      v.Plate,
		Brand:      v.Brand,
		Model:      v.Model,
		CapacityKg: v.CapacityKg,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}
