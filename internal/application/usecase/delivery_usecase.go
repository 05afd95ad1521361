package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// DeliveryUseCase casos de uso de entregas: programación con numeración
// EN-<año>-<seq>, transiciones de estado y sincronización del estado de
// vehículo y conductor.
type DeliveryUseCase struct {
	repo          repository.DeliveryRepository
	vehicleRepo   repository.VehicleRepository
	driverRepo    repository.DriverRepository
	warehouseRepo repository.WarehouseRepository
	seqRepo       repository.SequenceRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(
	repo repository.DeliveryRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	warehouseRepo repository.WarehouseRepository,
	seqRepo repository.SequenceRepository,
) *DeliveryUseCase {
	return &DeliveryUseCase{
		repo:          repo,
		vehicleRepo:   vehicleRepo,
		driverRepo:    driverRepo,
		warehouseRepo: warehouseRepo,
		seqRepo:       seqRepo,
	}
}

// Create programa una entrega en estado pending. Exige vehículo disponible,
// conductor activo y bodega origen de la misma empresa.
func (uc *DeliveryUseCase) Create(companyID string, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if len(in.Parcels) == 0 {
		return nil, domain.ErrInvalidInput
	}
	vehicle, err := uc.vehicleRepo.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil || vehicle.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if vehicle.Status != entity.VehicleStatusAvailable {
		return nil, domain.ErrConflict // vehículo no disponible
	}
	driver, err := uc.driverRepo.GetByID(in.DriverID)
	if err != nil {
		return nil, err
	}
	if driver == nil || driver.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if driver.Status != entity.DriverStatusActive {
		return nil, domain.ErrConflict // conductor no disponible
	}
	origin, err := uc.warehouseRepo.GetByID(in.OriginWarehouseID)
	if err != nil {
		return nil, err
	}
	if origin == nil || origin.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	year := now.Year()
	seq, err := uc.seqRepo.Next(companyID, repository.SequenceKindDelivery, year)
	if err != nil {
		return nil, err
	}
	delivery := &entity.Delivery{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		Number:             FormatDeliveryNumber(year, seq),
		VehicleID:          in.VehicleID,
		DriverID:           in.DriverID,
		OriginWarehouseID:  in.OriginWarehouseID,
		DestinationAddress: in.DestinationAddress,
		Status:             entity.DeliveryStatusPending,
		ScheduledDate:      in.ScheduledDate,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, p := range in.Parcels {
		delivery.Parcels = append(delivery.Parcels, entity.Parcel{
			ID:          uuid.New().String(),
			DeliveryID:  delivery.ID,
			Code:        p.Code,
			Description: p.Description,
			WeightKg:    p.WeightKg,
			Recipient:   p.Recipient,
			Status:      entity.DeliveryStatusPending,
		})
	}
	if err := uc.repo.Create(delivery); err != nil {
		return nil, err
	}
	return toDeliveryResponse(delivery), nil
}

// UpdateStatus aplica una transición de estado. Transiciones fuera del grafo
// pending -> in_transit -> delivered|failed (cancelled sólo desde pending)
// devuelven ErrInvalidTransition. Vehículo y conductor siguen el ciclo:
// in_transit los marca en ruta, los estados terminales los liberan.
func (uc *DeliveryUseCase) UpdateStatus(companyID, id string, in dto.UpdateDeliveryStatusRequest) (*dto.DeliveryResponse, error) {
	delivery, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil || delivery.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidDeliveryTransition(delivery.Status, in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	delivery.Status = in.Status
	if in.Notes != "" {
		delivery.Notes = in.Notes
	}
	if in.Status == entity.DeliveryStatusDelivered {
		delivery.DeliveredAt = &now
	}
	for i := range delivery.Parcels {
		delivery.Parcels[i].Status = in.Status
	}
	delivery.UpdatedAt = now
	if err := uc.repo.Update(delivery); err != nil {
		return nil, err
	}

	switch in.Status {
	case entity.DeliveryStatusInTransit:
		uc.setVehicleStatus(delivery.VehicleID, entity.VehicleStatusInRoute)
		uc.setDriverStatus(delivery.DriverID, entity.DriverStatusInRoute)
	case entity.DeliveryStatusDelivered, entity.DeliveryStatusFailed, entity.DeliveryStatusCancelled:
		uc.setVehicleStatus(delivery.VehicleID, entity.VehicleStatusAvailable)
		uc.setDriverStatus(delivery.DriverID, entity.DriverStatusActive)
	}
	return toDeliveryResponse(delivery), nil
}

// GetByID obtiene una entrega de la empresa por ID.
func (uc *DeliveryUseCase) GetByID(companyID, id string) (*dto.DeliveryResponse, error) {
	delivery, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if delivery == nil || delivery.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(delivery), nil
}

// List lista entregas de la empresa con filtros.
func (uc *DeliveryUseCase) List(companyID string, params repository.DeliveryListParams) (*dto.DeliveryListResponse, error) {
	if params.Limit <= 0 {
		params.Limit = 20
	}
	list, err := uc.repo.ListByCompany(companyID, params)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DeliveryResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDeliveryResponse(d))
	}
	return &dto.DeliveryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: params.Limit, Offset: params.Offset},
	}, nil
}

// FormatDeliveryNumber arma el consecutivo legible EN-<año>-<seq>.
func FormatDeliveryNumber(year, seq int) string {
	return fmt.Sprintf("EN-%d-%05d", year, seq)
}

// Los cambios de estado de vehículo/conductor son best-effort: la entrega ya
// quedó persistida y un fallo aquí no debe revertirla.
func (uc *DeliveryUseCase) setVehicleStatus(id, status string) {
	vehicle, err := uc.vehicleRepo.GetByID(id)
	if err != nil || vehicle == nil {
		return
	}
	vehicle.Status = status
	vehicle.UpdatedAt = time.Now()
	_ = uc.vehicleRepo.Update(vehicle)
}

func (uc *DeliveryUseCase) setDriverStatus(id, status string) {
	driver, err := uc.driverRepo.GetByID(id)
	if err != nil || driver == nil {
		return
	}
	driver.Status = status
	driver.UpdatedAt = time.Now()
	_ = uc.driverRepo.Update(driver)
}

func toDeliveryResponse(d *entity.Delivery) *dto.DeliveryResponse {
	if d == nil {
		return nil
	}
	parcels := make([]dto.ParcelResponse, 0, len(d.Parcels))
	for _, p := range d.Parcels {
		parcels = append(parcels, dto.ParcelResponse{
			ID:          p.ID,
			Code:        p.Code,
			Description: p.Description,
			WeightKg:    p.WeightKg,
			Recipient:   p.Recipient,
			Status:      p.Status,
		})
	}
	return &dto.DeliveryResponse{
		ID:                 d.ID,
		CompanyID:          d.CompanyID,
		Number:             d.Number,
		VehicleID:          d.VehicleID,
		DriverID:           d.DriverID,
		OriginWarehouseID:  d.OriginWarehouseID,
		DestinationAddress: d.DestinationAddress,
		Status:             d.Status,
		ScheduledDate:      d.ScheduledDate,
		DeliveredAt:        d.DeliveredAt,
		Notes:              d.Notes,
		Parcels:            parcels,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
