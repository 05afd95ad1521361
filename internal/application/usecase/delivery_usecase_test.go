package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/usecase"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

const (
	companyID   = "11111111-1111-1111-1111-111111111111"
	vehicleID   = "22222222-2222-2222-2222-222222222222"
	driverID    = "33333333-3333-3333-3333-333333333333"
	warehouseID = "44444444-4444-4444-4444-444444444444"
)

type memDeliveryRepo struct {
	byID map[string]*entity.Delivery
}

func (r *memDeliveryRepo) Create(d *entity.Delivery) error { r.byID[d.ID] = d; return nil }
func (r *memDeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	return r.byID[id], nil
}
func (r *memDeliveryRepo) Update(d *entity.Delivery) error { r.byID[d.ID] = d; return nil }
func (r *memDeliveryRepo) ListByCompany(companyID string, params repository.DeliveryListParams) ([]*entity.Delivery, error) {
	var out []*entity.Delivery
	for _, d := range r.byID {
		if d.CompanyID == companyID {
			out = append(out, d)
		}
	}
	return out, nil
}

type memVehicleRepo struct{ v *entity.Vehicle }

func (r *memVehicleRepo) Create(v *entity.Vehicle) error { r.v = v; return nil }
func (r *memVehicleRepo) GetByID(id string) (*entity.Vehicle, error) {
	if r.v != nil && r.v.ID == id {
		return r.v, nil
	}
	return nil, nil
}
func (r *memVehicleRepo) Update(v *entity.Vehicle) error { r.v = v; return nil }
func (r *memVehicleRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Vehicle, error) {
	return nil, nil
}
func (r *memVehicleRepo) Delete(id string) error { return nil }

type memDriverRepo struct{ d *entity.Driver }

func (r *memDriverRepo) Create(d *entity.Driver) error { r.d = d; return nil }
func (r *memDriverRepo) GetByID(id string) (*entity.Driver, error) {
	if r.d != nil && r.d.ID == id {
		return r.d, nil
	}
	return nil, nil
}
func (r *memDriverRepo) Update(d *entity.Driver) error { r.d = d; return nil }
func (r *memDriverRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Driver, error) {
	return nil, nil
}
func (r *memDriverRepo) Delete(id string) error { return nil }

type memWarehouseRepo struct{ w *entity.Warehouse }

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error { r.w = w; return nil }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if r.w != nil && r.w.ID == id {
		return r.w, nil
	}
	return nil, nil
}
func (r *memWarehouseRepo) Update(w *entity.Warehouse) error { r.w = w; return nil }
func (r *memWarehouseRepo) ListByCompany(companyID string, params repository.WarehouseListParams) ([]*entity.Warehouse, int, error) {
	return nil, 0, nil
}
func (r *memWarehouseRepo) Delete(id string) error { return nil }

type memSequenceRepo struct{ seqs map[string]int }

func (r *memSequenceRepo) Next(companyID, kind string, year int) (int, error) {
	key := fmt.Sprintf("%s|%s|%d", companyID, kind, year)
	r.seqs[key]++
	return r.seqs[key], nil
}

type deliveryFixture struct {
	uc       *usecase.DeliveryUseCase
	vehicles *memVehicleRepo
	drivers  *memDriverRepo
}

func newDeliveryFixture() *deliveryFixture {
	now := time.Now()
	vehicles := &memVehicleRepo{v: &entity.Vehicle{
		ID: vehicleID, CompanyID: companyID, Plate: "ABC-123",
		CapacityKg: decimal.NewFromInt(1200), Status: entity.VehicleStatusAvailable,
		CreatedAt: now, UpdatedAt: now,
	}}
	drivers := &memDriverRepo{d: &entity.Driver{
		ID: driverID, CompanyID: companyID, Name: "Luis Rojas", Document: "1020304050",
		License: "C2-998877", Status: entity.DriverStatusActive, CreatedAt: now, UpdatedAt: now,
	}}
	warehouses := &memWarehouseRepo{w: &entity.Warehouse{
		ID: warehouseID, CompanyID: companyID, Code: "BOD-N", Name: "Bodega Norte", IsActive: true,
	}}
	uc := usecase.NewDeliveryUseCase(
		&memDeliveryRepo{byID: map[string]*entity.Delivery{}},
		vehicles,
		drivers,
		warehouses,
		&memSequenceRepo{seqs: map[string]int{}},
	)
	return &deliveryFixture{uc: uc, vehicles: vehicles, drivers: drivers}
}

func validDeliveryRequest() dto.CreateDeliveryRequest {
	return dto.CreateDeliveryRequest{
		VehicleID:          vehicleID,
		DriverID:           driverID,
		OriginWarehouseID:  warehouseID,
		DestinationAddress: "Cra 15 #82-33, Bogotá",
		ScheduledDate:      time.Now().Add(24 * time.Hour),
		Parcels: []dto.ParcelRequest{
			{Code: "PKG-001", Recipient: "María Gómez", WeightKg: decimal.NewFromInt(3)},
		},
	}
}

func TestDelivery_CreaConNumeroConsecutivo(t *testing.T) {
	f := newDeliveryFixture()
	year := time.Now().Year()

	first, err := f.uc.Create(companyID, validDeliveryRequest())
	require.NoError(t, err)
	second, err := f.uc.Create(companyID, validDeliveryRequest())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("EN-%d-00001", year), first.Number)
	assert.Equal(t, fmt.Sprintf("EN-%d-00002", year), second.Number)
	assert.Equal(t, "pending", first.Status)
	require.Len(t, first.Parcels, 1)
	assert.Equal(t, "pending", first.Parcels[0].Status)
}

func TestDelivery_TransicionesValidas(t *testing.T) {
	f := newDeliveryFixture()
	created, err := f.uc.Create(companyID, validDeliveryRequest())
	require.NoError(t, err)

	inTransit, err := f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "in_transit"})
	require.NoError(t, err)
	assert.Equal(t, "in_transit", inTransit.Status)
	// Vehículo y conductor quedan en ruta
	assert.Equal(t, entity.VehicleStatusInRoute, f.vehicles.v.Status)
	assert.Equal(t, entity.DriverStatusInRoute, f.drivers.d.Status)

	delivered, err := f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	assert.Equal(t, "delivered", delivered.Status)
	require.NotNil(t, delivered.DeliveredAt)
	assert.Equal(t, "delivered", delivered.Parcels[0].Status)
	// Al terminar, vehículo y conductor se liberan
	assert.Equal(t, entity.VehicleStatusAvailable, f.vehicles.v.Status)
	assert.Equal(t, entity.DriverStatusActive, f.drivers.d.Status)
}

func TestDelivery_TransicionesInvalidas(t *testing.T) {
	f := newDeliveryFixture()
	created, err := f.uc.Create(companyID, validDeliveryRequest())
	require.NoError(t, err)

	// pending no puede saltar directo a delivered
	_, err = f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "delivered"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "in_transit"})
	require.NoError(t, err)
	// in_transit no puede cancelarse
	_, err = f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	// delivered es terminal
	_, err = f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "failed"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestDelivery_CancelacionDesdePending(t *testing.T) {
	f := newDeliveryFixture()
	created, err := f.uc.Create(companyID, validDeliveryRequest())
	require.NoError(t, err)

	cancelled, err := f.uc.UpdateStatus(companyID, created.ID, dto.UpdateDeliveryStatusRequest{Status: "cancelled", Notes: "Cliente canceló"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Nil(t, cancelled.DeliveredAt)
}

func TestDelivery_VehiculoNoDisponibleRechaza(t *testing.T) {
	f := newDeliveryFixture()
	f.vehicles.v.Status = entity.VehicleStatusMaintenance

	_, err := f.uc.Create(companyID, validDeliveryRequest())
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDelivery_RespetaEmpresa(t *testing.T) {
	f := newDeliveryFixture()
	created, err := f.uc.Create(companyID, validDeliveryRequest())
	require.NoError(t, err)

	_, err = f.uc.GetByID("99999999-9999-9999-9999-999999999999", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
