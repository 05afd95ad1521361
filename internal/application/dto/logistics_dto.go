package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVehicleRequest entrada para registrar un vehículo.
type CreateVehicleRequest struct {
	Plate      string          `json:"plate" validate:"required,min=3,max=15"`
	Brand      string          `json:"brand" validate:"max=100"`
	Model      string          `json:"model" validate:"max=100"`
	CapacityKg decimal.Decimal `json:"capacity_kg"`
}

// UpdateVehicleRequest entrada para actualizar un vehículo.
type UpdateVehicleRequest struct {
	Brand      *string          `json:"brand" validate:"omitempty,max=100"`
	Model      *string          `json:"model" validate:"omitempty,max=100"`
	CapacityKg *decimal.Decimal `json:"capacity_kg"`
	Status     *string          `json:"status" validate:"omitempty,oneof=available in_route maintenance inactive"`
}

// VehicleResponse salida de un vehículo.
type VehicleResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Plate      string          `json:"plate"`
	Brand      string          `json:"brand"`
	Model      string          `json:"model"`
	CapacityKg decimal.Decimal `json:"capacity_kg"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateDriverRequest entrada para registrar un conductor.
type CreateDriverRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Document string `json:"document" validate:"required,min=5,max=20"`
	License  string `json:"license" validate:"required,min=5,max=30"`
	Phone    string `json:"phone"`
}

// UpdateDriverRequest entrada para actualizar un conductor.
type UpdateDriverRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=200"`
	License *string `json:"license" validate:"omitempty,min=5,max=30"`
	Phone   *string `json:"phone"`
	Status  *string `json:"status" validate:"omitempty,oneof=active in_route inactive"`
}

// DriverResponse salida de un conductor.
type DriverResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	License   string    `json:"license"`
	Phone     string    `json:"phone"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParcelRequest un paquete dentro de la entrega.
type ParcelRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=50"`
	Description string          `json:"description"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	Recipient   string          `json:"recipient" validate:"required,min=2,max=200"`
}

// CreateDeliveryRequest entrada para programar una entrega.
type CreateDeliveryRequest struct {
	VehicleID          string          `json:"vehicle_id" validate:"required,uuid"`
	DriverID           string          `json:"driver_id" validate:"required,uuid"`
	OriginWarehouseID  string          `json:"origin_warehouse_id" validate:"required,uuid"`
	DestinationAddress string          `json:"destination_address" validate:"required,min=5,max=300"`
	ScheduledDate      time.Time       `json:"scheduled_date" validate:"required"`
	Notes              string          `json:"notes"`
	Parcels            []ParcelRequest `json:"parcels" validate:"required,min=1,dive"`
}

// UpdateDeliveryStatusRequest body para PATCH /api/deliveries/{id}/status.
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=in_transit delivered failed cancelled"`
	Notes  string `json:"notes"`
}

// ParcelResponse salida de un paquete.
type ParcelResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	Recipient   string          `json:"recipient"`
	Status      string          `json:"status"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	Number             string           `json:"number"` // EN-<año>-<seq>
	VehicleID          string           `json:"vehicle_id"`
	DriverID           string           `json:"driver_id"`
	OriginWarehouseID  string           `json:"origin_warehouse_id"`
	DestinationAddress string           `json:"destination_address"`
	Status             string           `json:"status"`
	ScheduledDate      time.Time        `json:"scheduled_date"`
	DeliveredAt        *time.Time       `json:"delivered_at,omitempty"`
	Notes              string           `json:"notes"`
	Parcels            []ParcelResponse `json:"parcels"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// DeliveryListResponse lista paginada de entregas.
type DeliveryListResponse struct {
	Items []DeliveryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
