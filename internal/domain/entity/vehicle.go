package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un vehículo de reparto.
const (
	VehicleStatusAvailable   = "available"
	VehicleStatusInRoute     = "in_route"
	VehicleStatusMaintenance = "maintenance"
	VehicleStatusInactive    = "inactive"
)

// Vehicle representa un vehículo de la flota de logística.
type Vehicle struct {
	ID         string
	CompanyID  string
	Plate      string // placa única por empresa
	Brand      string
	Model      string
	CapacityKg decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
