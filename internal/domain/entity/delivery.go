package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una entrega y sus transiciones legales:
// pending -> in_transit -> delivered | failed. Cancelación sólo desde pending.
const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
	DeliveryStatusCancelled = "cancelled"
)

// ValidDeliveryTransition indica si el cambio de estado from -> to está permitido.
func ValidDeliveryTransition(from, to string) bool {
	switch from {
	case DeliveryStatusPending:
		return to == DeliveryStatusInTransit || to == DeliveryStatusCancelled
	case DeliveryStatusInTransit:
		return to == DeliveryStatusDelivered || to == DeliveryStatusFailed
	}
	return false
}

// Delivery representa una entrega programada con vehículo y conductor asignados.
type Delivery struct {
	ID                 string
	CompanyID          string
	Number             string // secuencial legible: EN-<año>-<seq>
	VehicleID          string
	DriverID           string
	OriginWarehouseID  string
	DestinationAddress string
	Status             string
	ScheduledDate      time.Time
	DeliveredAt        *time.Time // nil hasta que el estado llegue a delivered
	Notes              string
	Parcels            []Parcel
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Parcel es un paquete individual dentro de una entrega.
type Parcel struct {
	ID          string
	DeliveryID  string
	Code        string
	Description string
	WeightKg    decimal.Decimal
	Recipient   string
	Status      string // sigue el estado de la entrega salvo excepciones puntuales
}
