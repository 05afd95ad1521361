package entity

import "time"

// Estados de un conductor.
const (
	DriverStatusActive   = "active"
	DriverStatusInRoute  = "in_route"
	DriverStatusInactive = "inactive"
)

// Driver representa un conductor de la flota de logística.
type Driver struct {
	ID        string
	CompanyID string
	Name      string
	Document  string // cédula, único por empresa
	License   string
	Phone     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
