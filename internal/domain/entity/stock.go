package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo corriente de un producto en una bodega
// (tabla materializada, se bloquea con SELECT FOR UPDATE dentro del motor de inventario).
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
