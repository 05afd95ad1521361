package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// CurrentStock es el saldo global denormalizado: la suma de las filas de Stock
// por bodega debe coincidir con él. Nunca queda negativo tras un ajuste confirmado.
type Product struct {
	ID           string
	CompanyID    string
	SKU          string // código único por empresa
	Name         string
	Description  string
	Category     string
	UnitMeasure  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo promedio ponderado (inicia en 0)
	CurrentStock decimal.Decimal // saldo global corriente
	MinStock     decimal.Decimal // punto de reorden
	Status       string          // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
