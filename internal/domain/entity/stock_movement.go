package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypePurchase   = "purchase"   // compra (entrada)
	MovementTypeSale       = "sale"       // venta (salida)
	MovementTypeReturnIn   = "return_in"  // devolución de cliente (entrada)
	MovementTypeReturnOut  = "return_out" // devolución a proveedor (salida)
	MovementTypeAdjustment = "adjustment" // ajuste manual
	MovementTypeExpired    = "expired"    // baja por vencimiento (salida)
	MovementTypeTransfer   = "transfer"   // traslado entre bodegas
	MovementTypeLoss       = "loss"       // pérdida/merma (salida)
)

// StockMovement es una entrada inmutable del libro de inventario.
// Se inserta junto con la actualización del saldo en la misma transacción y
// nunca se modifica ni se elimina: las correcciones son movimientos nuevos.
// Invariante: BalanceAfter = BalanceBefore + Quantity, y para un mismo alcance
// (producto, bodega) los movimientos encadenan BalanceAfter(n) == BalanceBefore(n+1).
type StockMovement struct {
	ID            string
	CompanyID     string
	ProductID     string
	WarehouseID   string          // vacío = alcance global del producto
	Type          string          // ver constantes MovementType*
	Quantity      decimal.Decimal // con signo: positivo entrada, negativo salida
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Reason        string
	Reference     string // factura, orden, número de traslado, etc.
	PerformedBy   string // UserID
	CreatedAt     time.Time
}

// IsMovementType indica si s es uno de los tipos de movimiento conocidos.
func IsMovementType(s string) bool {
	switch s {
	case MovementTypePurchase, MovementTypeSale, MovementTypeReturnIn, MovementTypeReturnOut,
		MovementTypeAdjustment, MovementTypeExpired, MovementTypeTransfer, MovementTypeLoss:
		return true
	}
	return false
}
