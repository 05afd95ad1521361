package ledger

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain"
)

// Operaciones de ajuste de saldo.
const (
	OperationAdd      = "add"
	OperationSubtract = "subtract"
	OperationSet      = "set"
)

// Apply calcula el nuevo saldo para una operación de ajuste (servicio de dominio).
// Devuelve el saldo resultante y el delta con signo que debe registrar el movimiento.
//
//	add:      after = before + qty          (qty > 0)
//	subtract: after = before - qty          (qty > 0; rechaza si qty > before)
//	set:      after = qty, delta = qty-before (qty >= 0; delta puede ser negativo)
//
// Política ante stock insuficiente: rechazar con ErrInsufficientStock, nunca
// truncar a cero. El saldo resultante jamás es negativo.
func Apply(operation string, before, quantity decimal.Decimal) (after, delta decimal.Decimal, err error) {
	switch operation {
	case OperationAdd:
		if !quantity.GreaterThan(decimal.Zero) {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
		}
		after = before.Add(quantity)
		return after, quantity, nil
	case OperationSubtract:
		if !quantity.GreaterThan(decimal.Zero) {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
		}
		if quantity.GreaterThan(before) {
			return decimal.Zero, decimal.Zero, domain.ErrInsufficientStock
		}
		after = before.Sub(quantity)
		return after, quantity.Neg(), nil
	case OperationSet:
		if quantity.LessThan(decimal.Zero) {
			return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
		}
		return quantity, quantity.Sub(before), nil
	}
	return decimal.Zero, decimal.Zero, domain.ErrInvalidInput
}

// IsOperation indica si s es una operación de ajuste conocida.
func IsOperation(s string) bool {
	return s == OperationAdd || s == OperationSubtract || s == OperationSet
}

// Direction devuelve el signo (+1 entrada, -1 salida) de un tipo de movimiento
// de registro directo (compra, venta, devoluciones, pérdida, vencimiento).
// Devuelve 0 para tipos que no se registran por esta vía (adjustment, transfer).
func Direction(movementType string) int {
	switch movementType {
	case "purchase", "return_in":
		return 1
	case "sale", "return_out", "loss", "expired":
		return -1
	}
	return 0
}

// CostCalculator implementa la lógica de costo promedio ponderado.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}
