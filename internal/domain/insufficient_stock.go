package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InsufficientStockError detalla qué producto no tiene saldo suficiente.
// Envuelve ErrInsufficientStock para que errors.Is siga funcionando; lo usa
// el traslado entre bodegas para nombrar el primer ítem que falla.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %s, solicitado %s",
		e.ProductName, e.Available.String(), e.Requested.String())
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
