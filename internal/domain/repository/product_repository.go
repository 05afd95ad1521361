package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// ProductListParams filtros y orden para listados de productos.
// Search se compara contra el nombre/SKU normalizados (sin tildes).
type ProductListParams struct {
	Search    string
	Category  string
	Status    string
	SortBy    string // name, sku, price, current_stock, created_at
	SortOrder string // asc, desc
	Limit     int
	Offset    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// ajustes de alcance global; usar sólo dentro de una transacción.
	GetForUpdate(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateCost(productID string, cost decimal.Decimal) error
	// SetCurrentStock fija el saldo global denormalizado (alcance global bloqueado).
	SetCurrentStock(productID string, stock decimal.Decimal) error
	// AddToCurrentStock aplica un delta atómico al saldo global (ajustes por bodega).
	AddToCurrentStock(productID string, delta decimal.Decimal) error
	ListByCompany(companyID string, params ProductListParams) ([]*entity.Product, int, error)
	// ListBelowMinStock devuelve los productos bajo su punto de reorden.
	ListBelowMinStock(companyID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
