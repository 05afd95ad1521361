package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicial siempre
// es cero: las existencias entran después por movimientos del libro.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"max=100"`
	UnitMeasure string          `json:"unit_measure" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest entrada para actualizar un producto (sin Cost ni CurrentStock:
// esos campos sólo los mueve el motor de inventario).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	UnitMeasure *string          `json:"unit_measure"`
	Price       *decimal.Decimal `json:"price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	Status      *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// ProductListQuery parámetros de listado de productos.
type ProductListQuery struct {
	Search    string `query:"search"`
	Category  string `query:"category"`
	Status    string `query:"status" validate:"omitempty,oneof=active inactive"`
	SortBy    string `query:"sort_by" validate:"omitempty,oneof=name sku price current_stock created_at"`
	SortOrder string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	UnitMeasure  string          `json:"unit_measure"`
	Price        decimal.Decimal `json:"price"`
	Cost         decimal.Decimal `json:"cost"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// LowStockItemDTO producto por debajo de su punto de reorden.
type LowStockItemDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Deficit      decimal.Decimal `json:"deficit"` // MinStock - CurrentStock
}
