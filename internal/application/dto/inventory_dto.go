package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/products/{id}/stock.
// operation=set fija el saldo absoluto; add/subtract exigen quantity > 0.
type AdjustStockRequest struct {
	Operation   string          `json:"operation" validate:"required,oneof=add subtract set"`
	Quantity    decimal.Decimal `json:"quantity"`
	WarehouseID string          `json:"warehouse_id" validate:"omitempty,uuid"`
	Reason      string          `json:"reason" validate:"required,min=3,max=500"`
	Reference   string          `json:"reference"`
}

// RecordMovementRequest body para POST /api/inventory/movements
// (compras, ventas, devoluciones, pérdidas, vencimientos).
type RecordMovementRequest struct {
	Type        string          `json:"type" validate:"required,oneof=purchase sale return_in return_out loss expired"`
	ProductID   string          `json:"product_id" validate:"required,uuid"`
	WarehouseID string          `json:"warehouse_id" validate:"omitempty,uuid"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"` // obligatorio en purchase
	Reference   string          `json:"reference" validate:"required,min=1,max=100"`
	Reason      string          `json:"reason"`
}

// StockMovementResponse salida de un movimiento del libro.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	WarehouseID   string          `json:"warehouse_id,omitempty"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Reason        string          `json:"reason"`
	Reference     string          `json:"reference,omitempty"`
	PerformedBy   string          `json:"performed_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AdjustStockResponse producto actualizado + movimiento creado. El
// balance_after calculado por el servidor es el autoritativo para el cliente.
type AdjustStockResponse struct {
	Product  ProductResponse       `json:"product"`
	Movement StockMovementResponse `json:"movement"`
}

// MovementHistoryQuery filtros para GET /api/products/{id}/stock-movements.
type MovementHistoryQuery struct {
	Type        string `query:"type" validate:"omitempty,oneof=purchase sale return_in return_out adjustment expired transfer loss"`
	WarehouseID string `query:"warehouse_id" validate:"omitempty,uuid"`
	StartDate   string `query:"start_date"` // YYYY-MM-DD
	EndDate     string `query:"end_date"`   // YYYY-MM-DD
	PageRequest
}

// MovementHistoryResponse historial paginado, más recientes primero.
type MovementHistoryResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// WarehouseStockDTO saldo de un producto en una bodega.
type WarehouseStockDTO struct {
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductStockResponse desglose de existencias por bodega más el saldo global.
type ProductStockResponse struct {
	ProductID    string              `json:"product_id"`
	CurrentStock decimal.Decimal     `json:"current_stock"`
	Warehouses   []WarehouseStockDTO `json:"warehouses"`
}
