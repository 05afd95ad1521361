package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest una línea del traslado.
type TransferItemRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateTransferRequest body para POST /api/warehouses/transfers.
type CreateTransferRequest struct {
	SourceWarehouseID string                `json:"source_warehouse_id" validate:"required,uuid"`
	TargetWarehouseID string                `json:"target_warehouse_id" validate:"required,uuid"`
	Items             []TransferItemRequest `json:"items" validate:"required,min=1,dive"`
	Responsible       string                `json:"responsible" validate:"required,min=2,max=200"`
	Reason            string                `json:"reason" validate:"required,min=3,max=500"`
}

// TransferItemResponse línea del traslado en respuestas.
type TransferItemResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TransferResponse salida de un traslado confirmado.
type TransferResponse struct {
	ID                string                 `json:"id"`
	Number            string                 `json:"number"` // GT-<año>-<seq>
	SourceWarehouseID string                 `json:"source_warehouse_id"`
	TargetWarehouseID string                 `json:"target_warehouse_id"`
	Status            string                 `json:"status"`
	Responsible       string                 `json:"responsible"`
	Reason            string                 `json:"reason"`
	Date              time.Time              `json:"date"`
	Items             []TransferItemResponse `json:"items"`
}

// TransferListResponse lista paginada de traslados.
type TransferListResponse struct {
	Items []TransferResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
