package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un traslado. Hoy los traslados se confirman en una sola
// transacción, así que nacen directamente en completed.
const (
	TransferStatusCompleted = "completed"
)

// StockTransfer representa un traslado de inventario entre dos bodegas.
// Se crea de forma atómica junto con sus dos movimientos por ítem
// (salida en origen, entrada en destino): o se confirma todo o nada.
type StockTransfer struct {
	ID                string
	CompanyID         string
	Number            string // secuencial legible: GT-<año>-<seq>
	SourceWarehouseID string
	TargetWarehouseID string
	Status            string
	Responsible       string
	Reason            string
	Date              time.Time
	Items             []StockTransferItem
	CreatedAt         time.Time
}

// StockTransferItem es una línea del traslado.
type StockTransferItem struct {
	ID         string
	TransferID string
	ProductID  string
	Quantity   decimal.Decimal // siempre positiva; el signo lo ponen los movimientos
}
