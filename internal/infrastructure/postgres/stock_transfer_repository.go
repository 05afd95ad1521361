package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación de StockTransferRepository sobre PostgreSQL.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

// Create persiste el traslado con sus ítems. Debe llamarse dentro de la misma
// transacción que los movimientos del traslado.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (id, company_id, number, source_warehouse_id, target_warehouse_id, status, responsible, reason, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.CompanyID, transfer.Number, transfer.SourceWarehouseID,
		transfer.TargetWarehouseID, transfer.Status, transfer.Responsible, transfer.Reason,
		transfer.Date, transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	for _, item := range transfer.Items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO stock_transfer_items (id, transfer_id, product_id, quantity) VALUES ($1, $2, $3, $4)`,
			item.ID, item.TransferID, item.ProductID, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un traslado con sus ítems.
func (r *StockTransferRepo) GetByID(id string) (*entity.StockTransfer, error) {
	query := `
		SELECT id, company_id, number, source_warehouse_id, target_warehouse_id, status, responsible, reason, date, created_at
		FROM stock_transfers WHERE id = $1`
	var tr entity.StockTransfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&tr.ID, &tr.CompanyID, &tr.Number, &tr.SourceWarehouseID, &tr.TargetWarehouseID,
		&tr.Status, &tr.Responsible, &tr.Reason, &tr.Date, &tr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if err := r.loadItems(&tr); err != nil {
		return nil, err
	}
	return &tr, nil
}

// ListByCompany lista los traslados de la empresa, más recientes primero.
func (r *StockTransferRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.StockTransfer, error) {
	query := `
		SELECT id, company_id, number, source_warehouse_id, target_warehouse_id, status, responsible, reason, date, created_at
		FROM stock_transfers WHERE company_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		var tr entity.StockTransfer
		if err := rows.Scan(&tr.ID, &tr.CompanyID, &tr.Number, &tr.SourceWarehouseID, &tr.TargetWarehouseID,
			&tr.Status, &tr.Responsible, &tr.Reason, &tr.Date, &tr.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		list = append(list, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, tr := range list {
		if err := r.loadItems(tr); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *StockTransferRepo) loadItems(tr *entity.StockTransfer) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, transfer_id, product_id, quantity FROM stock_transfer_items WHERE transfer_id = $1 ORDER BY id`,
		tr.ID,
	)
	if err != nil {
		return fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var item entity.StockTransferItem
		if err := rows.Scan(&item.ID, &item.TransferID, &item.ProductID, &item.Quantity); err != nil {
			return fmt.Errorf("scan transfer item: %w", err)
		}
		tr.Items = append(tr.Items, item)
	}
	return rows.Err()
}
