package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, company_id, product_id, COALESCE(warehouse_id, ''), type, quantity, balance_before, balance_after, reason, reference, performed_by, created_at`

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Sólo inserta y consulta: los movimientos son inmutables (no hay UPDATE ni DELETE).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. warehouse_id vacío se guarda como NULL (alcance global).
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, company_id, product_id, warehouse_id, type, quantity, balance_before, balance_after, reason, reference, performed_by, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.CompanyID, m.ProductID, m.WarehouseID, m.Type, m.Quantity,
		m.BalanceBefore, m.BalanceAfter, m.Reason, m.Reference, m.PerformedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMovementRepo) GetByID(id string) (*entity.StockMovement, error) {
	var m entity.StockMovement
	err := r.q.QueryRow(context.Background(),
		`SELECT `+movementColumns+` FROM stock_movements WHERE id = $1`, id).Scan(
		&m.ID, &m.CompanyID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity,
		&m.BalanceBefore, &m.BalanceAfter, &m.Reason, &m.Reference, &m.PerformedBy, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return &m, nil
}

// ListByProduct devuelve el historial de un producto, más recientes primero
// (created_at DESC, id DESC como desempate estable), con filtros y total.
func (r *StockMovementRepo) ListByProduct(productID string, filters repository.MovementFilters, limit, offset int) ([]*entity.StockMovement, int, error) {
	var sb strings.Builder
	args := []any{productID}
	sb.WriteString(` FROM stock_movements WHERE product_id = $1`)
	if filters.Type != "" {
		args = append(args, filters.Type)
		sb.WriteString(fmt.Sprintf(` AND type = $%d`, len(args)))
	}
	if filters.WarehouseID != "" {
		args = append(args, filters.WarehouseID)
		sb.WriteString(fmt.Sprintf(` AND warehouse_id = $%d`, len(args)))
	}
	if filters.From != nil {
		args = append(args, *filters.From)
		sb.WriteString(fmt.Sprintf(` AND created_at >= $%d`, len(args)))
	}
	if filters.To != nil {
		args = append(args, *filters.To)
		sb.WriteString(fmt.Sprintf(` AND created_at <= $%d`, len(args)))
	}
	where := sb.String()

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + movementColumns + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity,
			&m.BalanceBefore, &m.BalanceAfter, &m.Reason, &m.Reference, &m.PerformedBy, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// ListByWarehouse devuelve los movimientos de una bodega en un rango de fechas.
func (r *StockMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var sb strings.Builder
	args := []any{warehouseID}
	sb.WriteString(`SELECT ` + movementColumns + ` FROM stock_movements WHERE warehouse_id = $1`)
	if from != nil {
		args = append(args, *from)
		sb.WriteString(fmt.Sprintf(` AND created_at >= $%d`, len(args)))
	}
	if to != nil {
		args = append(args, *to)
		sb.WriteString(fmt.Sprintf(` AND created_at <= $%d`, len(args)))
	}
	args = append(args, limit, offset)
	sb.WriteString(fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movements by warehouse: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity,
			&m.BalanceBefore, &m.BalanceAfter, &m.Reason, &m.Reference, &m.PerformedBy, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
