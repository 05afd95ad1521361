package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.DeliveryRepository = (*DeliveryRepo)(nil)

const deliveryColumns = `id, company_id, number, vehicle_id, driver_id, origin_warehouse_id, destination_address, status, scheduled_date, delivered_at, notes, created_at, updated_at`

// DeliveryRepo implementación del puerto DeliveryRepository sobre PostgreSQL.
type DeliveryRepo struct {
	q Querier
}

// NewDeliveryRepository construye el adaptador de persistencia para entregas.
func NewDeliveryRepository(q Querier) *DeliveryRepo {
	return &DeliveryRepo{q: q}
}

// Create persiste la entrega con sus paquetes.
func (r *DeliveryRepo) Create(delivery *entity.Delivery) error {
	query := `
		INSERT INTO deliveries (id, company_id, number, vehicle_id, driver_id, origin_warehouse_id, destination_address, status, scheduled_date, delivered_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.CompanyID, delivery.Number, delivery.VehicleID, delivery.DriverID,
		delivery.OriginWarehouseID, delivery.DestinationAddress, delivery.Status,
		delivery.ScheduledDate, delivery.DeliveredAt, delivery.Notes, delivery.CreatedAt, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}
	for _, p := range delivery.Parcels {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO parcels (id, delivery_id, code, description, weight_kg, recipient, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.DeliveryID, p.Code, p.Description, p.WeightKg, p.Recipient, p.Status,
		)
		if err != nil {
			return fmt.Errorf("insert parcel: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una entrega con sus paquetes.
func (r *DeliveryRepo) GetByID(id string) (*entity.Delivery, error) {
	var d entity.Delivery
	err := r.q.QueryRow(context.Background(),
		`SELECT `+deliveryColumns+` FROM deliveries WHERE id = $1`, id).Scan(
		&d.ID, &d.CompanyID, &d.Number, &d.VehicleID, &d.DriverID, &d.OriginWarehouseID,
		&d.DestinationAddress, &d.Status, &d.ScheduledDate, &d.DeliveredAt, &d.Notes,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get delivery: %w", err)
	}
	if err := r.loadParcels(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Update actualiza el estado y notas de la entrega más el estado de sus paquetes.
func (r *DeliveryRepo) Update(delivery *entity.Delivery) error {
	query := `
		UPDATE deliveries SET status = $2, delivered_at = $3, notes = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		delivery.ID, delivery.Status, delivery.DeliveredAt, delivery.Notes, delivery.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update delivery: %w", err)
	}
	for _, p := range delivery.Parcels {
		_, err := r.q.Exec(context.Background(),
			`UPDATE parcels SET status = $2 WHERE id = $1`, p.ID, p.Status)
		if err != nil {
			return fmt.Errorf("update parcel: %w", err)
		}
	}
	return nil
}

// ListByCompany lista entregas de la empresa con filtros, más recientes primero.
func (r *DeliveryRepo) ListByCompany(companyID string, params repository.DeliveryListParams) ([]*entity.Delivery, error) {
	var sb strings.Builder
	args := []any{companyID}
	sb.WriteString(`SELECT ` + deliveryColumns + ` FROM deliveries WHERE company_id = $1`)
	if params.Status != "" {
		args = append(args, params.Status)
		sb.WriteString(fmt.Sprintf(` AND status = $%d`, len(args)))
	}
	if params.VehicleID != "" {
		args = append(args, params.VehicleID)
		sb.WriteString(fmt.Sprintf(` AND vehicle_id = $%d`, len(args)))
	}
	if params.DriverID != "" {
		args = append(args, params.DriverID)
		sb.WriteString(fmt.Sprintf(` AND driver_id = $%d`, len(args)))
	}
	args = append(args, params.Limit, params.Offset)
	sb.WriteString(fmt.Sprintf(` ORDER BY scheduled_date DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)))

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()
	var list []*entity.Delivery
	for rows.Next() {
		var d entity.Delivery
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Number, &d.VehicleID, &d.DriverID, &d.OriginWarehouseID,
			&d.DestinationAddress, &d.Status, &d.ScheduledDate, &d.DeliveredAt, &d.Notes,
			&d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		list = append(list, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range list {
		if err := r.loadParcels(d); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *DeliveryRepo) loadParcels(d *entity.Delivery) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, delivery_id, code, description, weight_kg, recipient, status
		 FROM parcels WHERE delivery_id = $1 ORDER BY code`, d.ID)
	if err != nil {
		return fmt.Errorf("list parcels: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Parcel
		if err := rows.Scan(&p.ID, &p.DeliveryID, &p.Code, &p.Description, &p.WeightKg, &p.Recipient, &p.Status); err != nil {
			return fmt.Errorf("scan parcel: %w", err)
		}
		d.Parcels = append(d.Parcels, p)
	}
	return rows.Err()
}
