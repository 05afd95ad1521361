package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.DriverRepository = (*DriverRepo)(nil)

const driverColumns = `id, company_id, name, document, license, phone, status, created_at, updated_at`

// DriverRepo implementación del puerto DriverRepository sobre PostgreSQL.
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador de persistencia para conductores.
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

// Create persiste un conductor. El documento es único por empresa.
func (r *DriverRepo) Create(driver *entity.Driver) error {
	query := `
		INSERT INTO drivers (id, company_id, name, document, license, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.CompanyID, driver.Name, driver.Document, driver.License,
		driver.Phone, driver.Status, driver.CreatedAt, driver.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert driver: %w", err)
	}
	return nil
}

// GetByID obtiene un conductor por ID.
func (r *DriverRepo) GetByID(id string) (*entity.Driver, error) {
	var d entity.Driver
	err := r.q.QueryRow(context.Background(),
		`SELECT `+driverColumns+` FROM drivers WHERE id = $1`, id).Scan(
		&d.ID, &d.CompanyID, &d.Name, &d.Document, &d.License, &d.Phone, &d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver: %w", err)
	}
	return &d, nil
}

// Update actualiza un conductor (documento inmutable).
func (r *DriverRepo) Update(driver *entity.Driver) error {
	query := `
		UPDATE drivers SET name = $2, license = $3, phone = $4, status = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		driver.ID, driver.Name, driver.License, driver.Phone, driver.Status, driver.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// ListByCompany lista conductores de la empresa, opcionalmente por estado.
func (r *DriverRepo) ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE company_id = $1`
	args := []any{companyID}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.CompanyID, &d.Name, &d.Document, &d.License, &d.Phone, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina un conductor.
func (r *DriverRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete driver: %w", err)
	}
	return nil
}
