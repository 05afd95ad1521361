package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/textutil"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

const employeeColumns = `id, company_id, document, name, email, phone, position, department, salary, hired_at, status, created_at, updated_at`

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados.
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create persiste un empleado. search_name guarda el nombre normalizado para búsqueda.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, company_id, document, name, search_name, email, phone, position, department, salary, hired_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.CompanyID, employee.Document, employee.Name, textutil.Normalize(employee.Name),
		employee.Email, employee.Phone, employee.Position, employee.Department,
		employee.Salary, employee.HiredAt, employee.Status, employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.q.QueryRow(context.Background(),
		`SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id).Scan(
		&e.ID, &e.CompanyID, &e.Document, &e.Name, &e.Email, &e.Phone, &e.Position,
		&e.Department, &e.Salary, &e.HiredAt, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// GetByCompanyAndDocument obtiene un empleado por empresa y documento.
func (r *EmployeeRepo) GetByCompanyAndDocument(companyID, document string) (*entity.Employee, error) {
	var e entity.Employee
	err := r.q.QueryRow(context.Background(),
		`SELECT `+employeeColumns+` FROM employees WHERE company_id = $1 AND document = $2`, companyID, document).Scan(
		&e.ID, &e.CompanyID, &e.Document, &e.Name, &e.Email, &e.Phone, &e.Position,
		&e.Department, &e.Salary, &e.HiredAt, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by document: %w", err)
	}
	return &e, nil
}

// Update actualiza un empleado (documento inmutable).
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET name = $2, search_name = $3, email = $4, phone = $5, position = $6,
			department = $7, salary = $8, status = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.Name, textutil.Normalize(employee.Name), employee.Email,
		employee.Phone, employee.Position, employee.Department, employee.Salary,
		employee.Status, employee.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// ListByCompany lista empleados de la empresa con búsqueda, filtros y total.
func (r *EmployeeRepo) ListByCompany(companyID string, params repository.EmployeeListParams) ([]*entity.Employee, int, error) {
	var sb strings.Builder
	args := []any{companyID}
	sb.WriteString(` FROM employees WHERE company_id = $1`)
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		sb.WriteString(fmt.Sprintf(` AND (search_name LIKE $%d OR document LIKE $%d)`, len(args), len(args)))
	}
	if params.Department != "" {
		args = append(args, params.Department)
		sb.WriteString(fmt.Sprintf(` AND department = $%d`, len(args)))
	}
	if params.Status != "" {
		args = append(args, params.Status)
		sb.WriteString(fmt.Sprintf(` AND status = $%d`, len(args)))
	}
	where := sb.String()

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*)`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := `SELECT ` + employeeColumns + where +
		fmt.Sprintf(` ORDER BY name LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Document, &e.Name, &e.Email, &e.Phone, &e.Position,
			&e.Department, &e.Salary, &e.HiredAt, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, total, rows.Err()
}

// Delete elimina un empleado.
func (r *EmployeeRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}
