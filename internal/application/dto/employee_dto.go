package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para registrar un empleado.
type CreateEmployeeRequest struct {
	Document   string          `json:"document" validate:"required,min=5,max=20"`
	Name       string          `json:"name" validate:"required,min=2,max=200"`
	Email      string          `json:"email" validate:"omitempty,email"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position" validate:"required,max=100"`
	Department string          `json:"department" validate:"max=100"`
	Salary     decimal.Decimal `json:"salary"`
	HiredAt    time.Time       `json:"hired_at" validate:"required"`
}

// UpdateEmployeeRequest entrada para actualizar un empleado.
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Email      *string          `json:"email" validate:"omitempty,email"`
	Phone      *string          `json:"phone"`
	Position   *string          `json:"position" validate:"omitempty,max=100"`
	Department *string          `json:"department" validate:"omitempty,max=100"`
	Salary     *decimal.Decimal `json:"salary"`
	Status     *string          `json:"status" validate:"omitempty,oneof=active on_leave terminated"`
}

// EmployeeListQuery parámetros de listado de empleados.
type EmployeeListQuery struct {
	Search     string `query:"search"`
	Department string `query:"department"`
	Status     string `query:"status" validate:"omitempty,oneof=active on_leave terminated"`
	PageRequest
}

// EmployeeResponse salida de un empleado.
type EmployeeResponse struct {
	ID         string          `json:"id"`
	CompanyID  string          `json:"company_id"`
	Document   string          `json:"document"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Position   string          `json:"position"`
	Department string          `json:"department"`
	Salary     decimal.Decimal `json:"salary"`
	HiredAt    time.Time       `json:"hired_at"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EmployeeListResponse lista paginada de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
