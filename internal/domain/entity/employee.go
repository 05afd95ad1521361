package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un empleado.
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusOnLeave    = "on_leave"
	EmployeeStatusTerminated = "terminated"
)

// Employee representa un empleado de la empresa (módulo de talento humano).
type Employee struct {
	ID         string
	CompanyID  string
	Document   string // cédula, único por empresa
	Name       string
	Email      string
	Phone      string
	Position   string
	Department string
	Salary     decimal.Decimal
	HiredAt    time.Time
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
