package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo entrega consecutivos por (empresa, tipo, año) sobre PostgreSQL.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next incrementa y devuelve el consecutivo de forma atómica: el upsert con
// RETURNING garantiza que dos llamadas concurrentes nunca vean el mismo número.
func (r *SequenceRepo) Next(companyID, kind string, year int) (int, error) {
	query := `
		INSERT INTO sequences (company_id, kind, year, value)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, kind, year)
		DO UPDATE SET value = sequences.value + 1
		RETURNING value`
	var value int
	if err := r.q.QueryRow(context.Background(), query, companyID, kind, year).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return value, nil
}
