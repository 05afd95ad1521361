package repository

// Tipos de secuencia para numeración legible de documentos.
const (
	SequenceKindTransfer = "transfer" // GT-<año>-<seq>
	SequenceKindDelivery = "delivery" // EN-<año>-<seq>
)

// SequenceRepository entrega consecutivos por (empresa, tipo, año).
// La implementación debe ser atómica: dos llamadas concurrentes nunca
// devuelven el mismo número.
type SequenceRepository interface {
	Next(companyID, kind string, year int) (int, error)
}
