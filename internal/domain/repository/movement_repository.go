package repository

import (
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para el registro de
// movimientos. Solo el motor de ledger escribe aquí; no hay Update ni Delete:
// el registro es append-only.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	// List devuelve todos los movimientos, fecha descendente.
	List() ([]*entity.Movement, error)
	// ListByDateRange devuelve los movimientos con fecha en [from, to]
	// (inclusivo en ambos extremos), fecha descendente, con la unidad de
	// medida actual del producto vía LEFT JOIN por nombre.
	ListByDateRange(from, to time.Time) ([]*entity.MovementWithUnit, error)
}
