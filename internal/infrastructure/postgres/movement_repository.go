package postgres

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL
// (usable con pool o tx). El registro es append-only: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un movimiento. La fecha viene asignada por el motor (hora
// local del servidor); aquí solo se persiste.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (producto, tipo, cantidad, peso, um, fecha)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		movement.ProductName, movement.Type, movement.Quantity,
		movement.UnitWeight, movement.Unit, movement.Date,
	).Scan(&movement.ID)
	if err != nil {
		return storageErr("insert movement", err)
	}
	return nil
}

// List devuelve todos los movimientos, fecha descendente (id descendente como
// desempate para fechas iguales).
func (r *MovementRepo) List() ([]*entity.Movement, error) {
	query := `
		SELECT id, producto, tipo, cantidad, peso, um, fecha
		FROM movements ORDER BY fecha DESC, id DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, storageErr("list movements", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductName, &m.Type, &m.Quantity,
			&m.UnitWeight, &m.Unit, &m.Date); err != nil {
			return nil, storageErr("scan movement", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByDateRange devuelve los movimientos con fecha en [from, to], fecha
// descendente, con la unidad actual del producto vía LEFT JOIN por nombre.
// Si el producto ya no existe el movimiento aparece igual con la unidad vacía.
func (r *MovementRepo) ListByDateRange(from, to time.Time) ([]*entity.MovementWithUnit, error) {
	query := `
		SELECT m.id, m.producto, m.tipo, m.cantidad, m.peso, m.um, m.fecha,
		       COALESCE(p.um, '')
		FROM movements m
		LEFT JOIN products p ON m.producto = p.productos
		WHERE m.fecha BETWEEN $1 AND $2
		ORDER BY m.fecha DESC, m.id DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, storageErr("list movements by range", err)
	}
	defer rows.Close()
	var list []*entity.MovementWithUnit
	for rows.Next() {
		var m entity.MovementWithUnit
		if err := rows.Scan(&m.ID, &m.ProductName, &m.Type, &m.Quantity,
			&m.UnitWeight, &m.Unit, &m.Date, &m.CurrentUnit); err != nil {
			return nil, storageErr("scan movement", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
