package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductName string          `json:"producto"`
	Type        string          `json:"tipo"` // entrada | salida
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitWeight  decimal.Decimal `json:"peso"`
	Unit        string          `json:"um"`
}

// MovementResponse representación JSON de un movimiento del registro.
type MovementResponse struct {
	ID          int64           `json:"id"`
	ProductName string          `json:"producto"`
	Type        string          `json:"tipo"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitWeight  decimal.Decimal `json:"peso"`
	Unit        string          `json:"um"`
	Date        time.Time       `json:"fecha"`
}

// MovementWithUnitResponse movimiento más la unidad de medida actual del
// producto (vacía si el producto ya no existe con ese nombre).
type MovementWithUnitResponse struct {
	MovementResponse
	CurrentUnit string `json:"um_actual"`
}

// RegisterMovementResponse resultado de registrar un movimiento: la fila
// insertada y el producto ya actualizado.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movimiento"`
	Product  ProductResponse  `json:"producto"`
}

// FromMovement mapea la entidad a su respuesta JSON.
func FromMovement(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductName: m.ProductName,
		Type:        m.Type,
		Quantity:    m.Quantity,
		UnitWeight:  m.UnitWeight,
		Unit:        m.Unit,
		Date:        m.Date,
	}
}

// FromMovements mapea una lista de movimientos.
func FromMovements(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromMovement(m))
	}
	return out
}

// FromMovementsWithUnit mapea el resultado del listado por rango.
func FromMovementsWithUnit(list []*entity.MovementWithUnit) []MovementWithUnitResponse {
	out := make([]MovementWithUnitResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementWithUnitResponse{
			MovementResponse: FromMovement(&m.Movement),
			CurrentUnit:      m.CurrentUnit,
		})
	}
	return out
}
