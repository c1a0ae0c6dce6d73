package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direcciones de movimiento de stock.
const (
	MovementTypeEntrada = "entrada" // suma al stock
	MovementTypeSalida  = "salida"  // resta del stock
)

// Movement es una fila del registro de movimientos: append-only, nunca se
// modifica ni se borra. Unit y UnitWeight son copias del producto al momento
// del movimiento (no referencias vivas), para que el historial conserve sus
// etiquetas aunque el producto cambie después.
type Movement struct {
	ID          int64
	ProductName string          // referencia lógica por nombre ("producto")
	Type        string          // entrada | salida ("tipo")
	Quantity    decimal.Decimal // magnitud, siempre > 0 ("cantidad")
	UnitWeight  decimal.Decimal // copia del peso unitario ("peso")
	Unit        string          // copia de la unidad de medida ("um")
	Date        time.Time       // asignada por el servidor al insertar ("fecha")
}

// SignedDelta devuelve el cambio de stock con signo: +Quantity para entrada,
// -Quantity para salida.
func (m *Movement) SignedDelta() decimal.Decimal {
	if m.Type == MovementTypeSalida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// MovementWithUnit es el resultado del listado por rango de fechas: el
// movimiento más la unidad de medida *actual* del producto (LEFT JOIN por
// nombre). CurrentUnit queda vacío si el producto ya no existe o fue
// renombrado; el movimiento aparece igual.
type MovementWithUnit struct {
	Movement
	CurrentUnit string
}
