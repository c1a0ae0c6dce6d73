package entity

import "github.com/shopspring/decimal"

// Product representa una fila del catálogo: un producto en una clase de peso
// concreta. Puede haber varias filas con el mismo nombre y distinto peso
// unitario. Valor y PesoTotal son campos derivados y se recalculan siempre
// junto con la cantidad; PrecioUnit se fija al crear y los movimientos nunca
// lo modifican.
type Product struct {
	ID          int64
	Name        string          // columna "productos"
	Unit        string          // unidad de medida ("um")
	UnitWeight  decimal.Decimal // peso por unidad ("peso")
	Category    string          // clasificación libre ("tipo")
	Quantity    decimal.Decimal // stock actual; puede ser negativo (sin piso)
	UnitPrice   decimal.Decimal // "precio_unit"
	Value       decimal.Decimal // derivado: Quantity × UnitPrice ("valor")
	TotalWeight decimal.Decimal // derivado: Quantity × UnitWeight ("peso_total")
}

// Recalculate recomputa los dos campos derivados a partir de la cantidad
// actual. Es la única forma válida de mantener la invariante
// valor == cantidad × precio_unit y peso_total == cantidad × peso.
func (p *Product) Recalculate() {
	p.Value = p.Quantity.Mul(p.UnitPrice)
	p.TotalWeight = p.Quantity.Mul(p.UnitWeight)
}
