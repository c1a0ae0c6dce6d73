package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products. Las claves JSON conservan
// los nombres de columna originales del inventario.
type CreateProductRequest struct {
	Name       string          `json:"productos"`
	Unit       string          `json:"um"`
	UnitWeight decimal.Decimal `json:"peso"`
	Category   string          `json:"tipo"`
	Quantity   decimal.Decimal `json:"cantidad"`
	UnitPrice  decimal.Decimal `json:"precio_unit"`
}

// ProductResponse representación JSON de un producto del catálogo.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"productos"`
	Unit        string          `json:"um"`
	UnitWeight  decimal.Decimal `json:"peso"`
	Category    string          `json:"tipo"`
	Quantity    decimal.Decimal `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unit"`
	Value       decimal.Decimal `json:"valor"`
	TotalWeight decimal.Decimal `json:"peso_total"`
}

// FromProduct mapea la entidad a su respuesta JSON.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Unit:        p.Unit,
		UnitWeight:  p.UnitWeight,
		Category:    p.Category,
		Quantity:    p.Quantity,
		UnitPrice:   p.UnitPrice,
		Value:       p.Value,
		TotalWeight: p.TotalWeight,
	}
}

// FromProducts mapea una lista de entidades; devuelve slice vacío (no nil)
// para que el JSON sea [] y no null.
func FromProducts(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromProduct(p))
	}
	return out
}

// SeedRow fila cruda de la carga inicial del catálogo (hoja de cálculo).
// Los numéricos ausentes llegan en cero; las filas sin nombre se descartan
// aguas arriba o en SeedIfEmpty.
type SeedRow struct {
	Name       string
	Unit       string
	UnitWeight decimal.Decimal
	Category   string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
}
