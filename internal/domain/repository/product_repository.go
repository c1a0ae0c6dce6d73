package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para el catálogo (DIP).
// GetByName y ApplyQuantityDelta resuelven por nombre a la primera fila en
// orden (productos, peso) ascendente; devuelven nil si no hay coincidencia.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByName(name string) (*entity.Product, error)
	// List devuelve el catálogo completo ordenado por (nombre, peso) ascendente.
	List() ([]*entity.Product, error)
	// ApplyQuantityDelta suma delta a la cantidad y recalcula valor y
	// peso_total en la misma operación. Devuelve el producto ya actualizado,
	// o nil si el nombre no existe.
	ApplyQuantityDelta(name string, delta decimal.Decimal) (*entity.Product, error)
	Count() (int64, error)
}
