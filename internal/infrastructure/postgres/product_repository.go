package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, productos, um, peso, tipo, cantidad, precio_unit, valor, peso_total`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Unit, &p.UnitWeight, &p.Category,
		&p.Quantity, &p.UnitPrice, &p.Value, &p.TotalWeight,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo con sus derivados ya calculados.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (productos, um, peso, tipo, cantidad, precio_unit, valor, peso_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Name, product.Unit, product.UnitWeight, product.Category,
		product.Quantity, product.UnitPrice, product.Value, product.TotalWeight,
	).Scan(&product.ID)
	if err != nil {
		return storageErr("insert product", err)
	}
	return nil
}

// GetByName obtiene la primera fila con ese nombre en orden (productos, peso).
// Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByName(name string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE productos = $1
		ORDER BY productos, peso
		LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get product", err)
	}
	return p, nil
}

// List devuelve el catálogo completo ordenado por (nombre, peso) ascendente.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products ORDER BY productos, peso`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, storageErr("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// ApplyQuantityDelta suma delta a la cantidad y recalcula valor y peso_total
// en un solo UPDATE, sobre la primera fila con ese nombre en orden
// (productos, peso). Devuelve el producto actualizado, o nil si el nombre no
// existe. Es la única mutación de cantidad permitida.
func (r *ProductRepo) ApplyQuantityDelta(name string, delta decimal.Decimal) (*entity.Product, error) {
	query := `
		UPDATE products
		SET cantidad   = cantidad + $2,
		    valor      = (cantidad + $2) * precio_unit,
		    peso_total = (cantidad + $2) * peso
		WHERE id = (
			SELECT id FROM products WHERE productos = $1
			ORDER BY productos, peso LIMIT 1
		)
		RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, name, delta))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("apply quantity delta", err)
	}
	return p, nil
}

// Count devuelve cuántos productos hay en el catálogo (para la siembra).
func (r *ProductRepo) Count() (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, storageErr("count products", err)
	}
	return n, nil
}
