package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Esquema del inventario. Las columnas conservan los nombres históricos de la
// hoja de cálculo original: "productos" es el nombre del producto, "tipo" es
// la categoría en products y la dirección (entrada/salida) en movements.
// movements.producto es una referencia lógica por nombre, sin FK: los
// movimientos deben sobrevivir a renombres y borrados del producto.
const schema = `
CREATE TABLE IF NOT EXISTS products (
	id          BIGSERIAL PRIMARY KEY,
	productos   TEXT NOT NULL,
	um          TEXT NOT NULL DEFAULT '',
	peso        NUMERIC NOT NULL DEFAULT 0,
	tipo        TEXT NOT NULL DEFAULT '',
	cantidad    NUMERIC NOT NULL DEFAULT 0,
	precio_unit NUMERIC NOT NULL DEFAULT 0,
	valor       NUMERIC NOT NULL DEFAULT 0,
	peso_total  NUMERIC NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_products_nombre_peso ON products (productos, peso);

CREATE TABLE IF NOT EXISTS movements (
	id       BIGSERIAL PRIMARY KEY,
	producto TEXT NOT NULL,
	tipo     TEXT NOT NULL,
	cantidad NUMERIC NOT NULL,
	peso     NUMERIC NOT NULL DEFAULT 0,
	um       TEXT NOT NULL DEFAULT '',
	fecha    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_movements_fecha ON movements (fecha DESC);
`

// EnsureSchema crea las tablas si no existen. Se ejecuta una vez al arrancar,
// antes de la siembra del catálogo.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
