package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
)

func newCatalog(t *testing.T) *catalog.CatalogUseCase {
	t.Helper()
	store := memory.NewStore()
	return catalog.NewCatalogUseCase(store.Products(), domain.NewWriteGate())
}

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

// Al crear, valor y peso_total se calculan en el momento del alta.
func TestCreateProduct_CalculaDerivados(t *testing.T) {
	uc := newCatalog(t)

	p, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Harina",
		Unit:       "kg",
		UnitWeight: d(t, "1"),
		Category:   "insumos",
		Quantity:   d(t, "12.5"),
		UnitPrice:  d(t, "4"),
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.True(t, p.Value.Equal(d(t, "50")))
	assert.True(t, p.TotalWeight.Equal(d(t, "12.5")))
}

func TestCreateProduct_Validacion(t *testing.T) {
	uc := newCatalog(t)

	// Nombre vacío
	_, err := uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		UnitPrice: d(t, "1"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Precio negativo
	_, err = uc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:      "Clavo",
		UnitPrice: d(t, "-0.01"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	// Nada quedó en el catálogo
	list, err := uc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

// El listado sale ordenado por (nombre, peso) ascendente, estable.
func TestListProducts_OrdenNombrePeso(t *testing.T) {
	uc := newCatalog(t)
	ctx := context.Background()

	for _, in := range []dto.CreateProductRequest{
		{Name: "Tornillo", UnitWeight: d(t, "0.05"), UnitPrice: d(t, "1")},
		{Name: "Clavo", UnitWeight: d(t, "0.02"), UnitPrice: d(t, "1")},
		{Name: "Tornillo", UnitWeight: d(t, "0.01"), UnitPrice: d(t, "1")},
	} {
		_, err := uc.CreateProduct(ctx, in)
		require.NoError(t, err)
	}

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Clavo", list[0].Name)
	assert.Equal(t, "Tornillo", list[1].Name)
	assert.True(t, list[1].UnitWeight.Equal(d(t, "0.01")))
	assert.True(t, list[2].UnitWeight.Equal(d(t, "0.05")))
}

func TestFindProduct_NoExiste(t *testing.T) {
	uc := newCatalog(t)
	_, err := uc.FindProduct(context.Background(), "Ghost")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Siembra
// ──────────────────────────────────────────────────────────────────────────────

// La siembra descarta filas sin nombre, acepta numéricos en cero y recalcula
// los derivados (no copia los de la hoja).
func TestSeedIfEmpty_DescartaFilasSinNombre(t *testing.T) {
	uc := newCatalog(t)
	ctx := context.Background()

	rows := []dto.SeedRow{
		{Name: "Arroz", Unit: "kg", UnitWeight: d(t, "1"), Quantity: d(t, "30"), UnitPrice: d(t, "2")},
		{Name: ""}, // sin nombre: se salta en silencio
		{Name: "Azúcar"},
	}
	inserted, err := uc.SeedIfEmpty(ctx, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	arroz := list[0]
	assert.Equal(t, "Arroz", arroz.Name)
	assert.True(t, arroz.Value.Equal(d(t, "60")), "valor recalculado al sembrar")
	assert.True(t, arroz.TotalWeight.Equal(d(t, "30")))

	// Azúcar llegó sin numéricos: todo en cero, derivados en cero
	azucar := list[1]
	assert.True(t, azucar.Quantity.IsZero())
	assert.True(t, azucar.Value.IsZero())
}

// La siembra solo corre con el catálogo vacío: una segunda pasada no inserta.
func TestSeedIfEmpty_SoloConCatalogoVacio(t *testing.T) {
	uc := newCatalog(t)
	ctx := context.Background()

	rows := []dto.SeedRow{{Name: "Arroz", UnitPrice: d(t, "2")}}
	inserted, err := uc.SeedIfEmpty(ctx, rows)
	require.NoError(t, err)
	require.Equal(t, 1, inserted)

	inserted, err = uc.SeedIfEmpty(ctx, rows)
	require.NoError(t, err)
	assert.Zero(t, inserted, "siembra idempotente al arrancar")

	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
