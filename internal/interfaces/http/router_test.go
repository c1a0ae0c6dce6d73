package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/memory"
	apphttp "github.com/tu-usuario/almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp monta la app Fiber con los casos de uso reales sobre el
// almacén en memoria: mismo wiring que cmd/api, sin PostgreSQL.
func buildTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	gate := domain.NewWriteGate()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: catalog.NewCatalogUseCase(store.Products(), gate),
		LedgerUC:  ledger.NewLedgerUseCase(store, store.Movements(), gate),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// assertDecEqual compara valores decimales por magnitud, sin depender de la
// escala con que se serializaron ("200" y "200.0" son iguales).
func assertDecEqual(t *testing.T, want string, got any) {
	t.Helper()
	g, err := decimal.NewFromString(fmt.Sprint(got))
	require.NoError(t, err, "valor decimal ilegible: %v", got)
	assert.True(t, decimal.RequireFromString(want).Equal(g), "esperado %s, llegó %v", want, got)
}

func createBolt(t *testing.T, app *fiber.App) {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"productos":   "Bolt",
		"um":          "kg",
		"peso":        "0.01",
		"tipo":        "hardware",
		"cantidad":    "100",
		"precio_unit": "2.0",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestPostProducts_CreaConDerivados(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"productos":   "Bolt",
		"um":          "kg",
		"peso":        "0.01",
		"tipo":        "hardware",
		"cantidad":    "100",
		"precio_unit": "2.0",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var p map[string]any
	decodeBody(t, resp, &p)
	assert.Equal(t, "Bolt", p["productos"])
	assertDecEqual(t, "200", p["valor"])
	assertDecEqual(t, "1", p["peso_total"])
}

func TestPostProducts_NombreVacio400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{
		"um": "kg", "precio_unit": "1",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var e map[string]string
	decodeBody(t, resp, &e)
	assert.Equal(t, "VALIDATION", e["code"])
}

func TestGetProducts_ListaVacia(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []any
	decodeBody(t, resp, &list)
	assert.Empty(t, list, "lista vacía es 200 con [], no error")
}

// unavailableProductRepo simula un catálogo con el almacenamiento caído: toda
// lectura falla con ErrStorageUnavailable ya envuelto, como lo devuelve el
// adaptador PostgreSQL ante un fallo de conectividad.
type unavailableProductRepo struct{}

func (unavailableProductRepo) Create(*entity.Product) error { return unavailableErr("insert product") }

func (unavailableProductRepo) GetByName(string) (*entity.Product, error) {
	return nil, unavailableErr("get product")
}

func (unavailableProductRepo) List() ([]*entity.Product, error) {
	return nil, unavailableErr("list products")
}

func (unavailableProductRepo) ApplyQuantityDelta(string, decimal.Decimal) (*entity.Product, error) {
	return nil, unavailableErr("apply quantity delta")
}

func (unavailableProductRepo) Count() (int64, error) { return 0, unavailableErr("count products") }

func unavailableErr(op string) error {
	return fmt.Errorf("%s: %w", op, domain.ErrStorageUnavailable)
}

// Almacenamiento no disponible: 503 con código STORAGE, nunca un 500 genérico.
func TestGetProducts_AlmacenamientoCaido503(t *testing.T) {
	store := memory.NewStore()
	gate := domain.NewWriteGate()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CatalogUC: catalog.NewCatalogUseCase(unavailableProductRepo{}, gate),
		LedgerUC:  ledger.NewLedgerUseCase(store, store.Movements(), gate),
	})

	resp := doJSON(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var e map[string]string
	decodeBody(t, resp, &e)
	assert.Equal(t, "STORAGE", e["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestPostMovements_EntradaActualizaProducto(t *testing.T) {
	app := buildTestApp(t)
	createBolt(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/movements", map[string]any{
		"producto": "Bolt",
		"tipo":     "entrada",
		"cantidad": "50",
		"peso":     "0.01",
		"um":       "kg",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out struct {
		Movimiento map[string]any `json:"movimiento"`
		Producto   map[string]any `json:"producto"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, "entrada", out.Movimiento["tipo"])
	assert.NotEmpty(t, out.Movimiento["fecha"], "la fecha la asigna el servidor")
	assertDecEqual(t, "150", out.Producto["cantidad"])
	assertDecEqual(t, "300", out.Producto["valor"])
}

// Producto inexistente: 404 y sin rastro del intento en el historial.
func TestPostMovements_ProductoFantasma404SinRastro(t *testing.T) {
	app := buildTestApp(t)
	createBolt(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/movements", map[string]any{
		"producto": "Ghost",
		"tipo":     "salida",
		"cantidad": "5",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/movements", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var movs []map[string]any
	decodeBody(t, resp, &movs)
	assert.Empty(t, movs)
}

func TestPostMovements_TipoDesconocido400(t *testing.T) {
	app := buildTestApp(t)
	createBolt(t, app)

	resp := doJSON(t, app, http.MethodPost, "/api/movements", map[string]any{
		"producto": "Bolt",
		"tipo":     "ajuste",
		"cantidad": "5",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetMovementsRange_FechasInvalidas400(t *testing.T) {
	app := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/movements/range?start=ayer&end=hoy", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestGetExport_DevuelveXLSX(t *testing.T) {
	app := buildTestApp(t)
	createBolt(t, app)

	resp := doJSON(t, app, http.MethodGet, "/api/export", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inventario.xlsx")

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotEmpty(t, body)
}
