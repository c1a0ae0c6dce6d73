package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC *catalog.CatalogUseCase
	LedgerUC  *ledger.LedgerUseCase
}

// Router registra las rutas de la API. Rutas y formas de respuesta calcan la
// API original del inventario; la autenticación queda fuera de alcance.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:name", productHandler.GetByName)

	// Movimientos (motor de ledger)
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Get("/range", movementHandler.ListRange)
	movements.Get("/", movementHandler.List)
	movements.Post("/", movementHandler.Register)

	// Exportación XLSX
	exportHandler := NewExportHandler(deps.CatalogUC, deps.LedgerUC)
	api.Get("/export", exportHandler.Products)
	api.Get("/export/movements", exportHandler.Movements)
}
