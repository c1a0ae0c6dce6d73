package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/catalog"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/infrastructure/excel"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler genera las descargas XLSX de catálogo y movimientos.
type ExportHandler struct {
	catalogUC *catalog.CatalogUseCase
	ledgerUC  *ledger.LedgerUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(catalogUC *catalog.CatalogUseCase, ledgerUC *ledger.LedgerUseCase) *ExportHandler {
	return &ExportHandler{catalogUC: catalogUC, ledgerUC: ledgerUC}
}

// Products godoc
// @Summary      Exportar catálogo a XLSX
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  file
// @Router       /api/export [get]
func (h *ExportHandler) Products(c *fiber.Ctx) error {
	list, err := h.catalogUC.ListProducts(c.Context())
	if err != nil {
		return errorStatus(c, err)
	}
	buf, err := excel.WriteProducts(list)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: "error al crear archivo Excel"})
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=inventario.xlsx`)
	return c.Send(buf.Bytes())
}

// Movements godoc
// @Summary      Exportar movimientos a XLSX
// @Description  start/end (YYYY-MM-DD) son opcionales; sin ellos exporta todo
// @Description  el historial.
// @Tags         export
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        start  query  string  false  "Fecha inicial (YYYY-MM-DD)"
// @Param        end    query  string  false  "Fecha final (YYYY-MM-DD)"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/movements [get]
func (h *ExportHandler) Movements(c *fiber.Ctx) error {
	startStr, endStr := c.Query("start"), c.Query("end")

	var list []*entity.Movement
	if startStr != "" && endStr != "" {
		start, end, err := parseRange(startStr, endStr)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end deben ser fechas YYYY-MM-DD"})
		}
		withUnit, err := h.ledgerUC.ListMovementsInRange(c.Context(), start, end)
		if err != nil {
			return errorStatus(c, err)
		}
		list = make([]*entity.Movement, 0, len(withUnit))
		for _, m := range withUnit {
			mov := m.Movement
			list = append(list, &mov)
		}
	} else {
		var err error
		list, err = h.ledgerUC.ListMovements(c.Context())
		if err != nil {
			return errorStatus(c, err)
		}
	}

	buf, err := excel.WriteMovements(list)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "EXPORT", Message: "error al crear archivo Excel"})
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename=movimientos.xlsx`)
	return c.Send(buf.Bytes())
}
