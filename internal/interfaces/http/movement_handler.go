package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/ledger"
)

const dateLayout = "2006-01-02"

// MovementHandler maneja las peticiones HTTP del registro de movimientos.
type MovementHandler struct {
	uc *ledger.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *ledger.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar movimiento de stock
// @Description  Inserta el movimiento y actualiza el producto en una sola
// @Description  transacción; si el producto no existe no queda rastro del intento.
// @Tags         movements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "producto, tipo (entrada|salida), cantidad, peso, um"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, prod, err := h.uc.RecordMovement(c.Context(), in)
	if err != nil {
		return errorStatus(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RegisterMovementResponse{
		Movement: dto.FromMovement(mov),
		Product:  dto.FromProduct(prod),
	})
}

// List godoc
// @Summary      Historial completo de movimientos
// @Tags         movements
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListMovements(c.Context())
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(dto.FromMovements(list))
}

// ListRange godoc
// @Summary      Movimientos por rango de fechas
// @Description  Incluye desde start 00:00:00 hasta end 23:59:59; cada fila
// @Description  trae la unidad de medida actual del producto (um_actual).
// @Tags         movements
// @Produce      json
// @Param        start  query  string  true  "Fecha inicial (YYYY-MM-DD)"
// @Param        end    query  string  true  "Fecha final (YYYY-MM-DD)"
// @Success      200  {array}   dto.MovementWithUnitResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements/range [get]
func (h *MovementHandler) ListRange(c *fiber.Ctx) error {
	start, end, err := parseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end deben ser fechas YYYY-MM-DD"})
	}
	list, err := h.uc.ListMovementsInRange(c.Context(), start, end)
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(dto.FromMovementsWithUnit(list))
}

// parseRange interpreta start/end como fechas locales.
func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, startStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.ParseInLocation(dateLayout, endStr, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
