package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/Reciclaje-api/internal/application/analytics"
	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resultado neto del día y del mes en curso.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryResponse (today, month, top_materials[5], date_label).
// No requiere parámetros; las fechas se calculan automáticamente en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}

	summary, err := h.uc.GetSummary(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(summary)
}

// GetPeriod godoc
// @Summary      Resultado neto de un periodo
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  true  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  true  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.PeriodSummary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/period [get]
func (h *DashboardHandler) GetPeriod(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return unauthorized(c)
	}
	from, ok := queryDate(c, "from", false)
	if !ok || from == nil {
		return badDate(c, "from")
	}
	to, ok := queryDate(c, "to", true)
	if !ok || to == nil {
		return badDate(c, "to")
	}

	out, err := h.uc.GetPeriod(c.Context(), companyID, *from, *to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// queryDate lee un parámetro YYYY-MM-DD. nil si viene vacío; ok=false si el formato es inválido.
// Con endOfDay el resultado es el último instante de ese día.
func queryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, bool) {
	s := c.Query(key)
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

func badDate(c *fiber.Ctx, key string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: key + " debe tener formato YYYY-MM-DD",
	})
}
