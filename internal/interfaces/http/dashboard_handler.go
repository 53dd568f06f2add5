package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pharmabill/internal/application/dashboard"
	"github.com/jhoicas/pharmabill/internal/application/dto"
)

// DashboardHandler expone los contadores alimentados por el canal de eventos.
type DashboardHandler struct {
	counters *dashboard.Counters
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(counters *dashboard.Counters) *DashboardHandler {
	return &DashboardHandler{counters: counters}
}

// GetCounters godoc
// @Summary      Contadores de facturas de la cuenta
// @Description  Ventas, devoluciones y compras registradas desde el arranque del servicio.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dashboard.Summary
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dashboard/counters [get]
func (h *DashboardHandler) GetCounters(c *fiber.Ctx) error {
	email := GetEmail(c)
	if email == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: "UNAUTHORIZED", Message: "email no encontrado en el token",
		})
	}
	return c.JSON(h.counters.Summary(email))
}
