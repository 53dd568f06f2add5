package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pharmabill/internal/application/dto"
	"github.com/jhoicas/pharmabill/internal/domain"
	"github.com/jhoicas/pharmabill/pkg/logger"
)

// writeError traduce errores del flujo y de dominio a respuestas HTTP.
//
//	VALIDATION        → 400 (envío en curso → 409 IN_FLIGHT)
//	SERVER_REJECTION  → 422, mensaje del servidor tal cual
//	TRANSIENT         → 503
//	ErrNotFound       → 404
//	resto             → 500
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var we *domain.WorkflowError
	if errors.As(err, &we) {
		switch we.Kind {
		case domain.KindValidation:
			if errors.Is(err, domain.ErrSubmissionInFlight) {
				return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "IN_FLIGHT", Message: we.Error()})
			}
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: string(we.Kind), Message: we.Error()})
		case domain.KindServerRejection:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: string(we.Kind), Message: we.Error()})
		case domain.KindTransient:
			log.Warn().Err(we.Err).Str("path", c.Path()).Msg("fallo transitorio")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: string(we.Kind), Message: we.Error()})
		}
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
