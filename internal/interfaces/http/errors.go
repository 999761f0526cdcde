package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
)

// respondError traduce un error de dominio a status HTTP + dto.ErrorResponse.
//
//   - domain.ValidationErrors → 400 VALIDATION con detalle por campo
//     (422 si todos los errores son de distribución de mano de obra).
//   - inventario insuficiente → 409 INSUFFICIENT_INVENTORY.
//   - referencia desconocida → 400 VALIDATION (antes que NOT_FOUND, porque la envuelve).
func respondError(c *fiber.Ctx, err error) error {
	var (
		verrs   domain.ValidationErrors
		stock   *domain.InsufficientInventoryError
		unknown *domain.UnknownReferenceError
	)
	switch {
	case errors.As(err, &verrs):
		if onlyMismatch(verrs) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code:    dto.CodeAllocationMismatch,
				Message: "la distribución de mano de obra no cuadra",
				Details: dto.FieldErrors(err),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: dto.FieldErrors(err),
		})
	case errors.As(err, &stock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    dto.CodeInsufficientStock,
			Message: stock.Error(),
			Details: dto.FieldErrors(err),
		})
	case errors.As(err, &unknown),
		errors.Is(err, domain.ErrInvalidNumericInput),
		errors.Is(err, domain.ErrMissingRequiredSelection):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: "datos inválidos",
			Details: dto.FieldErrors(err),
		})
	case errors.Is(err, domain.ErrLaborAllocationMismatch):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code:    dto.CodeAllocationMismatch,
			Message: err.Error(),
			Details: dto.FieldErrors(err),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func onlyMismatch(verrs domain.ValidationErrors) bool {
	if len(verrs) == 0 {
		return false
	}
	for _, e := range verrs {
		if !errors.Is(e, domain.ErrLaborAllocationMismatch) {
			return false
		}
	}
	return true
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "company_id requerido"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
}
