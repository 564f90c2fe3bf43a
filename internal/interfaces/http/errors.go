package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-comercial-api/internal/application/dto"
	"github.com/jhoicas/gestion-comercial-api/internal/domain"
)

// writeError traduce errores de dominio a HTTP.
//
//	VALIDATION          → 400
//	NOT_FOUND           → 404
//	DUPLICATE           → 409
//	INSUFFICIENT_STOCK  → 409 (+ available)
//	INVALID_TRANSITION  → 409
//	PERSISTENCE/otros   → 500
func writeError(c *fiber.Ctx, err error) error {
	if se, ok := domain.AsSaleError(err); ok {
		body := dto.ErrorResponse{Code: string(se.Kind), Message: se.Message}
		status := fiber.StatusInternalServerError
		switch se.Kind {
		case domain.SaleErrInvalidInput:
			status = fiber.StatusBadRequest
		case domain.SaleErrNotFound:
			status = fiber.StatusNotFound
		case domain.SaleErrInsufficientStock:
			status = fiber.StatusConflict
			available := se.Available
			body.Available = &available
		case domain.SaleErrInvalidTransition:
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(body)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
