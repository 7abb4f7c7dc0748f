package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fys/fabrica-pinceles-api/internal/application/dto"
	"github.com/fys/fabrica-pinceles-api/internal/domain"
)

// respondError mapea errores de dominio a respuestas HTTP. Los errores
// estructurados exponen su detalle en Detail para que el frontend arme
// mensajes precisos (faltantes por línea, stock vigente, etc).
func respondError(c *fiber.Ctx, err error) error {
	var wouldNegative *domain.WouldGoNegativeError
	if errors.As(err, &wouldNegative) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "NEGATIVE_STOCK", Message: wouldNegative.Error(), Detail: wouldNegative,
		})
	}
	var duplicates *domain.DuplicateStockLinesError
	if errors.As(err, &duplicates) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DUPLICATE_STOCK_LINES", Message: duplicates.Error(), Detail: duplicates,
		})
	}
	var insufficient *domain.InsufficientStockError
	if errors.As(err, &insufficient) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_STOCK", Message: insufficient.Error(), Detail: insufficient.Shortfalls,
		})
	}
	var insufficientFG *domain.InsufficientFinishedStockError
	if errors.As(err, &insufficientFG) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "INSUFFICIENT_FINISHED_STOCK", Message: insufficientFG.Error(), Detail: insufficientFG,
		})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidOrderState):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// badBody respuesta estándar para bodies que no parsean.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
