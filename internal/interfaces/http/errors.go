package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: ErrUnknownProduct envuelve ErrInvalidQuantity y debe evaluarse antes.
var errorMappings = []errorMapping{
	{domain.ErrUnknownProduct, fiber.StatusConflict, "UNKNOWN_PRODUCT", "el medicamento no tiene lotes registrados"},
	{domain.ErrInvalidQuantity, fiber.StatusBadRequest, "INVALID_QUANTITY", "la cantidad debe ser un entero positivo"},
	{domain.ErrInvalidCost, fiber.StatusBadRequest, "INVALID_COST", "el costo unitario no puede ser negativo"},
	{domain.ErrInvalidBatch, fiber.StatusBadRequest, "INVALID_BATCH", "lote inválido"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "el stock cambió, intente de nuevo"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION", "transición de estado no permitida"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
}

// handleError traduce errores de dominio a la respuesta HTTP. Lo no reconocido es 500 y se registra.
func handleError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: m.message})
		}
	}
	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
