package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/feraben-crm/internal/application/dto"
	"github.com/jhoicas/feraben-crm/internal/domain"
)

// writeError traduce un error de dominio a status HTTP y cuerpo {code, message}.
func writeError(c *fiber.Ctx, err error) error {
	status, code, msg := fiber.StatusInternalServerError, "INTERNAL", "error interno"
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status, code, msg = fiber.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, msg = fiber.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, code, msg = fiber.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, msg = fiber.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrDuplicate):
		status, code, msg = fiber.StatusConflict, "DUPLICATE", err.Error()
	case errors.Is(err, domain.ErrStore):
		status, code, msg = fiber.StatusBadGateway, "STORE_UNAVAILABLE", "almacén de datos no disponible"
	}
	resp := dto.ErrorResponse{Code: code, Message: msg}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	if status >= fiber.StatusInternalServerError {
		// El request logger registra la causa; el cliente no la recibe.
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(resp)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
