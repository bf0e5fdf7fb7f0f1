package controller

import (
	"errors"

	"github.com/benbeisheim/chessvar-backend/internal/model"
	"github.com/benbeisheim/chessvar-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// errorStatus maps service and engine errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrBadNotation):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrIllegalMove):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrNotInGame),
		errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrGameFull),
		errors.Is(err, service.ErrGameExists),
		errors.Is(err, model.ErrAlreadyQueued):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func sendError(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": err.Error()}
	if reason := model.ReasonOf(err); reason != "" {
		body["reason"] = reason
	}
	return c.Status(errorStatus(err)).JSON(body)
}
