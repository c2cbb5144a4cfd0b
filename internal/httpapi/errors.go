package httpapi

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"tracker/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

// errorHandler maps the service error taxonomy onto HTTP statuses.
func errorHandler(c *fiber.Ctx, err error) error {
	status, kind := classify(err)
	msg := err.Error()

	var fe *fiber.Error
	if errors.As(err, &fe) {
		msg = fe.Message
	}
	if status == fiber.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
		msg = "internal server error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: kind, Message: msg})
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized, "unauthorized"
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden, "forbidden"
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict, "conflict"
	case errors.As(err, &fe):
		return fe.Code, kindForStatus(fe.Code)
	default:
		return fiber.StatusInternalServerError, "internal"
	}
}

func kindForStatus(code int) string {
	switch code {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusMethodNotAllowed:
		return "method_not_allowed"
	case fiber.StatusConflict:
		return "conflict"
	case fiber.StatusRequestEntityTooLarge:
		return "payload_too_large"
	}
	if code >= fiber.StatusInternalServerError {
		return "internal"
	}
	return "error"
}
