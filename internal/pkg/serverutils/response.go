package serverutils

import (
	"errors"

	"aura-ops-be/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Code:    fiber.StatusOK,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response {
	return Response{
		Success: false,
		Code:    code,
		Message: message,
	}
}

// StatusFor maps the apperror taxonomy onto HTTP statuses. Upstream failures
// are the remote system's fault, so they surface as 502 rather than 500.
func StatusFor(err error) int {
	var validationErr *apperror.ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest
	}
	var authErr *apperror.UpstreamAuthError
	if errors.As(err, &authErr) {
		return fiber.StatusBadGateway
	}
	var upstreamErr *apperror.UpstreamRequestError
	if errors.As(err, &upstreamErr) {
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}

// HandleError writes the envelope for a service error. Controllers call this
// instead of mapping statuses by hand.
func HandleError(ctx *fiber.Ctx, err error) error {
	status := StatusFor(err)
	return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
}
