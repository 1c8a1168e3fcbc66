package serverutils

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers panics from downstream handlers and turns
// unhandled errors into the standard envelope so the frontend never sees a
// bare 500 body.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				_ = ctx.Status(fiber.StatusInternalServerError).
					JSON(ErrorResponse(fiber.StatusInternalServerError, fmt.Sprintf("panic: %v", r)))
			}
		}()

		if err := ctx.Next(); err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
			}
			return HandleError(ctx, err)
		}
		return nil
	}
}
