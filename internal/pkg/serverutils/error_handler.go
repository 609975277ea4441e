package serverutils

import (
	"errors"

	"marknote-be/internal/pkg/apperror"
	"marknote-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error onto an HTTP status code.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	kind, ok := apperror.KindOf(err)
	if !ok {
		return fiber.StatusInternalServerError
	}
	switch kind {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindStorage:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware renders errors returned further down the chain as
// the JSON envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	handle := ErrorHandler(log)
	return func(ctx *fiber.Ctx) error {
		if err := ctx.Next(); err != nil {
			return handle(ctx, err)
		}
		return nil
	}
}

// ErrorHandler is the fiber.Config variant for errors raised outside the
// middleware chain. Storage and unknown failures never leak their cause.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusFor(err)

		message := err.Error()
		var appErr *apperror.Error
		switch {
		case errors.As(err, &appErr) && appErr.Kind == apperror.KindStorage:
			message = appErr.Message
		case code >= fiber.StatusInternalServerError:
			message = "Server Error"
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": code,
				"error":  err.Error(),
			})
		}

		return ctx.Status(code).JSON(ErrorResponse(message))
	}
}
