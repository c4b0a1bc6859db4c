package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewErrorHandler answers framework errors (unknown routes, recovered
// panics) through WriteResponse with an empty list. report, when set, is
// called for 5xx errors.
func NewErrorHandler(logger *zap.Logger, report func(*fiber.Ctx, error)) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}

		logger.Warn("request error",
			zap.Int("status", code),
			zap.String("error", err.Error()),
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
		)

		if report != nil && code >= fiber.StatusInternalServerError {
			report(c, err)
		}

		return WriteResponse(c, code, EmptyList())
	}
}
