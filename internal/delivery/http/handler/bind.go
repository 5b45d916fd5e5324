package handler

import (
	"errors"
	"strings"

	"fate-inyeon/internal/delivery/http/middleware"
	"fate-inyeon/internal/pkg/validate"

	"github.com/gofiber/fiber/v3"
)

// bindBody decodes and validates the request body. Validation failures keep
// their field messages; decode failures are a plain bad request.
func bindBody(c fiber.Ctx, out any) error {
	err := c.Bind().Body(out)
	if err == nil {
		return nil
	}
	if errors.Is(err, validate.ErrInvalid) {
		msg := strings.TrimPrefix(err.Error(), validate.ErrInvalid.Error()+": ")
		return middleware.NewAppError(fiber.StatusBadRequest, msg, nil, err)
	}
	return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
}

func accountIDFromCtx(c fiber.Ctx) (string, error) {
	id, ok := middleware.AccountID(c)
	if !ok {
		return "", middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	return id, nil
}

func internalError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, "Internal server error", nil, err)
}
