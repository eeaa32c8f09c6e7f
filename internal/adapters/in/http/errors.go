package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"swiftparcel/internal/core/application/usecases/commands"
	"swiftparcel/internal/core/domain/model/order"
	"swiftparcel/internal/core/domain/services"
	"swiftparcel/internal/pkg/errs"
)

// respondError maps application errors onto HTTP statuses:
// validation failures are 400, missing objects 404, rejected state changes
// 409, provider trouble 502, everything else 500.
func respondError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFor(err), errorResponse{
		Code:    statusFor(err),
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest

	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound

	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, order.ErrCourierAlreadyAssigned),
		errors.Is(err, order.ErrDestinationLocked),
		errors.Is(err, commands.ErrOrderNotPayable),
		errors.Is(err, commands.ErrCourierNotEligible),
		errors.Is(err, services.ErrNoCourierAvailable):
		return http.StatusConflict

	case errors.Is(err, errs.ErrGatewayUnavailable):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

func readBody(ctx echo.Context) ([]byte, error) {
	defer ctx.Request().Body.Close()
	return io.ReadAll(ctx.Request().Body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
