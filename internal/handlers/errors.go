package handlers

import (
	"errors"
	"net/http"

	"imovia/internal/services"

	"github.com/labstack/echo/v4"
)

// httpError maps service-layer errors onto the HTTP error taxonomy.
// Unknown errors become an opaque 500 so persistence detail never
// leaks to clients.
func httpError(err error) error {
	if ve, ok := services.AsValidationError(err); ok {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]string{
			"field": ve.Field,
			"error": ve.Message,
		})
	}

	switch {
	case errors.Is(err, services.ErrPropertyNotFound),
		errors.Is(err, services.ErrAdminNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrAccountDisabled):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrSelfDelete):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
