package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"hanmal/backend/internal/service"
	"hanmal/backend/internal/service/translation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeServiceError(c echo.Context, err error) error {
	var provErr *translation.ProviderError
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrCannotDelete):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "built-in profiles cannot be deleted"})
	case errors.As(err, &provErr):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "translation provider failed"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
