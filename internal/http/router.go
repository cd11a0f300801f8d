package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"hanmal/backend/internal/handler"
)

func NewRouter(
	translateHandler *handler.TranslateHandler,
	profileHandler *handler.ProfileHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	api := e.Group("/api")
	translateHandler.RegisterRoutes(api)
	profileHandler.RegisterRoutes(api)

	return e
}
