package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hanmal/backend/internal/model"
	"hanmal/backend/internal/service"
)

type ProfileHandler struct {
	service service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func (h *ProfileHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/profiles", h.List)
	g.POST("/profiles", h.Create)
	g.GET("/profiles/:id", h.Get)
	g.PUT("/profiles/:id", h.Update)
	g.DELETE("/profiles/:id", h.Delete)
}

func (h *ProfileHandler) List(c echo.Context) error {
	profiles, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) Get(c echo.Context) error {
	profile, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Create(c echo.Context) error {
	var profile model.TranslationProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	profile.ID = ""

	saved, err := h.service.Save(c.Request().Context(), profile)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, saved)
}

func (h *ProfileHandler) Update(c echo.Context) error {
	var profile model.TranslationProfile
	if err := c.Bind(&profile); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}
	profile.ID = c.Param("id")

	saved, err := h.service.Save(c.Request().Context(), profile)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, saved)
}

func (h *ProfileHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
