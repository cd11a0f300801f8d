package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"hanmal/backend/internal/model"
	"hanmal/backend/internal/service"
)

type TranslateHandler struct {
	service service.TranslationService
}

// Request/Response types

type variationRequest struct {
	Original    string   `json:"original"`
	Translation string   `json:"translation"`
	ProfileID   string   `json:"profileId"`
	CustomRules []string `json:"customRules,omitempty"`
}

type alternativesResponse struct {
	Word         string              `json:"word"`
	Alternatives []model.Alternative `json:"alternatives"`
}

func NewTranslateHandler(service service.TranslationService) *TranslateHandler {
	return &TranslateHandler{service: service}
}

func (h *TranslateHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/translate", h.Translate)
	g.POST("/translate/variation", h.Variation)
	g.GET("/translate/alternatives", h.Alternatives)
}

// Translate runs the translate, back-translate and score pipeline for one
// input text. The source language is detected, never supplied.
func (h *TranslateHandler) Translate(c echo.Context) error {
	var req model.TranslationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	result, err := h.service.Translate(c.Request().Context(), req)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Variation returns an alternate phrasing of an already produced translation.
func (h *TranslateHandler) Variation(c echo.Context) error {
	var req variationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	result, err := h.service.Variation(c.Request().Context(), req.Original, req.Translation, req.ProfileID, req.CustomRules)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Alternatives returns other translations of a single word, with nuance notes.
func (h *TranslateHandler) Alternatives(c echo.Context) error {
	word := c.QueryParam("word")
	if word == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "word is required"})
	}
	sentence := c.QueryParam("context")
	source := c.QueryParam("source")
	target := c.QueryParam("target")

	alts, err := h.service.Alternatives(c.Request().Context(), word, sentence, source, target)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, alternativesResponse{Word: word, Alternatives: alts})
}
