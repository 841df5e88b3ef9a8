package controllers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"wardrobeapi/models"
	"wardrobeapi/services"
)

const (
	errNoImage          = "No image provided"
	errMissingParams    = "Missing required parameters"
	errAnalyzeFailed    = "Failed to analyze image"
	errGenerationFailed = "Failed to generate outfit suggestions"
)

type ClothesController struct {
	Analyzer services.ClothingAnalyzerProvider
}

func (controller *ClothesController) ClothingRoutes(g *echo.Group) {
	g.POST("/analyze", controller.Analyze)
	g.POST("/generate-outfit", controller.GenerateOutfit)
}

func (controller *ClothesController) Analyze(c echo.Context) error {
	var req models.AnalyzeImageIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errNoImage})
	}

	analysis, err := controller.Analyzer.AnalyzeImage(c.Request().Context(), req.Image)
	if err != nil {
		if services.IsValidationError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		}
		log.Printf("[Analyze] Request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errAnalyzeFailed})
	}

	return c.JSON(http.StatusOK, models.AnalyzeImageResponse{Success: true, Data: analysis})
}

func (controller *ClothesController) GenerateOutfit(c echo.Context) error {
	var req models.GenerateOutfitIn
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
	}
	if len(req.Items) == 0 || req.Occasion == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: errMissingParams})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: validationMessage(err)})
	}

	suggestions, err := controller.Analyzer.GenerateOutfitSuggestions(c.Request().Context(), req.Items, req.Occasion, req.Weather)
	if err != nil {
		if services.IsValidationError(err) {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		}
		log.Printf("[Outfit] Request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: errGenerationFailed})
	}

	return c.JSON(http.StatusOK, models.GenerateOutfitResponse{Success: true, Data: suggestions})
}

func validationMessage(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}
