package controllers

import (
	"net/http"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wardrobeapi/models"
	"wardrobeapi/services"
)

// bodyLimit leaves room for a base64 encoded image of services.MaxImageBytes.
const bodyLimit = "30M"

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterValidation("clothingtype", models.ValidateClothingType)
	v.RegisterValidation("season", models.ValidateSeason)
	return &CustomValidator{validator: v}
}

func SetupServer(analyzer services.ClothingAnalyzerProvider) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(requestMetrics)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	clothesController := ClothesController{Analyzer: analyzer}
	aiGroup := e.Group("/api/ai")
	clothesController.ClothingRoutes(aiGroup)

	return e
}
