package models

import (
	"slices"

	"github.com/go-playground/validator"
)

type ClothingType string

const (
	ClothingTypeTop       ClothingType = "top"
	ClothingTypeBottom    ClothingType = "bottom"
	ClothingTypeOuterwear ClothingType = "outerwear"
	ClothingTypeShoes     ClothingType = "shoes"
	ClothingTypeAccessory ClothingType = "accessory"
)

var ClothingTypes = []ClothingType{
	ClothingTypeTop,
	ClothingTypeBottom,
	ClothingTypeOuterwear,
	ClothingTypeShoes,
	ClothingTypeAccessory,
}

func (t ClothingType) Valid() bool {
	return slices.Contains(ClothingTypes, t)
}

type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

var Seasons = []Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

func (s Season) Valid() bool {
	return slices.Contains(Seasons, s)
}

func ValidateClothingType(fl validator.FieldLevel) bool {
	return ClothingType(fl.Field().String()).Valid()
}

func ValidateSeason(fl validator.FieldLevel) bool {
	return Season(fl.Field().String()).Valid()
}

// ClothingItem is a single garment, either detected on an image or sent back by
// the client as part of its wardrobe.
type ClothingItem struct {
	ID         string       `json:"id"`
	Type       ClothingType `json:"type" validate:"required,clothingtype"`
	Category   string       `json:"category" validate:"max=100"`
	Color      string       `json:"color" validate:"max=100"`
	Pattern    string       `json:"pattern" validate:"max=100"`
	Season     Season       `json:"season" validate:"omitempty,season"`
	Style      []string     `json:"style"`
	ImageURL   string       `json:"imageUrl"`
	Confidence float64      `json:"confidence" validate:"min=0,max=1"`
}

type OutfitSuggestion struct {
	ID                string         `json:"id"`
	Items             []ClothingItem `json:"items"`
	Style             string         `json:"style"`
	Occasion          string         `json:"occasion"`
	Confidence        float64        `json:"confidence"`
	WeatherCompatible bool           `json:"weatherCompatible"`
	ColorHarmony      float64        `json:"colorHarmony"`
}

type StyleAnalysis struct {
	DominantStyle     string   `json:"dominantStyle"`
	Confidence        float64  `json:"confidence"`
	AlternativeStyles []string `json:"alternativeStyles"`
}

type ColorAnalysis struct {
	DominantColors []string `json:"dominantColors"`
	ColorScheme    string   `json:"colorScheme"`
}

type AIAnalysisResult struct {
	DetectedItems []ClothingItem `json:"detectedItems"`
	StyleAnalysis StyleAnalysis  `json:"styleAnalysis"`
	ColorAnalysis ColorAnalysis  `json:"colorAnalysis"`
}

// Clone returns a deep copy so cached results are never shared with callers.
func (r *AIAnalysisResult) Clone() *AIAnalysisResult {
	if r == nil {
		return nil
	}
	out := *r
	out.DetectedItems = make([]ClothingItem, len(r.DetectedItems))
	for i, item := range r.DetectedItems {
		item.Style = slices.Clone(item.Style)
		out.DetectedItems[i] = item
	}
	out.StyleAnalysis.AlternativeStyles = slices.Clone(r.StyleAnalysis.AlternativeStyles)
	out.ColorAnalysis.DominantColors = slices.Clone(r.ColorAnalysis.DominantColors)
	return &out
}
