package models

type AnalyzeImageIn struct {
	// base64 image or data URL
	Image string `json:"image" validate:"required"`
}

type GenerateOutfitIn struct {
	Items    []ClothingItem `json:"items" validate:"required,min=1,dive"`
	Occasion string         `json:"occasion" validate:"required,max=200"`
	Weather  string         `json:"weather" validate:"max=200"`
}

type AnalyzeImageResponse struct {
	Success bool              `json:"success"`
	Data    *AIAnalysisResult `json:"data"`
	Error   string            `json:"error,omitempty"`
}

type GenerateOutfitResponse struct {
	Success bool               `json:"success"`
	Data    []OutfitSuggestion `json:"data"`
	Error   string             `json:"error,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
