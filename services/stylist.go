package services

import (
	"context"

	"wardrobeapi/models"
)

// LLMResponse is the raw text of a model call plus its token accounting.
type LLMResponse struct {
	Provider           string `json:"provider"`
	Model              string `json:"model"`
	Response           string `json:"response"`
	InputTokenCount    int32  `json:"input_token_count"`
	Thoughts           string `json:"thoughts"`
	ThoughtsTokenCount int32  `json:"thoughts_token_count"`
	OutputTokenCount   int32  `json:"output_token_count"`
	TotalTokenCount    int32  `json:"total_token_count"`
}

type DetectionResult struct {
	Analysis models.AIAnalysisResult
	Usage    LLMResponse
}

// SubScores are the four normalized [0,1] signals an outfit is ranked by.
type SubScores struct {
	Style    float64 `json:"style"`
	Color    float64 `json:"color"`
	Season   float64 `json:"season"`
	Occasion float64 `json:"occasion"`
}

// CandidateOutfit is an unranked combination proposed by a stylist.
type CandidateOutfit struct {
	ItemIDs []string
	Style   string
	Scores  SubScores
}

type StylingRequest struct {
	Items           []models.ClothingItem `json:"wardrobe"`
	Occasion        string                `json:"occasion"`
	Weather         string                `json:"weather"`
	Weights         ScoringWeights        `json:"weights"`
	StyleCategories []string              `json:"stylePreferences"`
	ColorPalettes   ColorPalettes         `json:"colorPalettes"`
	MaxSuggestions  int                   `json:"maxSuggestions"`
}

type StylingResult struct {
	Candidates []CandidateOutfit
	Usage      LLMResponse
}

// ClothingDetector finds garments on a single image.
type ClothingDetector interface {
	DetectClothing(ctx context.Context, image []byte, mimeType string) (*DetectionResult, error)
}

// OutfitStylist proposes scored outfit candidates for a wardrobe.
type OutfitStylist interface {
	SuggestOutfits(ctx context.Context, req StylingRequest) (*StylingResult, error)
}

const detectionPrompt = `Analyze the clothing visible on this image. For every garment provide its type, category, color, pattern, style tags, season suitability and your detection confidence.
Return ONLY JSON with this structure:
{
  "detectedItems": [
    {
      "type": "top|bottom|outerwear|shoes|accessory",
      "category": "string, e.g. t-shirt, jeans, blazer",
      "color": "main color name",
      "pattern": "solid|striped|plaid|floral|printed|...",
      "season": "spring|summer|fall|winter",
      "style": ["casual|formal|business|sporty|bohemian|vintage|minimalist|streetwear"],
      "confidence": 0.0-1.0
    }
  ],
  "styleAnalysis": {"dominantStyle": "string", "confidence": 0.0-1.0, "alternativeStyles": ["string"]},
  "colorAnalysis": {"dominantColors": ["string"], "colorScheme": "warm|cool|neutral|monochrome|complementary"}
}
If there is no clothing on the image return {"detectedItems": []}.`

const stylingSystemPrompt = `You are a professional fashion stylist. Create outfit combinations from the user's wardrobe only, judged on:
- Style compatibility
- Color harmony
- Season and weather appropriateness
- Occasion suitability
Score every criterion between 0.0 and 1.0. Reference wardrobe items strictly by their "id".
Return ONLY JSON with this structure:
{
  "outfits": [
    {
      "item_ids": ["id", "id"],
      "style": "dominant style of the outfit",
      "scores": {"style": 0.0-1.0, "color": 0.0-1.0, "season": 0.0-1.0, "occasion": 0.0-1.0}
    }
  ]
}`
