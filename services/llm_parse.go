package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"
)

var errEmptyModelResponse = errors.New("empty model response")

var clothingTypeSynonyms = map[string]models.ClothingType{
	"shirt":     models.ClothingTypeTop,
	"t-shirt":   models.ClothingTypeTop,
	"tshirt":    models.ClothingTypeTop,
	"blouse":    models.ClothingTypeTop,
	"sweater":   models.ClothingTypeTop,
	"hoodie":    models.ClothingTypeTop,
	"dress":     models.ClothingTypeTop,
	"pants":     models.ClothingTypeBottom,
	"trousers":  models.ClothingTypeBottom,
	"jeans":     models.ClothingTypeBottom,
	"skirt":     models.ClothingTypeBottom,
	"shorts":    models.ClothingTypeBottom,
	"jacket":    models.ClothingTypeOuterwear,
	"coat":      models.ClothingTypeOuterwear,
	"blazer":    models.ClothingTypeOuterwear,
	"cardigan":  models.ClothingTypeOuterwear,
	"shoe":      models.ClothingTypeShoes,
	"sneakers":  models.ClothingTypeShoes,
	"boots":     models.ClothingTypeShoes,
	"sandals":   models.ClothingTypeShoes,
	"bag":       models.ClothingTypeAccessory,
	"hat":       models.ClothingTypeAccessory,
	"belt":      models.ClothingTypeAccessory,
	"scarf":     models.ClothingTypeAccessory,
	"jewelry":   models.ClothingTypeAccessory,
	"watch":     models.ClothingTypeAccessory,
	"glasses":   models.ClothingTypeAccessory,
}

var seasonSynonyms = map[string]models.Season{
	"autumn": models.SeasonFall,
}

func cleanAIResponseText(text string) string {
	cleanContent := strings.TrimSpace(text)
	cleanContent = strings.TrimPrefix(cleanContent, "```json")
	cleanContent = strings.TrimPrefix(cleanContent, "```")
	cleanContent = strings.TrimSuffix(cleanContent, "```")
	return strings.TrimSpace(cleanContent)
}

type detectionWire struct {
	DetectedItems *[]models.ClothingItem `json:"detectedItems"`
	StyleAnalysis models.StyleAnalysis   `json:"styleAnalysis"`
	ColorAnalysis models.ColorAnalysis   `json:"colorAnalysis"`
	// single garment answers
	Type models.ClothingType `json:"type"`
}

// ParseDetectionResponse turns model text into an analysis result. It accepts
// the full object, a bare array of items, or a single item object.
func ParseDetectionResponse(text string) (*models.AIAnalysisResult, error) {
	content := cleanAIResponseText(text)
	if content == "" {
		return nil, errEmptyModelResponse
	}

	result := &models.AIAnalysisResult{}
	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), &result.DetectedItems); err != nil {
			return nil, fmt.Errorf("malformed detection array: %w", err)
		}
	} else {
		var wire detectionWire
		if err := json.Unmarshal([]byte(content), &wire); err != nil {
			return nil, fmt.Errorf("malformed detection object: %w", err)
		}
		result.StyleAnalysis = wire.StyleAnalysis
		result.ColorAnalysis = wire.ColorAnalysis
		switch {
		case wire.DetectedItems != nil:
			result.DetectedItems = *wire.DetectedItems
		case wire.Type != "":
			var single models.ClothingItem
			if err := json.Unmarshal([]byte(content), &single); err != nil {
				return nil, fmt.Errorf("malformed detection item: %w", err)
			}
			result.DetectedItems = []models.ClothingItem{single}
		default:
			return nil, errors.New("detection response has no detectedItems")
		}
	}

	items := make([]models.ClothingItem, 0, len(result.DetectedItems))
	for i, item := range result.DetectedItems {
		normalized, ok := normalizeDetectedItem(item)
		if !ok {
			log.Printf("[Detect] Dropping item %d with unknown type %q", i, item.Type)
			continue
		}
		items = append(items, normalized)
	}
	result.DetectedItems = items
	if result.StyleAnalysis.AlternativeStyles == nil {
		result.StyleAnalysis.AlternativeStyles = []string{}
	}
	if result.ColorAnalysis.DominantColors == nil {
		result.ColorAnalysis.DominantColors = []string{}
	}
	return result, nil
}

func normalizeDetectedItem(item models.ClothingItem) (models.ClothingItem, bool) {
	itemType := models.ClothingType(languageutil.Normalize(string(item.Type)))
	if !itemType.Valid() {
		mapped, ok := clothingTypeSynonyms[string(itemType)]
		if !ok {
			return item, false
		}
		itemType = mapped
	}
	item.Type = itemType

	season := models.Season(languageutil.Normalize(string(item.Season)))
	if mapped, ok := seasonSynonyms[string(season)]; ok {
		season = mapped
	}
	if !season.Valid() {
		season = ""
	}
	item.Season = season

	styles := make([]string, 0, len(item.Style))
	for _, style := range item.Style {
		if tag := languageutil.Normalize(style); tag != "" {
			styles = append(styles, tag)
		}
	}
	item.Style = styles
	item.Confidence = clamp01(item.Confidence)
	return item, true
}

type candidateWire struct {
	ItemIDs      []string `json:"item_ids"`
	ItemIDsCamel []string `json:"itemIds"`
	Items        []struct {
		ID string `json:"id"`
	} `json:"items"`
	Style        string     `json:"style"`
	Scores       *SubScores `json:"scores"`
	ColorHarmony *float64   `json:"colorHarmony"`
}

// ParseStylingResponse accepts {"outfits": [...]} or a bare array.
func ParseStylingResponse(text string) ([]CandidateOutfit, error) {
	content := cleanAIResponseText(text)
	if content == "" {
		return nil, errEmptyModelResponse
	}

	var wires []candidateWire
	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), &wires); err != nil {
			return nil, fmt.Errorf("malformed outfit array: %w", err)
		}
	} else {
		var envelope struct {
			Outfits     []candidateWire `json:"outfits"`
			Suggestions []candidateWire `json:"suggestions"`
		}
		if err := json.Unmarshal([]byte(content), &envelope); err != nil {
			return nil, fmt.Errorf("malformed outfit object: %w", err)
		}
		wires = envelope.Outfits
		if wires == nil {
			wires = envelope.Suggestions
		}
		if wires == nil {
			return nil, errors.New("styling response has no outfits")
		}
	}

	candidates := make([]CandidateOutfit, 0, len(wires))
	for _, wire := range wires {
		ids := append([]string{}, wire.ItemIDs...)
		ids = append(ids, wire.ItemIDsCamel...)
		for _, item := range wire.Items {
			ids = append(ids, item.ID)
		}
		candidate := CandidateOutfit{ItemIDs: ids, Style: languageutil.Normalize(wire.Style)}
		if wire.Scores != nil {
			candidate.Scores = *wire.Scores
		}
		if wire.ColorHarmony != nil && (wire.Scores == nil || wire.Scores.Color == 0) {
			candidate.Scores.Color = *wire.ColorHarmony
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}
