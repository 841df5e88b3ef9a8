package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"

	"wardrobeapi/models"
)

type ClothingAnalyzerProvider interface {
	AnalyzeImage(ctx context.Context, imagePayload string) (*models.AIAnalysisResult, error)
	GenerateOutfitSuggestions(ctx context.Context, items []models.ClothingItem, occasion, weather string) ([]models.OutfitSuggestion, error)
}

// ClothingAnalyzer runs image analysis and outfit generation against the
// configured detector and stylist. Cache, Images and Usage are optional.
type ClothingAnalyzer struct {
	Config   AIConfig
	Detector ClothingDetector
	Stylist  OutfitStylist
	Cache    AnalysisCacheProvider
	Images   ImageStoreProvider
	Usage    UsageRecorder
}

func NewClothingAnalyzer(cfg AIConfig, detector ClothingDetector, stylist OutfitStylist) (*ClothingAnalyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if detector == nil {
		return nil, &ConfigurationError{Key: "detector", Message: "is required"}
	}
	if stylist == nil {
		return nil, &ConfigurationError{Key: "stylist", Message: "is required"}
	}
	return &ClothingAnalyzer{
		Config:   cfg,
		Detector: detector,
		Stylist:  stylist,
		Usage:    NoopUsageRecorder{},
	}, nil
}

// AnalyzeImage detects the garments on a base64 image and keeps the confident ones.
func (a *ClothingAnalyzer) AnalyzeImage(ctx context.Context, imagePayload string) (*models.AIAnalysisResult, error) {
	image, err := DecodeImagePayload(imagePayload)
	if err != nil {
		return nil, err
	}

	if a.Cache != nil {
		if cached, ok := a.Cache.Get(ctx, image.Hash); ok {
			analysisCacheHitCnt.Inc()
			log.Printf("[Analyze] Cache hit for image %s", image.Hash[:12])
			return cached, nil
		}
	}

	started := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, a.Config.RequestTimeout)
	detection, err := a.Detector.DetectClothing(callCtx, image.Data, image.MimeType)
	err = settleCall(callCtx, detection == nil, err)
	cancel()

	var llm *LLMResponse
	if detection != nil {
		llm = &detection.Usage
	}
	a.observe(models.OperationAnalyze, llm, started, err)
	if err != nil {
		collabErr := newCollaboratorError("clothing detection", err)
		log.Printf("[Analyze] Detection failed for image %s: %v", image.Hash[:12], err)
		sentry.CaptureException(collabErr)
		a.record(ctx, newUsage(models.OperationAnalyze, llm, started, err))
		return nil, collabErr
	}

	result := detection.Analysis
	detected := len(result.DetectedItems)
	result.DetectedItems = FilterDetections(result.DetectedItems, a.Config.ConfidenceThreshold, a.Config.MaxDetections)
	detectionsFilteredCnt.WithLabelValues("detected").Add(float64(detected))
	detectionsFilteredCnt.WithLabelValues("kept").Add(float64(len(result.DetectedItems)))
	if result.StyleAnalysis.AlternativeStyles == nil {
		result.StyleAnalysis.AlternativeStyles = []string{}
	}
	if result.ColorAnalysis.DominantColors == nil {
		result.ColorAnalysis.DominantColors = []string{}
	}

	for i := range result.DetectedItems {
		result.DetectedItems[i].Style = slices.Clone(result.DetectedItems[i].Style)
		if result.DetectedItems[i].Style == nil {
			result.DetectedItems[i].Style = []string{}
		}
		if result.DetectedItems[i].ID == "" {
			result.DetectedItems[i].ID = detectedItemID(image.Hash, i)
		}
	}

	if a.Images != nil && len(result.DetectedItems) > 0 {
		if imageURL, err := a.Images.StoreImage(ctx, image); err != nil {
			log.Printf("[Analyze] Failed to store image %s: %v", image.Hash[:12], err)
			sentry.CaptureException(err)
		} else {
			for i := range result.DetectedItems {
				if result.DetectedItems[i].ImageURL == "" {
					result.DetectedItems[i].ImageURL = imageURL
				}
			}
		}
	}

	usage := newUsage(models.OperationAnalyze, llm, started, nil)
	usage.ItemCount = detected
	usage.ResultCount = len(result.DetectedItems)
	if result.StyleAnalysis.DominantStyle != "" {
		usage.Styles = append(usage.Styles, result.StyleAnalysis.DominantStyle)
	}
	usage.Styles = append(usage.Styles, result.StyleAnalysis.AlternativeStyles...)
	a.record(ctx, usage)

	log.Printf("[Analyze] Image %s: %d detected, %d kept", image.Hash[:12], detected, len(result.DetectedItems))
	if a.Cache != nil {
		a.Cache.Set(ctx, image.Hash, &result)
	}
	return &result, nil
}

// GenerateOutfitSuggestions asks the stylist for outfits built from items and
// returns them ranked by weighted confidence.
func (a *ClothingAnalyzer) GenerateOutfitSuggestions(ctx context.Context, items []models.ClothingItem, occasion, weather string) ([]models.OutfitSuggestion, error) {
	wardrobe, err := prepareWardrobe(items)
	if err != nil {
		return nil, err
	}
	occasion = strings.TrimSpace(occasion)
	if occasion == "" {
		return nil, newValidationError("occasion", "occasion is required")
	}
	weather = strings.TrimSpace(weather)

	req := StylingRequest{
		Items:           wardrobe,
		Occasion:        occasion,
		Weather:         weather,
		Weights:         a.Config.Weights,
		StyleCategories: a.Config.StyleCategories,
		ColorPalettes:   a.Config.ColorPalettes,
		MaxSuggestions:  a.Config.MaxSuggestions,
	}

	started := time.Now()
	callCtx, cancel := context.WithTimeout(ctx, a.Config.RequestTimeout)
	styling, err := a.Stylist.SuggestOutfits(callCtx, req)
	err = settleCall(callCtx, styling == nil, err)
	cancel()

	var llm *LLMResponse
	if styling != nil {
		llm = &styling.Usage
	}
	a.observe(models.OperationGenerate, llm, started, err)
	usage := newUsage(models.OperationGenerate, llm, started, err)
	usage.ItemCount = len(wardrobe)
	usage.Occasion = StrPointer(occasion)
	usage.Weather = StrPointer(weather)
	if err != nil {
		collabErr := newCollaboratorError("outfit generation", err)
		log.Printf("[Outfit] Generation failed for %q: %v", occasion, err)
		sentry.CaptureException(collabErr)
		a.record(ctx, usage)
		return nil, collabErr
	}

	suggestions := RankSuggestions(styling.Candidates, wardrobe, occasion, a.Config)
	suggestionsReturned.Observe(float64(len(suggestions)))
	usage.ResultCount = len(suggestions)
	for _, suggestion := range suggestions {
		usage.Styles = append(usage.Styles, suggestion.Style)
	}
	a.record(ctx, usage)

	log.Printf("[Outfit] %d candidates, %d suggestions for %q", len(styling.Candidates), len(suggestions), occasion)
	return suggestions, nil
}

// prepareWardrobe validates items and assigns stable ids where missing.
func prepareWardrobe(items []models.ClothingItem) ([]models.ClothingItem, error) {
	if len(items) == 0 {
		return nil, newValidationError("items", "at least one clothing item is required")
	}
	wardrobe := make([]models.ClothingItem, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		field := fmt.Sprintf("items[%d]", i)
		if !item.Type.Valid() {
			return nil, newValidationError(field+".type", fmt.Sprintf("unknown clothing type %q", item.Type))
		}
		if item.Season != "" && !item.Season.Valid() {
			return nil, newValidationError(field+".season", fmt.Sprintf("unknown season %q", item.Season))
		}
		if item.Confidence < 0 || item.Confidence > 1 {
			return nil, newValidationError(field+".confidence", "must be between 0 and 1")
		}
		item.Style = slices.Clone(item.Style)
		if item.ID == "" {
			item.ID = wardrobeItemID(i, item)
		}
		if _, dup := seen[item.ID]; dup {
			return nil, newValidationError(field+".id", fmt.Sprintf("duplicate item id %q", item.ID))
		}
		seen[item.ID] = struct{}{}
		wardrobe[i] = item
	}
	return wardrobe, nil
}

func detectedItemID(imageHash string, index int) string {
	return uuid.NewSHA1(outfitNamespace, []byte(imageHash+"#"+strconv.Itoa(index))).String()
}

func wardrobeItemID(index int, item models.ClothingItem) string {
	key := strings.Join([]string{
		strconv.Itoa(index),
		string(item.Type),
		item.Category,
		item.Color,
		item.Pattern,
	}, "|")
	return uuid.NewSHA1(outfitNamespace, []byte(key)).String()
}

// settleCall reports the deadline even when a collaborator ignored it.
func settleCall(callCtx context.Context, missing bool, err error) error {
	if ctxErr := callCtx.Err(); ctxErr != nil && (err == nil || !errors.Is(err, ctxErr)) {
		if err == nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	if err == nil && missing {
		return errEmptyModelResponse
	}
	return err
}

func (a *ClothingAnalyzer) observe(operation models.LLMOperation, llm *LLMResponse, started time.Time, err error) {
	provider := string(a.Config.Provider)
	if llm != nil && llm.Provider != "" {
		provider = llm.Provider
	}
	status := "completed"
	if err != nil {
		status = "failed"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
	}
	collaboratorCallCnt.WithLabelValues(string(operation), provider, status).Inc()
	collaboratorCallDuration.WithLabelValues(string(operation), provider).Observe(time.Since(started).Seconds())
}

func (a *ClothingAnalyzer) record(ctx context.Context, usage *models.LLMUsage) {
	if a.Usage == nil {
		return
	}
	a.Usage.RecordUsage(ctx, usage)
}
