package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const weightSumTolerance = 1e-6

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

type OutfitRankerKind string

const (
	RankerModel     OutfitRankerKind = "model"
	RankerHeuristic OutfitRankerKind = "heuristic"
)

// ScoringWeights combine the four outfit sub-scores; they must sum to 1.
type ScoringWeights struct {
	Style    float64 `json:"style"`
	Color    float64 `json:"color"`
	Season   float64 `json:"season"`
	Occasion float64 `json:"occasion"`
}

func (w ScoringWeights) Sum() float64 {
	return w.Style + w.Color + w.Season + w.Occasion
}

type ColorPalettes struct {
	Warm    []string `json:"warm"`
	Cool    []string `json:"cool"`
	Neutral []string `json:"neutral"`
}

type AIConfig struct {
	ConfidenceThreshold     float64
	MaxDetections           int
	MaxSuggestions          int
	Weights                 ScoringWeights
	WeatherCompatibleCutoff float64
	RequestTimeout          time.Duration
	StyleCategories         []string
	ColorPalettes           ColorPalettes

	Provider       Provider
	OutfitRanker   OutfitRankerKind
	DetectionModel string
	StylingModel   string
	// BaseURL overrides the provider endpoint, e.g. for a gateway
	BaseURL string
}

func DefaultAIConfig() AIConfig {
	return AIConfig{
		ConfidenceThreshold: 0.85,
		MaxDetections:       10,
		MaxSuggestions:      5,
		Weights: ScoringWeights{
			Style:    0.4,
			Color:    0.3,
			Season:   0.2,
			Occasion: 0.1,
		},
		WeatherCompatibleCutoff: 0.5,
		RequestTimeout:          45 * time.Second,
		StyleCategories: []string{
			"casual",
			"formal",
			"business",
			"sporty",
			"bohemian",
			"vintage",
			"minimalist",
			"streetwear",
		},
		ColorPalettes: ColorPalettes{
			Warm:    []string{"#8B4513", "#D4A574", "#CD853F"},
			Cool:    []string{"#4A5859", "#7B9EA8", "#B5C7CC"},
			Neutral: []string{"#2C1810", "#8B7355", "#D4A574"},
		},
		Provider:     ProviderGemini,
		OutfitRanker: RankerModel,
	}
}

// LoadAIConfig reads overrides from the environment on top of DefaultAIConfig
// and validates the result.
func LoadAIConfig() (AIConfig, error) {
	cfg := DefaultAIConfig()
	var err error

	if cfg.ConfidenceThreshold, err = envFloat("AI_CONFIDENCE_THRESHOLD", cfg.ConfidenceThreshold); err != nil {
		return cfg, err
	}
	if cfg.MaxDetections, err = envInt("AI_MAX_DETECTIONS", cfg.MaxDetections); err != nil {
		return cfg, err
	}
	if cfg.MaxSuggestions, err = envInt("AI_MAX_SUGGESTIONS", cfg.MaxSuggestions); err != nil {
		return cfg, err
	}
	if cfg.Weights.Style, err = envFloat("AI_STYLE_WEIGHT", cfg.Weights.Style); err != nil {
		return cfg, err
	}
	if cfg.Weights.Color, err = envFloat("AI_COLOR_WEIGHT", cfg.Weights.Color); err != nil {
		return cfg, err
	}
	if cfg.Weights.Season, err = envFloat("AI_SEASON_WEIGHT", cfg.Weights.Season); err != nil {
		return cfg, err
	}
	if cfg.Weights.Occasion, err = envFloat("AI_OCCASION_WEIGHT", cfg.Weights.Occasion); err != nil {
		return cfg, err
	}
	if cfg.WeatherCompatibleCutoff, err = envFloat("AI_WEATHER_CUTOFF", cfg.WeatherCompatibleCutoff); err != nil {
		return cfg, err
	}
	if raw := GetEnv("AI_REQUEST_TIMEOUT", ""); raw != "" {
		timeout, parseErr := time.ParseDuration(raw)
		if parseErr != nil {
			return cfg, &ConfigurationError{Key: "AI_REQUEST_TIMEOUT", Message: parseErr.Error()}
		}
		cfg.RequestTimeout = timeout
	}

	cfg.Provider = Provider(strings.ToLower(GetEnv("AI_PROVIDER", string(cfg.Provider))))
	cfg.OutfitRanker = OutfitRankerKind(strings.ToLower(GetEnv("AI_OUTFIT_RANKER", string(cfg.OutfitRanker))))
	cfg.DetectionModel = GetEnv("AI_DETECTION_MODEL", "")
	cfg.StylingModel = GetEnv("AI_STYLING_MODEL", "")
	cfg.BaseURL = GetEnv("AI_BASE_URL", "")

	return cfg, cfg.Validate()
}

func (cfg AIConfig) Validate() error {
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return &ConfigurationError{Key: "confidence threshold", Message: fmt.Sprintf("%v is outside [0,1]", cfg.ConfidenceThreshold)}
	}
	if cfg.MaxDetections <= 0 {
		return &ConfigurationError{Key: "max detections", Message: fmt.Sprintf("%d must be positive", cfg.MaxDetections)}
	}
	if cfg.MaxSuggestions <= 0 {
		return &ConfigurationError{Key: "max suggestions", Message: fmt.Sprintf("%d must be positive", cfg.MaxSuggestions)}
	}
	weights := map[string]float64{
		"style weight":    cfg.Weights.Style,
		"color weight":    cfg.Weights.Color,
		"season weight":   cfg.Weights.Season,
		"occasion weight": cfg.Weights.Occasion,
	}
	for key, value := range weights {
		if value < 0 || math.IsNaN(value) {
			return &ConfigurationError{Key: key, Message: fmt.Sprintf("%v must not be negative", value)}
		}
	}
	if sum := cfg.Weights.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return &ConfigurationError{Key: "weights", Message: fmt.Sprintf("sum to %v, expected 1", sum)}
	}
	if cfg.WeatherCompatibleCutoff < 0 || cfg.WeatherCompatibleCutoff > 1 {
		return &ConfigurationError{Key: "weather cutoff", Message: fmt.Sprintf("%v is outside [0,1]", cfg.WeatherCompatibleCutoff)}
	}
	if cfg.RequestTimeout <= 0 {
		return &ConfigurationError{Key: "request timeout", Message: "must be positive"}
	}
	switch cfg.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return &ConfigurationError{Key: "provider", Message: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
	switch cfg.OutfitRanker {
	case RankerModel, RankerHeuristic:
	default:
		return &ConfigurationError{Key: "outfit ranker", Message: fmt.Sprintf("unknown ranker %q", cfg.OutfitRanker)}
	}
	return nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback, &ConfigurationError{Key: key, Message: err.Error()}
	}
	return value, nil
}

func envInt(key string, fallback int) (int, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, &ConfigurationError{Key: key, Message: err.Error()}
	}
	return value, nil
}
