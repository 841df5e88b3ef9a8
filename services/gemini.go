package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"google.golang.org/genai"
)

// LLMModelName is a Gemini model the stylist can run on.
type LLMModelName int32

const (
	Pro25 LLMModelName = iota
	Flash25
	FlashLite25
	Flash20
)

func (t LLMModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case Flash25:
		return "gemini-2.5-flash"
	case FlashLite25:
		return "gemini-2.5-flash-lite"
	case Flash20:
		return "gemini-2.0-flash"
	default:
		return "gemini-2.0-flash"
	}
}

const (
	detectionMaxOutputTokens = 4096
	stylingMaxOutputTokens   = 8192
)

func floatPointer(f float32) *float32 {
	return &f
}

type ResponseWithThoughts struct {
	Thoughts string `json:"thoughts"`
	Text     string `json:"text"`
}

// GoogleLLMStylist detects clothing and proposes outfits with Gemini.
type GoogleLLMStylist struct {
	client         *genai.Client
	DetectionModel string
	StylingModel   string
}

func NewGoogleLLMStylist(ctx context.Context, apiKey string, cfg AIConfig) (*GoogleLLMStylist, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Key: "GOOGLE_API_KEY", Message: "is required for the gemini provider"}
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	stylist := &GoogleLLMStylist{
		client:         client,
		DetectionModel: cfg.DetectionModel,
		StylingModel:   cfg.StylingModel,
	}
	if stylist.DetectionModel == "" {
		stylist.DetectionModel = Flash25.String()
	}
	if stylist.StylingModel == "" {
		stylist.StylingModel = Flash25.String()
	}
	return stylist, nil
}

func (s *GoogleLLMStylist) DetectClothing(ctx context.Context, image []byte, mimeType string) (*DetectionResult, error) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
		{Text: detectionPrompt},
	}
	response, err := s.generate(ctx, s.DetectionModel, parts, &genai.GenerateContentConfig{
		MaxOutputTokens:  detectionMaxOutputTokens,
		Temperature:      floatPointer(0.2),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, err
	}

	analysis, err := ParseDetectionResponse(response.Response)
	if err != nil {
		log.Printf("[Gemini] Unparseable detection response: %s", response.Response)
		return nil, err
	}
	return &DetectionResult{Analysis: *analysis, Usage: *response}, nil
}

func (s *GoogleLLMStylist) SuggestOutfits(ctx context.Context, req StylingRequest) (*StylingResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode styling request: %w", err)
	}
	parts := []*genai.Part{
		{Text: fmt.Sprintf("Create up to %d outfits for this request:\n%s", req.MaxSuggestions, payload)},
	}
	response, err := s.generate(ctx, s.StylingModel, parts, &genai.GenerateContentConfig{
		MaxOutputTokens:  stylingMaxOutputTokens,
		Temperature:      floatPointer(0.7),
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: stylingSystemPrompt}},
		},
	})
	if err != nil {
		return nil, err
	}

	candidates, err := ParseStylingResponse(response.Response)
	if err != nil {
		log.Printf("[Gemini] Unparseable styling response: %s", response.Response)
		return nil, err
	}
	return &StylingResult{Candidates: candidates, Usage: *response}, nil
}

func (s *GoogleLLMStylist) generate(ctx context.Context, model string, parts []*genai.Part, config *genai.GenerateContentConfig) (*LLMResponse, error) {
	result, err := s.client.Models.GenerateContent(ctx, model, []*genai.Content{{Role: genai.RoleUser, Parts: parts}}, config)
	if err != nil {
		log.Printf("[Gemini] GenerateContent failed on %s: %v", model, err)
		return nil, err
	}

	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("content violation: %s %s", result.PromptFeedback.BlockReason, result.PromptFeedback.BlockReasonMessage)
	}

	text, err := GetFirstCandidateTextWithThoughts(result)
	if err != nil {
		return nil, err
	}

	response := &LLMResponse{
		Provider: string(ProviderGemini),
		Model:    model,
		Response: text.Text,
		Thoughts: text.Thoughts,
	}
	if result.UsageMetadata != nil {
		response.InputTokenCount = result.UsageMetadata.PromptTokenCount
		response.ThoughtsTokenCount = result.UsageMetadata.ThoughtsTokenCount
		response.OutputTokenCount = result.UsageMetadata.CandidatesTokenCount
		response.TotalTokenCount = result.UsageMetadata.TotalTokenCount
	}
	log.Printf("[Gemini] %s tokens in=%d out=%d thoughts=%d", model, response.InputTokenCount, response.OutputTokenCount, response.ThoughtsTokenCount)
	return response, nil
}

// GetFirstCandidateTextWithThoughts splits the answer text from thought parts
// and fails on blocked candidates.
func GetFirstCandidateTextWithThoughts(result *genai.GenerateContentResponse) (*ResponseWithThoughts, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, errEmptyModelResponse
	}
	var thinkingContent string
	for _, c := range result.Candidates {
		for _, rating := range c.SafetyRatings {
			if rating.Blocked {
				return nil, fmt.Errorf("content violation: blocked for %s", rating.Category)
			}
		}
		if c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part.Thought && part.Text != "" {
				thinkingContent = part.Text
			}
		}
	}
	text := result.Text()
	if text == "" {
		return nil, errors.Join(errEmptyModelResponse, fmt.Errorf("finish reason %s", result.Candidates[0].FinishReason))
	}
	return &ResponseWithThoughts{
		Thoughts: thinkingContent,
		Text:     text,
	}, nil
}
