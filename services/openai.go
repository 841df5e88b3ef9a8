package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	defaultOpenAIModel         = "gpt-4o"
	openAIDetectionMaxTokens   = 1000
	openAIStylingMaxTokens     = 1500
	openAIStylingTemperature   = 0.7
	openAIDetectionTemperature = 0.2
)

// OpenAIStylist detects clothing and proposes outfits with OpenAI chat models.
type OpenAIStylist struct {
	client         openai.Client
	DetectionModel string
	StylingModel   string
}

func NewOpenAIStylist(apiKey string, cfg AIConfig, opts ...option.RequestOption) (*OpenAIStylist, error) {
	if apiKey == "" {
		return nil, &ConfigurationError{Key: "OPENAI_API_KEY", Message: "is required for the openai provider"}
	}
	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	stylist := &OpenAIStylist{
		client:         openai.NewClient(append(clientOpts, opts...)...),
		DetectionModel: cfg.DetectionModel,
		StylingModel:   cfg.StylingModel,
	}
	if stylist.DetectionModel == "" {
		stylist.DetectionModel = defaultOpenAIModel
	}
	if stylist.StylingModel == "" {
		stylist.StylingModel = defaultOpenAIModel
	}
	return stylist, nil
}

func (s *OpenAIStylist) DetectClothing(ctx context.Context, image []byte, mimeType string) (*DetectionResult, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.DetectionModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(detectionPrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
		MaxCompletionTokens: openai.Int(openAIDetectionMaxTokens),
		Temperature:         openai.Float(openAIDetectionTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}
	response, err := s.complete(ctx, params)
	if err != nil {
		return nil, err
	}

	analysis, err := ParseDetectionResponse(response.Response)
	if err != nil {
		log.Printf("[OpenAI] Unparseable detection response: %s", response.Response)
		return nil, err
	}
	return &DetectionResult{Analysis: *analysis, Usage: *response}, nil
}

func (s *OpenAIStylist) SuggestOutfits(ctx context.Context, req StylingRequest) (*StylingResult, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode styling request: %w", err)
	}
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.StylingModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(stylingSystemPrompt),
			openai.UserMessage(fmt.Sprintf("Create up to %d outfits for this request:\n%s", req.MaxSuggestions, payload)),
		},
		MaxCompletionTokens: openai.Int(openAIStylingMaxTokens),
		Temperature:         openai.Float(openAIStylingTemperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	}
	response, err := s.complete(ctx, params)
	if err != nil {
		return nil, err
	}

	candidates, err := ParseStylingResponse(response.Response)
	if err != nil {
		log.Printf("[OpenAI] Unparseable styling response: %s", response.Response)
		return nil, err
	}
	return &StylingResult{Candidates: candidates, Usage: *response}, nil
}

func (s *OpenAIStylist) complete(ctx context.Context, params openai.ChatCompletionNewParams) (*LLMResponse, error) {
	completion, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		log.Printf("[OpenAI] Chat completion failed on %s: %v", params.Model, err)
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, errEmptyModelResponse
	}
	choice := completion.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("model refused: %s", choice.Message.Refusal)
	}

	response := &LLMResponse{
		Provider:         string(ProviderOpenAI),
		Model:            completion.Model,
		Response:         choice.Message.Content,
		InputTokenCount:  int32(completion.Usage.PromptTokens),
		OutputTokenCount: int32(completion.Usage.CompletionTokens),
		TotalTokenCount:  int32(completion.Usage.TotalTokens),
	}
	log.Printf("[OpenAI] %s tokens in=%d out=%d", response.Model, response.InputTokenCount, response.OutputTokenCount)
	return response, nil
}
