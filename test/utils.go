package test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/services"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func NewJSONRequestRaw(method string, target string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

// FakePNG returns base64 bytes that sniff as image/png; seed makes the hash unique.
func FakePNG(seed string) string {
	return base64.StdEncoding.EncodeToString(append(append([]byte{}, pngSignature...), []byte(seed)...))
}

func FakePNGDataURL(seed string) string {
	return "data:image/png;base64," + FakePNG(seed)
}

func Item(id string, itemType models.ClothingType, color string, confidence float64, styles ...string) models.ClothingItem {
	return models.ClothingItem{
		ID:         id,
		Type:       itemType,
		Category:   string(itemType),
		Color:      color,
		Pattern:    "solid",
		Style:      styles,
		Confidence: confidence,
	}
}

// DetectorMock returns a fixed analysis, optionally after Delay or with Err.
type DetectorMock struct {
	Analysis models.AIAnalysisResult
	Err      error
	Delay    time.Duration
	calls    atomic.Int32
}

func (m *DetectorMock) DetectClothing(ctx context.Context, image []byte, mimeType string) (*services.DetectionResult, error) {
	m.calls.Add(1)
	if err := wait(ctx, m.Delay); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &services.DetectionResult{
		Analysis: *m.Analysis.Clone(),
		Usage:    services.LLMResponse{Provider: "mock", Model: "detector", InputTokenCount: 10, OutputTokenCount: 5, TotalTokenCount: 15},
	}, nil
}

func (m *DetectorMock) Calls() int {
	return int(m.calls.Load())
}

// StylistMock returns fixed candidates, optionally after Delay or with Err.
type StylistMock struct {
	Candidates []services.CandidateOutfit
	Err        error
	Delay      time.Duration
	calls      atomic.Int32

	mu          sync.Mutex
	LastRequest services.StylingRequest
}

func (m *StylistMock) SuggestOutfits(ctx context.Context, req services.StylingRequest) (*services.StylingResult, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.LastRequest = req
	m.mu.Unlock()
	if err := wait(ctx, m.Delay); err != nil {
		return nil, err
	}
	if m.Err != nil {
		return nil, m.Err
	}
	candidates := make([]services.CandidateOutfit, len(m.Candidates))
	copy(candidates, m.Candidates)
	return &services.StylingResult{
		Candidates: candidates,
		Usage:      services.LLMResponse{Provider: "mock", Model: "stylist", TotalTokenCount: 42},
	}, nil
}

func (m *StylistMock) Calls() int {
	return int(m.calls.Load())
}

func (m *StylistMock) Request() services.StylingRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastRequest
}

func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

type AWSProviderMock struct {
	MockUrl   string
	UploadErr error
	uploads   atomic.Int32
}

func (awsService *AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService *AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {
	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService *AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	if awsService.MockUrl != "" {
		return awsService.MockUrl, nil
	}
	return fmt.Sprintf("https://fakebucketurl.com/read/%s", fileKey), nil
}

func (awsService *AWSProviderMock) UploadToPresignedURL(ctx context.Context, url string, fileContent []byte, mimeType string) (int, error) {
	awsService.uploads.Add(1)
	if awsService.UploadErr != nil {
		return http.StatusForbidden, awsService.UploadErr
	}
	return http.StatusNoContent, nil
}

func (awsService *AWSProviderMock) Uploads() int {
	return int(awsService.uploads.Load())
}

type UsageRecorderMock struct {
	mu      sync.Mutex
	Records []*models.LLMUsage
}

func (m *UsageRecorderMock) RecordUsage(ctx context.Context, usage *models.LLMUsage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, usage)
}

func (m *UsageRecorderMock) Last() *models.LLMUsage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Records) == 0 {
		return nil
	}
	return m.Records[len(m.Records)-1]
}
