package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobeapi/models"
	"wardrobeapi/services"
	"wardrobeapi/test"
)

func newTestAnalyzer(t *testing.T, detector *test.DetectorMock, stylist *test.StylistMock) *services.ClothingAnalyzer {
	t.Helper()
	analyzer, err := services.NewClothingAnalyzer(services.DefaultAIConfig(), detector, stylist)
	require.NoError(t, err)
	return analyzer
}

func sampleDetection() models.AIAnalysisResult {
	return models.AIAnalysisResult{
		DetectedItems: []models.ClothingItem{
			test.Item("", models.ClothingTypeTop, "white", 0.95, "casual"),
			test.Item("", models.ClothingTypeBottom, "blue", 0.30, "casual"),
		},
		StyleAnalysis: models.StyleAnalysis{DominantStyle: "casual", Confidence: 0.9, AlternativeStyles: []string{"streetwear"}},
		ColorAnalysis: models.ColorAnalysis{DominantColors: []string{"white"}, ColorScheme: "neutral"},
	}
}

func TestAnalyzeOk(t *testing.T) {
	detector := &test.DetectorMock{Analysis: sampleDetection()}
	e := SetupServer(newTestAnalyzer(t, detector, &test.StylistMock{}))

	req := test.NewJSONRequest("POST", "/api/ai/analyze", models.AnalyzeImageIn{Image: test.FakePNGDataURL("look")})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response models.AnalyzeImageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.NotNil(t, response.Data)
	require.Len(t, response.Data.DetectedItems, 1)
	assert.Equal(t, models.ClothingTypeTop, response.Data.DetectedItems[0].Type)
	assert.Equal(t, "casual", response.Data.StyleAnalysis.DominantStyle)
}

func TestAnalyzeMissingImage(t *testing.T) {
	detector := &test.DetectorMock{Analysis: sampleDetection()}
	e := SetupServer(newTestAnalyzer(t, detector, &test.StylistMock{}))

	req := test.NewJSONRequestRaw("POST", "/api/ai/analyze", `{}`)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success": false, "error": "No image provided"}`, rec.Body.String())
	assert.Equal(t, 0, detector.Calls())
}

func TestAnalyzeInvalidImage(t *testing.T) {
	detector := &test.DetectorMock{Analysis: sampleDetection()}
	e := SetupServer(newTestAnalyzer(t, detector, &test.StylistMock{}))

	req := test.NewJSONRequest("POST", "/api/ai/analyze", models.AnalyzeImageIn{Image: "aGVsbG8gd29ybGQ="})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var response models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.Contains(t, response.Error, "unsupported image type")
	assert.Equal(t, 0, detector.Calls())
}

func TestAnalyzeCollaboratorFailure(t *testing.T) {
	detector := &test.DetectorMock{Err: errors.New("upstream 503")}
	e := SetupServer(newTestAnalyzer(t, detector, &test.StylistMock{}))

	req := test.NewJSONRequest("POST", "/api/ai/analyze", models.AnalyzeImageIn{Image: test.FakePNG("fail")})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success": false, "error": "Failed to analyze image"}`, rec.Body.String())
}

func outfitRequest() models.GenerateOutfitIn {
	return models.GenerateOutfitIn{
		Items: []models.ClothingItem{
			test.Item("shirt", models.ClothingTypeTop, "white", 0.9, "business"),
			test.Item("chinos", models.ClothingTypeBottom, "navy", 0.9, "business"),
			test.Item("tee", models.ClothingTypeTop, "red", 0.9, "casual"),
			test.Item("jeans", models.ClothingTypeBottom, "blue", 0.9, "casual"),
		},
		Occasion: "office",
		Weather:  "sunny",
	}
}

func TestGenerateOutfitOk(t *testing.T) {
	stylist := &test.StylistMock{Candidates: []services.CandidateOutfit{
		{ItemIDs: []string{"tee", "jeans"}, Scores: services.SubScores{Style: 0.5, Color: 0.5, Season: 0.5, Occasion: 0.5}},
		{ItemIDs: []string{"shirt", "chinos"}, Scores: services.SubScores{Style: 0.9, Color: 0.8, Season: 0.7, Occasion: 0.6}},
		{ItemIDs: []string{"unknown"}, Scores: services.SubScores{Style: 1, Color: 1, Season: 1, Occasion: 1}},
	}}
	e := SetupServer(newTestAnalyzer(t, &test.DetectorMock{}, stylist))

	req := test.NewJSONRequest("POST", "/api/ai/generate-outfit", outfitRequest())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var response models.GenerateOutfitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	require.Len(t, response.Data, 2)
	assert.InDelta(t, 0.80, response.Data[0].Confidence, 1e-9)
	assert.Equal(t, "business", response.Data[0].Style)
	assert.Equal(t, "office", response.Data[0].Occasion)
	assert.InDelta(t, 0.50, response.Data[1].Confidence, 1e-9)
}

func TestGenerateOutfitEmptyResultIsList(t *testing.T) {
	e := SetupServer(newTestAnalyzer(t, &test.DetectorMock{}, &test.StylistMock{}))

	req := test.NewJSONRequest("POST", "/api/ai/generate-outfit", outfitRequest())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "data": []}`, rec.Body.String())
}

func TestGenerateOutfitMissingParams(t *testing.T) {
	stylist := &test.StylistMock{}
	e := SetupServer(newTestAnalyzer(t, &test.DetectorMock{}, stylist))

	for _, body := range []string{
		`{}`,
		`{"occasion": "office"}`,
		`{"items": [{"id": "a", "type": "top"}]}`,
		`{"items": [], "occasion": "office"}`,
	} {
		req := test.NewJSONRequestRaw("POST", "/api/ai/generate-outfit", body)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"success": false, "error": "Missing required parameters"}`, rec.Body.String(), body)
	}
	assert.Equal(t, 0, stylist.Calls())
}

func TestGenerateOutfitInvalidItems(t *testing.T) {
	stylist := &test.StylistMock{}
	e := SetupServer(newTestAnalyzer(t, &test.DetectorMock{}, stylist))

	for _, body := range []string{
		`{"items": [{"id": "a", "type": "cape"}], "occasion": "office"}`,
		`{"items": [{"id": "a", "type": "top", "season": "monsoon"}], "occasion": "office"}`,
		`{"items": [{"id": "a", "type": "top", "confidence": 2}], "occasion": "office"}`,
		`{"items": [{"id": "a", "type": "top"}, {"id": "a", "type": "bottom"}], "occasion": "office"}`,
	} {
		req := test.NewJSONRequestRaw("POST", "/api/ai/generate-outfit", body)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		var response models.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.False(t, response.Success)
		assert.NotEmpty(t, response.Error)
	}
	assert.Equal(t, 0, stylist.Calls())
}

func TestGenerateOutfitCollaboratorFailure(t *testing.T) {
	stylist := &test.StylistMock{Err: errors.New("model overloaded")}
	e := SetupServer(newTestAnalyzer(t, &test.DetectorMock{}, stylist))

	req := test.NewJSONRequest("POST", "/api/ai/generate-outfit", outfitRequest())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success": false, "error": "Failed to generate outfit suggestions"}`, rec.Body.String())
}

func TestHealthAndMetrics(t *testing.T) {
	e := SetupServer(newTestAnalyzer(t, &test.DetectorMock{}, &test.StylistMock{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "wardrobe_http_requests_total")
}
