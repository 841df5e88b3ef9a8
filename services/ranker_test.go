package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobeapi/models"
)

func rankerWardrobe() []models.ClothingItem {
	return []models.ClothingItem{
		{ID: "shirt", Type: models.ClothingTypeTop, Color: "white", Style: []string{"business", "minimalist"}},
		{ID: "chinos", Type: models.ClothingTypeBottom, Color: "navy", Style: []string{"business"}},
		{ID: "tee", Type: models.ClothingTypeTop, Color: "red", Style: []string{"casual"}},
		{ID: "jeans", Type: models.ClothingTypeBottom, Color: "blue", Style: []string{"casual", "streetwear"}},
		{ID: "loafers", Type: models.ClothingTypeShoes, Color: "brown", Style: []string{"business"}},
	}
}

func TestScoreOutfitWeightedSum(t *testing.T) {
	weights := DefaultAIConfig().Weights

	assert.InDelta(t, 0.80, ScoreOutfit(SubScores{0.9, 0.8, 0.7, 0.6}, weights), 1e-9)
	assert.InDelta(t, 0.50, ScoreOutfit(SubScores{0.5, 0.5, 0.5, 0.5}, weights), 1e-9)
	assert.InDelta(t, 1.0, ScoreOutfit(SubScores{3, 2, 1.5, 7}, weights), 1e-9)
	assert.InDelta(t, 0.0, ScoreOutfit(SubScores{-1, -0.2, -3, -1}, weights), 1e-9)
}

func TestRankSuggestionsOrdersByConfidence(t *testing.T) {
	cfg := DefaultAIConfig()
	candidates := []CandidateOutfit{
		{ItemIDs: []string{"tee", "jeans"}, Style: "casual", Scores: SubScores{0.5, 0.5, 0.5, 0.5}},
		{ItemIDs: []string{"shirt", "chinos"}, Style: "business", Scores: SubScores{0.9, 0.8, 0.7, 0.6}},
	}

	suggestions := RankSuggestions(candidates, rankerWardrobe(), "office", cfg)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "business", suggestions[0].Style)
	assert.InDelta(t, 0.80, suggestions[0].Confidence, 1e-9)
	assert.InDelta(t, 0.80, suggestions[0].ColorHarmony, 1e-9)
	assert.True(t, suggestions[0].WeatherCompatible)
	assert.Equal(t, "office", suggestions[0].Occasion)
	assert.Equal(t, []string{"shirt", "chinos"}, []string{suggestions[0].Items[0].ID, suggestions[0].Items[1].ID})
	assert.InDelta(t, 0.50, suggestions[1].Confidence, 1e-9)
}

func TestRankSuggestionsCapsAndNeverIncreases(t *testing.T) {
	cfg := DefaultAIConfig()
	cfg.MaxSuggestions = 3
	var candidates []CandidateOutfit
	for i, pair := range [][]string{{"shirt", "chinos"}, {"shirt", "jeans"}, {"tee", "jeans"}, {"tee", "chinos"}, {"loafers"}, {"shirt"}} {
		score := float64(i) / 10
		candidates = append(candidates, CandidateOutfit{ItemIDs: pair, Scores: SubScores{score, score, score, score}})
	}

	suggestions := RankSuggestions(candidates, rankerWardrobe(), "walk", cfg)

	require.Len(t, suggestions, 3)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Confidence, suggestions[i].Confidence)
	}
	assert.Equal(t, "shirt", suggestions[0].Items[0].ID)
	assert.Len(t, suggestions[0].Items, 1)
}

func TestRankSuggestionsStableForTies(t *testing.T) {
	cfg := DefaultAIConfig()
	candidates := []CandidateOutfit{
		{ItemIDs: []string{"tee", "jeans"}, Scores: SubScores{0.5, 0.5, 0.5, 0.5}},
		{ItemIDs: []string{"shirt", "chinos"}, Scores: SubScores{0.5, 0.5, 0.5, 0.5}},
	}

	suggestions := RankSuggestions(candidates, rankerWardrobe(), "party", cfg)

	require.Len(t, suggestions, 2)
	assert.Equal(t, "tee", suggestions[0].Items[0].ID)
	assert.Equal(t, "shirt", suggestions[1].Items[0].ID)
}

func TestRankSuggestionsDropsUnknownItems(t *testing.T) {
	cfg := DefaultAIConfig()
	candidates := []CandidateOutfit{
		{ItemIDs: []string{"ghost", "tee", "tee"}, Scores: SubScores{0.5, 0.5, 0.5, 0.5}},
		{ItemIDs: []string{"ghost"}, Scores: SubScores{1, 1, 1, 1}},
		{ItemIDs: nil, Scores: SubScores{1, 1, 1, 1}},
	}

	suggestions := RankSuggestions(candidates, rankerWardrobe(), "walk", cfg)

	require.Len(t, suggestions, 1)
	require.Len(t, suggestions[0].Items, 1)
	assert.Equal(t, "tee", suggestions[0].Items[0].ID)
}

func TestRankSuggestionsDeduplicatesItemSets(t *testing.T) {
	cfg := DefaultAIConfig()
	candidates := []CandidateOutfit{
		{ItemIDs: []string{"shirt", "chinos"}, Scores: SubScores{0.2, 0.2, 0.2, 0.2}},
		{ItemIDs: []string{"chinos", "shirt"}, Scores: SubScores{0.9, 0.9, 0.9, 0.9}},
	}

	suggestions := RankSuggestions(candidates, rankerWardrobe(), "office", cfg)

	require.Len(t, suggestions, 1)
	assert.InDelta(t, 0.9, suggestions[0].Confidence, 1e-9)
	assert.Equal(t, SuggestionID("office", []string{"shirt", "chinos"}), suggestions[0].ID)
}

func TestRankSuggestionsWeatherCutoffAndStyleFallback(t *testing.T) {
	cfg := DefaultAIConfig()
	candidates := []CandidateOutfit{
		{ItemIDs: []string{"shirt", "chinos", "loafers"}, Scores: SubScores{1, 1, 0.49, 1}},
		{ItemIDs: []string{"tee", "jeans"}, Scores: SubScores{0, 0, 0.5, 0}},
	}

	suggestions := RankSuggestions(candidates, rankerWardrobe(), "office", cfg)

	require.Len(t, suggestions, 2)
	assert.False(t, suggestions[0].WeatherCompatible)
	assert.Equal(t, "business", suggestions[0].Style)
	assert.True(t, suggestions[1].WeatherCompatible)
	assert.Equal(t, "casual", suggestions[1].Style)
}

func TestSuggestionIDIsOrderIndependent(t *testing.T) {
	a := SuggestionID("Office", []string{"b", "a"})
	b := SuggestionID("office", []string{"a", "b"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, SuggestionID("party", []string{"a", "b"}))
}
