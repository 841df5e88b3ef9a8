package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wardrobeapi/models"
)

func heuristicWardrobe() []models.ClothingItem {
	return []models.ClothingItem{
		{ID: "shirt", Type: models.ClothingTypeTop, Color: "white", Pattern: "solid", Season: models.SeasonSpring, Style: []string{"business"}},
		{ID: "hoodie", Type: models.ClothingTypeTop, Color: "orange", Pattern: "printed", Season: models.SeasonFall, Style: []string{"streetwear", "casual"}},
		{ID: "trousers", Type: models.ClothingTypeBottom, Color: "charcoal", Pattern: "solid", Season: models.SeasonFall, Style: []string{"business", "formal"}},
		{ID: "cargo", Type: models.ClothingTypeBottom, Color: "green", Pattern: "camo", Season: models.SeasonSummer, Style: []string{"streetwear"}},
		{ID: "oxfords", Type: models.ClothingTypeShoes, Color: "brown", Style: []string{"business", "formal"}},
		{ID: "trench", Type: models.ClothingTypeOuterwear, Color: "beige", Season: models.SeasonFall, Style: []string{"business"}},
	}
}

func TestHeuristicStylistBuildsCombos(t *testing.T) {
	stylist := NewHeuristicStylist()

	result, err := stylist.SuggestOutfits(context.Background(), StylingRequest{
		Items:          heuristicWardrobe(),
		Occasion:       "Business meeting",
		Weather:        "Rainy, 12°C",
		MaxSuggestions: 5,
	})

	require.NoError(t, err)
	require.Len(t, result.Candidates, 4)
	for _, candidate := range result.Candidates {
		assert.Contains(t, candidate.ItemIDs, "oxfords")
		assert.Contains(t, candidate.ItemIDs, "trench")
		for _, score := range []float64{candidate.Scores.Style, candidate.Scores.Color, candidate.Scores.Season, candidate.Scores.Occasion} {
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
		}
	}
	assert.Equal(t, "heuristic", result.Usage.Provider)
}

func TestHeuristicStylistPrefersMatchingOutfit(t *testing.T) {
	cfg := DefaultAIConfig()
	wardrobe := heuristicWardrobe()
	result, err := NewHeuristicStylist().SuggestOutfits(context.Background(), StylingRequest{
		Items:           wardrobe,
		Occasion:        "office interview",
		Weather:         "mild and sunny, 18C",
		StyleCategories: cfg.StyleCategories,
	})
	require.NoError(t, err)

	suggestions := RankSuggestions(result.Candidates, wardrobe, "office interview", cfg)

	require.NotEmpty(t, suggestions)
	top := suggestions[0]
	assert.Equal(t, "business", top.Style)
	assert.Equal(t, "shirt", top.Items[0].ID)
	assert.Equal(t, "trousers", top.Items[1].ID)
	assert.True(t, top.WeatherCompatible)
}

func TestHeuristicStylistSingleItems(t *testing.T) {
	result, err := NewHeuristicStylist().SuggestOutfits(context.Background(), StylingRequest{
		Items: []models.ClothingItem{
			{ID: "scarf", Type: models.ClothingTypeAccessory, Color: "red"},
		},
		Occasion: "walk",
	})

	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, []string{"scarf"}, result.Candidates[0].ItemIDs)
	assert.Equal(t, 1.0, result.Candidates[0].Scores.Color)
	assert.Equal(t, 1.0, result.Candidates[0].Scores.Season)
}

func TestHeuristicStylistHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHeuristicStylist().SuggestOutfits(ctx, StylingRequest{Items: heuristicWardrobe(), Occasion: "party"})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseWeather(t *testing.T) {
	cases := map[string]climate{
		"":                    {},
		"Rainy, 12°C":         {kind: "cool", rainy: true},
		"hot, 31 C":           {kind: "hot"},
		"40F and windy":       {kind: "cold"},
		"snow expected":       {kind: "cold"},
		"pleasant spring day": {kind: "mild"},
		"showers":             {kind: "cool", rainy: true},
		"-3 degrees":          {kind: "cold"},
	}
	for weather, want := range cases {
		assert.Equal(t, want, parseWeather(weather), "weather %q", weather)
	}
}

func TestColorHarmony(t *testing.T) {
	item := func(color, pattern string) models.ClothingItem {
		return models.ClothingItem{Color: color, Pattern: pattern}
	}
	palettes := DefaultAIConfig().ColorPalettes

	assert.Equal(t, 1.0, colorHarmony([]models.ClothingItem{item("black", ""), item("red", "")}, palettes))
	assert.Equal(t, 0.85, colorHarmony([]models.ClothingItem{item("red", ""), item("dark orange", "")}, palettes))
	assert.Equal(t, 0.4, colorHarmony([]models.ClothingItem{item("red", ""), item("blue", "")}, palettes))
	assert.InDelta(t, 0.32, colorHarmony([]models.ClothingItem{item("red", "floral"), item("blue", "striped")}, palettes), 1e-9)
	assert.Equal(t, colorWarm, familyOf("#8a4412", palettes))
	assert.Equal(t, colorCool, familyOf("#7b9ea9", palettes))
}
