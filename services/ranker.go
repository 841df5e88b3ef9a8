package services

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"
)

// outfitNamespace seeds deterministic suggestion and item ids.
var outfitNamespace = uuid.MustParse("6f1c6d3e-2b8a-5f47-9c1e-7a3d8e5b4c21")

func clamp01(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

func (s SubScores) clamped() SubScores {
	return SubScores{
		Style:    clamp01(s.Style),
		Color:    clamp01(s.Color),
		Season:   clamp01(s.Season),
		Occasion: clamp01(s.Occasion),
	}
}

// ScoreOutfit is the weighted sum of the clamped sub-scores.
func ScoreOutfit(scores SubScores, weights ScoringWeights) float64 {
	s := scores.clamped()
	return clamp01(weights.Style*s.Style +
		weights.Color*s.Color +
		weights.Season*s.Season +
		weights.Occasion*s.Occasion)
}

// SuggestionID is stable for the same occasion and item set, whatever the order.
func SuggestionID(occasion string, itemIDs []string) string {
	ids := slices.Clone(itemIDs)
	sort.Strings(ids)
	key := languageutil.Normalize(occasion) + "|" + strings.Join(ids, ",")
	return uuid.NewSHA1(outfitNamespace, []byte(key)).String()
}

// RankSuggestions turns stylist candidates into suggestions ordered by
// confidence, highest first, and capped at cfg.MaxSuggestions.
func RankSuggestions(candidates []CandidateOutfit, wardrobe []models.ClothingItem, occasion string, cfg AIConfig) []models.OutfitSuggestion {
	byID := make(map[string]models.ClothingItem, len(wardrobe))
	for _, item := range wardrobe {
		byID[item.ID] = item
	}

	suggestions := make([]models.OutfitSuggestion, 0, len(candidates))
	seen := map[string]int{}
	for _, candidate := range candidates {
		items := make([]models.ClothingItem, 0, len(candidate.ItemIDs))
		ids := make([]string, 0, len(candidate.ItemIDs))
		for _, id := range candidate.ItemIDs {
			item, ok := byID[id]
			if !ok || slices.Contains(ids, id) {
				continue
			}
			items = append(items, item)
			ids = append(ids, id)
		}
		if len(items) == 0 {
			continue
		}

		scores := candidate.Scores.clamped()
		style := languageutil.Normalize(candidate.Style)
		if style == "" {
			style = dominantStyle(items)
		}
		suggestion := models.OutfitSuggestion{
			ID:                SuggestionID(occasion, ids),
			Items:             items,
			Style:             style,
			Occasion:          occasion,
			Confidence:        ScoreOutfit(scores, cfg.Weights),
			WeatherCompatible: scores.Season >= cfg.WeatherCompatibleCutoff,
			ColorHarmony:      scores.Color,
		}

		if index, ok := seen[suggestion.ID]; ok {
			if suggestion.Confidence > suggestions[index].Confidence {
				suggestions[index] = suggestion
			}
			continue
		}
		seen[suggestion.ID] = len(suggestions)
		suggestions = append(suggestions, suggestion)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	if cfg.MaxSuggestions >= 0 && len(suggestions) > cfg.MaxSuggestions {
		suggestions = suggestions[:cfg.MaxSuggestions]
	}
	return suggestions
}

// dominantStyle is the most frequent style tag, ties broken by first appearance.
func dominantStyle(items []models.ClothingItem) string {
	counts := map[string]int{}
	var order []string
	for _, item := range items {
		for _, tag := range item.Style {
			tag = languageutil.Normalize(tag)
			if tag == "" {
				continue
			}
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}
	best := ""
	for _, tag := range order {
		if counts[tag] > counts[best] {
			best = tag
		}
	}
	return best
}
