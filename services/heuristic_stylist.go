package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"wardrobeapi/languageutil"
	"wardrobeapi/models"
)

const maxHeuristicCombos = 64

type colorFamily string

const (
	colorNeutral colorFamily = "neutral"
	colorWarm    colorFamily = "warm"
	colorCool    colorFamily = "cool"
)

var colorFamilies = map[string]colorFamily{
	"black":     colorNeutral,
	"white":     colorNeutral,
	"grey":      colorNeutral,
	"gray":      colorNeutral,
	"beige":     colorNeutral,
	"cream":     colorNeutral,
	"ivory":     colorNeutral,
	"navy":      colorNeutral,
	"khaki":     colorNeutral,
	"tan":       colorNeutral,
	"brown":     colorNeutral,
	"charcoal":  colorNeutral,
	"denim":     colorNeutral,
	"red":       colorWarm,
	"orange":    colorWarm,
	"yellow":    colorWarm,
	"gold":      colorWarm,
	"coral":     colorWarm,
	"burgundy":  colorWarm,
	"maroon":    colorWarm,
	"pink":      colorWarm,
	"mustard":   colorWarm,
	"rust":      colorWarm,
	"peach":     colorWarm,
	"blue":      colorCool,
	"green":     colorCool,
	"purple":    colorCool,
	"violet":    colorCool,
	"teal":      colorCool,
	"turquoise": colorCool,
	"mint":      colorCool,
	"lavender":  colorCool,
	"indigo":    colorCool,
	"silver":    colorCool,
}

// season fit per climate, rows are the weather and columns the item season
var seasonFit = map[string]map[models.Season]float64{
	"hot": {
		models.SeasonSummer: 1.0,
		models.SeasonSpring: 0.7,
		models.SeasonFall:   0.4,
		models.SeasonWinter: 0.1,
	},
	"mild": {
		models.SeasonSpring: 1.0,
		models.SeasonFall:   0.9,
		models.SeasonSummer: 0.7,
		models.SeasonWinter: 0.4,
	},
	"cool": {
		models.SeasonFall:   1.0,
		models.SeasonSpring: 0.8,
		models.SeasonWinter: 0.7,
		models.SeasonSummer: 0.3,
	},
	"cold": {
		models.SeasonWinter: 1.0,
		models.SeasonFall:   0.7,
		models.SeasonSpring: 0.4,
		models.SeasonSummer: 0.1,
	},
}

var occasionStyles = []struct {
	keywords []string
	styles   []string
}{
	{[]string{"business", "meeting", "office", "work", "interview", "conference"}, []string{"business", "formal", "minimalist"}},
	{[]string{"wedding", "gala", "party", "dinner", "date", "theatre", "theater"}, []string{"formal", "business", "vintage"}},
	{[]string{"gym", "sport", "sports", "workout", "run", "running", "hike", "hiking"}, []string{"sporty"}},
	{[]string{"casual", "weekend", "walk", "shopping", "brunch", "travel"}, []string{"casual", "streetwear", "minimalist", "bohemian"}},
	{[]string{"festival", "concert", "beach"}, []string{"bohemian", "casual", "streetwear"}},
}

var temperaturePattern = regexp.MustCompile(`(?:^|[^\d.])(-?\d{1,3}(?:\.\d+)?)\s*°?\s*([cf])?\b`)

type climate struct {
	kind  string
	rainy bool
}

// HeuristicStylist builds and scores outfits with fixed rules instead of a model.
type HeuristicStylist struct{}

func NewHeuristicStylist() *HeuristicStylist {
	return &HeuristicStylist{}
}

func (s *HeuristicStylist) SuggestOutfits(ctx context.Context, req StylingRequest) (*StylingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	weather := parseWeather(req.Weather)
	targetStyles := stylesForOccasion(req.Occasion, req.StyleCategories)

	candidates := []CandidateOutfit{}
	for _, combo := range buildCombos(req.Items, weather) {
		ids := make([]string, len(combo))
		for i, item := range combo {
			ids[i] = item.ID
		}
		candidates = append(candidates, CandidateOutfit{
			ItemIDs: ids,
			Style:   dominantStyle(combo),
			Scores: SubScores{
				Style:    styleCoherence(combo),
				Color:    colorHarmony(combo, req.ColorPalettes),
				Season:   weatherFit(combo, weather),
				Occasion: occasionFit(combo, targetStyles),
			},
		})
	}

	return &StylingResult{
		Candidates: candidates,
		Usage:      LLMResponse{Provider: "heuristic", Model: "rules"},
	}, nil
}

func buildCombos(items []models.ClothingItem, weather climate) [][]models.ClothingItem {
	groups := map[models.ClothingType][]models.ClothingItem{}
	for _, item := range items {
		groups[item.Type] = append(groups[item.Type], item)
	}

	var bases [][]models.ClothingItem
	for _, top := range groups[models.ClothingTypeTop] {
		for _, bottom := range groups[models.ClothingTypeBottom] {
			bases = append(bases, []models.ClothingItem{top, bottom})
		}
	}
	if len(bases) == 0 {
		for _, item := range items {
			switch item.Type {
			case models.ClothingTypeTop, models.ClothingTypeBottom, models.ClothingTypeOuterwear:
				bases = append(bases, []models.ClothingItem{item})
			}
		}
	}
	if len(bases) == 0 {
		for _, item := range items {
			bases = append(bases, []models.ClothingItem{item})
		}
	}
	if len(bases) > maxHeuristicCombos {
		bases = bases[:maxHeuristicCombos]
	}

	needsLayer := weather.rainy || weather.kind == "cool" || weather.kind == "cold"
	combos := make([][]models.ClothingItem, 0, len(bases))
	for _, base := range bases {
		combo := base
		if len(base) > 1 || base[0].Type != models.ClothingTypeShoes {
			combo = withBest(combo, groups[models.ClothingTypeShoes])
		}
		if needsLayer && base[0].Type != models.ClothingTypeOuterwear {
			combo = withBest(combo, groups[models.ClothingTypeOuterwear])
		}
		if len(base) > 1 {
			combo = withBest(combo, groups[models.ClothingTypeAccessory])
		}
		combos = append(combos, combo)
	}
	return combos
}

// withBest appends the option that keeps the outfit most coherent, if any.
func withBest(outfit []models.ClothingItem, options []models.ClothingItem) []models.ClothingItem {
	if len(options) == 0 {
		return outfit
	}
	best := -1
	bestScore := -1.0
	for i, option := range options {
		trial := append(append([]models.ClothingItem{}, outfit...), option)
		score := styleCoherence(trial) + colorHarmony(trial, ColorPalettes{})
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return append(append([]models.ClothingItem{}, outfit...), options[best])
}

// styleCoherence is the share of items carrying the outfit's dominant tag.
func styleCoherence(items []models.ClothingItem) float64 {
	dominant := dominantStyle(items)
	if dominant == "" {
		return 0.5
	}
	matching := 0
	for _, item := range items {
		if hasStyle(item, dominant) {
			matching++
		}
	}
	return float64(matching) / float64(len(items))
}

func hasStyle(item models.ClothingItem, style string) bool {
	for _, tag := range item.Style {
		if languageutil.Normalize(tag) == style {
			return true
		}
	}
	return false
}

func colorHarmony(items []models.ClothingItem, palettes ColorPalettes) float64 {
	if len(items) < 2 {
		return 1
	}
	families := make([]colorFamily, len(items))
	patterned := 0
	for i, item := range items {
		families[i] = familyOf(item.Color, palettes)
		if pattern := languageutil.Normalize(item.Pattern); pattern != "" && pattern != "solid" && pattern != "plain" {
			patterned++
		}
	}

	total, pairs := 0.0, 0
	for i := 0; i < len(families); i++ {
		for j := i + 1; j < len(families); j++ {
			total += pairHarmony(families[i], families[j])
			pairs++
		}
	}
	score := total / float64(pairs)
	if patterned > 1 {
		score *= 0.8
	}
	return clamp01(score)
}

func pairHarmony(a, b colorFamily) float64 {
	switch {
	case a == "" || b == "":
		return 0.7
	case a == colorNeutral || b == colorNeutral:
		return 1
	case a == b:
		return 0.85
	default:
		return 0.4
	}
}

func familyOf(color string, palettes ColorPalettes) colorFamily {
	color = languageutil.Normalize(color)
	if strings.HasPrefix(color, "#") {
		return nearestPalette(color, palettes)
	}
	for _, token := range languageutil.Tokens(color) {
		if family, ok := colorFamilies[token]; ok {
			return family
		}
	}
	return ""
}

func nearestPalette(hex string, palettes ColorPalettes) colorFamily {
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return ""
	}
	groups := []struct {
		family colorFamily
		colors []string
	}{
		{colorNeutral, palettes.Neutral},
		{colorWarm, palettes.Warm},
		{colorCool, palettes.Cool},
	}
	var best colorFamily
	bestDistance := -1
	for _, group := range groups {
		for _, candidate := range group.colors {
			cr, cg, cb, ok := parseHexColor(candidate)
			if !ok {
				continue
			}
			distance := (r-cr)*(r-cr) + (g-cg)*(g-cg) + (b-cb)*(b-cb)
			if bestDistance < 0 || distance < bestDistance {
				best, bestDistance = group.family, distance
			}
		}
	}
	return best
}

func parseHexColor(hex string) (int, int, int, bool) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(value >> 16 & 0xff), int(value >> 8 & 0xff), int(value & 0xff), true
}

func parseWeather(weather string) climate {
	normalized := languageutil.Normalize(weather)
	tokens := languageutil.Tokens(normalized)
	w := climate{rainy: languageutil.ContainsAny(tokens, "rain", "rainy", "shower", "showers", "storm", "drizzle", "wet")}

	if match := temperaturePattern.FindStringSubmatch(normalized); match != nil {
		degrees, err := strconv.ParseFloat(match[1], 64)
		if err == nil {
			if match[2] == "f" {
				degrees = (degrees - 32) * 5 / 9
			}
			switch {
			case degrees >= 25:
				w.kind = "hot"
			case degrees >= 15:
				w.kind = "mild"
			case degrees >= 5:
				w.kind = "cool"
			default:
				w.kind = "cold"
			}
			return w
		}
	}

	switch {
	case languageutil.ContainsAny(tokens, "cold", "freezing", "snow", "snowy", "icy", "frost", "winter"):
		w.kind = "cold"
	case languageutil.ContainsAny(tokens, "cool", "chilly", "windy", "crisp", "autumn", "fall"):
		w.kind = "cool"
	case languageutil.ContainsAny(tokens, "hot", "heat", "sunny", "warm", "humid", "summer"):
		w.kind = "hot"
	case languageutil.ContainsAny(tokens, "mild", "pleasant", "spring", "cloudy"):
		w.kind = "mild"
	case w.rainy:
		w.kind = "cool"
	}
	return w
}

// weatherFit averages how well each item's season suits the weather. Unknown
// weather fits everything.
func weatherFit(items []models.ClothingItem, weather climate) float64 {
	fits, ok := seasonFit[weather.kind]
	if !ok || len(items) == 0 {
		return 1
	}
	total := 0.0
	hasLayer := false
	for _, item := range items {
		if item.Type == models.ClothingTypeOuterwear {
			hasLayer = true
		}
		if fit, known := fits[item.Season]; known {
			total += fit
		} else {
			total += 0.75
		}
	}
	score := total / float64(len(items))
	if weather.rainy && !hasLayer {
		score *= 0.8
	}
	return clamp01(score)
}

func stylesForOccasion(occasion string, categories []string) []string {
	tokens := languageutil.Tokens(occasion)
	var styles []string
	for _, rule := range occasionStyles {
		if languageutil.ContainsAny(tokens, rule.keywords...) {
			styles = append(styles, rule.styles...)
		}
	}
	for _, category := range categories {
		category = languageutil.Normalize(category)
		if languageutil.ContainsAny(tokens, category) {
			styles = append(styles, category)
		}
	}
	return styles
}

func occasionFit(items []models.ClothingItem, targetStyles []string) float64 {
	if len(targetStyles) == 0 || len(items) == 0 {
		return 0.5
	}
	total := 0.0
	for _, item := range items {
		switch {
		case len(item.Style) == 0:
			total += 0.5
		case matchesAny(item, targetStyles):
			total += 1
		}
	}
	return total / float64(len(items))
}

func matchesAny(item models.ClothingItem, styles []string) bool {
	for _, style := range styles {
		if hasStyle(item, style) {
			return true
		}
	}
	return false
}
