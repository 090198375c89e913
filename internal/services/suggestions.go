package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/foxxcyber/voicecart/internal/models"
)

// maxSuggestions caps the ranked output
const maxSuggestions = 10

// frequentPairs maps an item to things commonly bought alongside it
var frequentPairs = map[string][]string{
	"milk":     {"cereal", "cookies", "coffee"},
	"tomatoes": {"onions", "garlic", "basil"},
	"chicken":  {"rice", "vegetables", "seasoning"},
	"pasta":    {"sauce", "cheese", "garlic"},
	"bread":    {"butter", "jam", "peanut butter"},
}

// substitutes maps an item to alternatives, best first
var substitutes = map[string][]string{
	"milk":    {"almond milk", "oat milk", "soy milk", "coconut milk"},
	"butter":  {"margarine", "coconut oil", "olive oil"},
	"sugar":   {"honey", "maple syrup", "stevia", "brown sugar"},
	"bread":   {"wraps", "pita bread", "bagels", "crackers"},
	"pasta":   {"rice", "quinoa", "zucchini noodles", "lentils"},
	"chicken": {"turkey", "tofu", "fish", "beans"},
	"cheese":  {"nutritional yeast", "vegan cheese", "cashew cream"},
}

// seasonalItems lists produce typically in season per calendar season
var seasonalItems = map[string][]string{
	"spring": {"asparagus", "strawberries", "peas", "lettuce", "radishes"},
	"summer": {"tomatoes", "corn", "watermelon", "berries", "zucchini"},
	"fall":   {"apples", "pumpkin", "sweet potatoes", "squash", "cranberries"},
	"winter": {"oranges", "potatoes", "onions", "cabbage", "root vegetables"},
}

// SeasonForMonth maps a calendar month to a season label
func SeasonForMonth(m time.Month) string {
	switch {
	case m >= time.March && m <= time.May:
		return "spring"
	case m >= time.June && m <= time.August:
		return "summer"
	case m >= time.September && m <= time.November:
		return "fall"
	default:
		return "winter"
	}
}

// CurrentSeason returns the season label for the current month
func CurrentSeason() string {
	return SeasonForMonth(time.Now().Month())
}

// GenerateSuggestions runs the rule-based suggestion strategies over the
// current list and purchase history and returns at most 10 suggestions,
// ranked by confidence. Nothing already on the current list is suggested,
// and a name proposed by more than one strategy keeps only its
// highest-confidence instance.
func GenerateSuggestions(current, history []models.ItemRef) []models.Suggestion {
	return generateSuggestionsAt(current, history, time.Now().Month())
}

func generateSuggestionsAt(current, history []models.ItemRef, month time.Month) []models.Suggestion {
	onList := make(map[string]bool, len(current))
	for _, item := range current {
		onList[strings.ToLower(item.Name)] = true
	}

	var pool []models.Suggestion

	// 1. Co-purchase pairs
	for _, item := range current {
		for _, pair := range frequentPairs[strings.ToLower(item.Name)] {
			if onList[strings.ToLower(pair)] {
				continue
			}
			pool = append(pool, models.Suggestion{
				ID:         "pair-" + pair,
				Name:       pair,
				Category:   ResolveCategory(pair),
				Reason:     fmt.Sprintf("Often bought with %s", item.Name),
				Confidence: 0.8,
			})
		}
	}

	// 2. History frequency, top 5 by count
	for rank, name := range frequentHistoricalItems(history, onList) {
		pool = append(pool, models.Suggestion{
			ID:         "history-" + name,
			Name:       name,
			Category:   ResolveCategory(name),
			Reason:     "You buy this regularly",
			Confidence: 0.7 - 0.1*float64(rank),
		})
	}

	// 3. Seasonal
	for _, name := range seasonalItems[SeasonForMonth(month)] {
		if onList[strings.ToLower(name)] {
			continue
		}
		pool = append(pool, models.Suggestion{
			ID:         "seasonal-" + name,
			Name:       name,
			Category:   ResolveCategory(name),
			Reason:     "In season now",
			Confidence: 0.6,
			Seasonal:   true,
		})
	}

	// 4. Substitutes for items already on the list
	for _, item := range current {
		for idx, sub := range substitutes[strings.ToLower(item.Name)] {
			if onList[strings.ToLower(sub)] {
				continue
			}
			pool = append(pool, models.Suggestion{
				ID:         fmt.Sprintf("substitute-%s-%s", item.Name, sub),
				Name:       sub,
				Category:   ResolveCategory(sub),
				Reason:     fmt.Sprintf("Alternative to %s", item.Name),
				Confidence: 0.9 - 0.1*float64(idx),
				Substitute: true,
			})
		}
	}

	return MergeRanked(pool)
}

// MergeRanked pools suggestion sets from independent sources (the four
// rule strategies, or rules plus the AI adapter), collapses duplicate
// names to their highest-confidence instance, and returns at most 10
// suggestions sorted by confidence descending. The sort is stable so
// equal confidences keep their emission order.
func MergeRanked(pools ...[]models.Suggestion) []models.Suggestion {
	var combined []models.Suggestion
	for _, pool := range pools {
		combined = append(combined, pool...)
	}

	deduped := dedupeByName(combined)

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Confidence > deduped[j].Confidence
	})

	if len(deduped) > maxSuggestions {
		deduped = deduped[:maxSuggestions]
	}
	return deduped
}

// frequentHistoricalItems counts history occurrences outside the current
// list and returns the top 5 names by count. Ties keep first-seen order.
func frequentHistoricalItems(history []models.ItemRef, exclude map[string]bool) []string {
	type entry struct {
		name  string
		count int
		first int
	}
	counts := make(map[string]*entry)
	var order []*entry

	for i, item := range history {
		name := strings.ToLower(item.Name)
		if exclude[name] {
			continue
		}
		if e, ok := counts[name]; ok {
			e.count++
			continue
		}
		e := &entry{name: name, count: 1, first: i}
		counts[name] = e
		order = append(order, e)
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		return order[i].first < order[j].first
	})

	if len(order) > 5 {
		order = order[:5]
	}
	names := make([]string, len(order))
	for i, e := range order {
		names[i] = e.name
	}
	return names
}

// dedupeByName collapses duplicate names to the highest-confidence instance
func dedupeByName(pool []models.Suggestion) []models.Suggestion {
	seen := make(map[string]int, len(pool))
	var out []models.Suggestion
	for _, s := range pool {
		key := strings.ToLower(s.Name)
		if idx, ok := seen[key]; ok {
			if s.Confidence > out[idx].Confidence {
				out[idx] = s
			}
			continue
		}
		seen[key] = len(out)
		out = append(out, s)
	}
	return out
}
