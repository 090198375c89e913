package services

import (
	"strings"
	"testing"
	"time"

	"github.com/foxxcyber/voicecart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refs(names ...string) []models.ItemRef {
	out := make([]models.ItemRef, len(names))
	for i, n := range names {
		out[i] = models.ItemRef{Name: n, Category: ResolveCategory(n)}
	}
	return out
}

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  string
	}{
		{time.January, "winter"},
		{time.February, "winter"},
		{time.March, "spring"},
		{time.May, "spring"},
		{time.June, "summer"},
		{time.August, "summer"},
		{time.September, "fall"},
		{time.November, "fall"},
		{time.December, "winter"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonForMonth(tt.month), tt.month.String())
	}
}

func TestGenerateSuggestions_Invariants(t *testing.T) {
	current := refs("milk", "bread", "pasta", "chicken")
	history := refs("coffee", "coffee", "bananas", "bananas", "bananas", "rice", "tea", "soap", "flour")

	got := GenerateSuggestions(current, history)

	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 10)

	onList := map[string]bool{}
	for _, item := range current {
		onList[strings.ToLower(item.Name)] = true
	}
	seen := map[string]bool{}
	for i, s := range got {
		name := strings.ToLower(s.Name)
		assert.False(t, onList[name], "suggested item already on list: %s", s.Name)
		assert.False(t, seen[name], "duplicate suggestion: %s", s.Name)
		seen[name] = true
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Confidence, s.Confidence, "not sorted at %d", i)
		}
	}
}

func TestGenerateSuggestions_Substitutes(t *testing.T) {
	got := generateSuggestionsAt(refs("milk"), nil, time.January)

	var almond *models.Suggestion
	for i := range got {
		if got[i].Name == "almond milk" {
			almond = &got[i]
		}
	}
	require.NotNil(t, almond, "expected a substitute for milk")
	assert.True(t, almond.Substitute)
	assert.InDelta(t, 0.9, almond.Confidence, 1e-9)
	assert.Equal(t, "Alternative to milk", almond.Reason)

	// The first substitute outranks everything else in this pool
	assert.Equal(t, "almond milk", got[0].Name)
}

func TestGenerateSuggestions_Seasonal(t *testing.T) {
	got := generateSuggestionsAt(nil, nil, time.July)

	require.Len(t, got, 5)
	for _, s := range got {
		assert.True(t, s.Seasonal)
		assert.Equal(t, "In season now", s.Reason)
		assert.InDelta(t, 0.6, s.Confidence, 1e-9)
	}
	assert.Equal(t, "tomatoes", got[0].Name)

	// An in-season item already on the list is skipped
	got = generateSuggestionsAt(refs("corn"), nil, time.July)
	for _, s := range got {
		assert.NotEqual(t, "corn", s.Name)
	}
}

func TestGenerateSuggestions_HistoryRanking(t *testing.T) {
	history := refs("coffee", "coffee", "coffee", "tea", "tea", "soap")
	got := generateSuggestionsAt(nil, history, time.January)

	byName := map[string]models.Suggestion{}
	for _, s := range got {
		byName[s.Name] = s
	}

	require.Contains(t, byName, "coffee")
	require.Contains(t, byName, "tea")
	require.Contains(t, byName, "soap")
	assert.InDelta(t, 0.7, byName["coffee"].Confidence, 1e-9)
	assert.InDelta(t, 0.6, byName["tea"].Confidence, 1e-9)
	assert.InDelta(t, 0.5, byName["soap"].Confidence, 1e-9)
	assert.Equal(t, "You buy this regularly", byName["coffee"].Reason)
}

func TestGenerateSuggestions_DuplicateKeepsHighestConfidence(t *testing.T) {
	// "butter" is both a co-purchase pair for bread (0.8) and a frequent
	// history item (0.7); only the pair instance must survive.
	got := generateSuggestionsAt(refs("bread"), refs("butter", "butter", "butter"), time.January)

	var matches []models.Suggestion
	for _, s := range got {
		if s.Name == "butter" {
			matches = append(matches, s)
		}
	}
	require.Len(t, matches, 1)
	assert.InDelta(t, 0.8, matches[0].Confidence, 1e-9)
	assert.Equal(t, "Often bought with bread", matches[0].Reason)
}

func TestMergeRanked(t *testing.T) {
	rules := []models.Suggestion{
		{ID: "pair-cereal", Name: "cereal", Confidence: 0.8},
		{ID: "seasonal-oranges", Name: "oranges", Confidence: 0.6},
	}
	ai := []models.Suggestion{
		{ID: "ai-0", Name: "Cereal", Confidence: 0.95},
		{ID: "ai-1", Name: "granola", Confidence: 0.7},
	}

	got := MergeRanked(rules, ai)

	require.Len(t, got, 3)
	assert.Equal(t, "Cereal", got[0].Name)
	assert.Equal(t, "ai-0", got[0].ID)
	assert.Equal(t, "granola", got[1].Name)
	assert.Equal(t, "oranges", got[2].Name)
}

func TestMergeRanked_CapsAtTen(t *testing.T) {
	var pool []models.Suggestion
	for _, season := range []string{"spring", "summer", "fall"} {
		for _, name := range seasonalItems[season] {
			pool = append(pool, models.Suggestion{Name: name, Confidence: 0.6})
		}
	}
	require.Greater(t, len(pool), 10)
	assert.Len(t, MergeRanked(pool), 10)
}
