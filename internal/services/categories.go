package services

import (
	"strings"
)

// CategoryOther is the fallback when no keyword list matches
const CategoryOther = "other"

// categoryEntry pairs a category tag with its keyword list
type categoryEntry struct {
	Category string
	Keywords []string
}

// categoryTable is scanned in order and the first match wins, so ties
// between categories are resolved by declaration order. Do not reorder.
var categoryTable = []categoryEntry{
	{"dairy", []string{"milk", "cheese", "butter", "yogurt", "cream", "eggs"}},
	{"produce", []string{"apple", "banana", "orange", "tomato", "onion", "lettuce", "carrot", "potato", "muskmelon"}},
	{"meat", []string{"chicken", "beef", "pork", "fish", "turkey"}},
	{"pantry", []string{"rice", "pasta", "bread", "flour", "sugar", "salt"}},
	{"beverages", []string{"water", "juice", "soda", "cola", "coffee", "tea"}},
	{"snacks", []string{"chips", "cookies", "popcorn", "crackers", "nuts"}},
	{"household", []string{"soap", "shampoo", "detergent", "umbrella"}},
}

// ResolveCategory maps an item name to a category tag. Matching is
// case-insensitive substring containment in both directions, which
// catches plurals and partial matches ("apples" vs "apple",
// "corn" vs "popcorn"). Unmatched names fall back to "other".
func ResolveCategory(itemName string) string {
	lower := strings.ToLower(strings.TrimSpace(itemName))
	if lower == "" {
		return CategoryOther
	}

	for _, entry := range categoryTable {
		for _, keyword := range entry.Keywords {
			if strings.Contains(lower, keyword) || strings.Contains(keyword, lower) {
				return entry.Category
			}
		}
	}

	return CategoryOther
}

// Categories returns the known category tags in declaration order,
// with the fallback category last.
func Categories() []string {
	out := make([]string, 0, len(categoryTable)+1)
	for _, entry := range categoryTable {
		out = append(out, entry.Category)
	}
	return append(out, CategoryOther)
}
