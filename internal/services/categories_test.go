package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		item string
		want string
	}{
		{"milk", "dairy"},
		{"apples", "produce"},
		{"chicken breast", "meat"},
		{"brown rice", "pantry"},
		{"sparkling water", "beverages"},
		{"chips", "snacks"},
		{"dish soap", "household"},
		{"popcorn", "snacks"},
		{"xyzzy", "other"},
		{"", "other"},
		{"  MILK  ", "dairy"},
	}

	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveCategory(tt.item))
		})
	}
}

// Every keyword in the table must resolve back to its own category.
// The table is order-sensitive, so this guards against a reorder or a
// new keyword shadowing an earlier one.
func TestResolveCategory_KeywordRoundTrip(t *testing.T) {
	for _, entry := range categoryTable {
		for _, keyword := range entry.Keywords {
			assert.Equal(t, entry.Category, ResolveCategory(keyword), "keyword %q", keyword)
		}
	}
}

// Partial containment works in both directions: the item may contain
// the keyword or the keyword may contain the item.
func TestResolveCategory_PartialMatch(t *testing.T) {
	assert.Equal(t, "snacks", ResolveCategory("corn")) // "popcorn" contains "corn"
	assert.Equal(t, "dairy", ResolveCategory("buttermilk"))
}

func TestCategories(t *testing.T) {
	got := Categories()
	assert.Equal(t, []string{"dairy", "produce", "meat", "pantry", "beverages", "snacks", "household", "other"}, got)
}
