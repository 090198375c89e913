package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQuantity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"bare item defaults to one", "milk", 1},
		{"empty string defaults to one", "", 1},
		{"digit token", "add 7 apples", 7},
		{"explicit zero digit", "0 apples", 0},
		{"first digit wins", "3 bags of 5", 3},
		{"word number", "five bananas", 5},
		{"compound word number", "twenty five eggs", 25},
		{"hundred multiplier", "three hundred", 300},
		{"hundred with trailing units", "two hundred three", 203},
		{"bare hundred", "hundred napkins", 100},
		{"thousand multiplier", "two thousand", 2000},
		{"accumulator flushes on break", "two apples three", 5},
		{"couple", "a couple of apples", 2},
		{"few", "a few oranges", 3},
		{"bare dozen", "a dozen eggs", 12},
		{"word dozen", "two dozen eggs", 24},
		{"digit dozen", "2 dozen eggs", 24},
		{"half a dozen", "half a dozen", 6},
		{"half a dozen with item", "half a dozen bagels", 6},
		{"uppercase input", "TWO DOZEN EGGS", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractQuantity(tt.text))
		})
	}
}

func TestExtractQuantity_DigitsBeatWords(t *testing.T) {
	// Outside the dozen branch a literal digit always wins over words
	assert.Equal(t, 4, ExtractQuantity("two or 4 lemons"))
}
