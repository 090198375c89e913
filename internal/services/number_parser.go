package services

import (
	"regexp"
	"strconv"
	"strings"
)

// digitPattern matches a standalone digit token like "2" in "add 2 apples"
var digitPattern = regexp.MustCompile(`\b\d+\b`)

// smallNumberWords covers one..twelve for the dozen word-scan
var smallNumberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12,
}

// numberWords maps spoken number words to values. "hundred" and "thousand"
// act as multipliers on the running value, everything else is additive.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50, "sixty": 60, "seventy": 70, "eighty": 80,
	"ninety": 90, "hundred": 100, "thousand": 1000,
}

// ExtractQuantity converts a spoken phrase into an integer quantity.
// It understands digits ("2 apples"), number words ("two hundred three"),
// and shopping idioms ("a couple of", "half a dozen", "two dozen").
// Checks are ordered: idioms first, then digits, then word accumulation.
// Ambiguous text never yields zero; the floor is 1.
func ExtractQuantity(raw string) int {
	text := strings.ToLower(raw)

	// Idioms with fixed values
	if strings.Contains(text, "half a dozen") {
		return 6
	}
	if strings.Contains(text, "dozen") {
		if match := digitPattern.FindString(text); match != "" {
			n, _ := strconv.Atoi(match)
			return n * 12 // "2 dozen" = 24
		}
		for _, w := range strings.Fields(text) {
			if n, ok := smallNumberWords[w]; ok {
				return n * 12 // "three dozen" = 36
			}
		}
		return 12 // bare "dozen"
	}
	if strings.Contains(text, "couple") {
		return 2
	}
	if strings.Contains(text, "few") {
		return 3
	}

	// Literal digits win over number words
	if match := digitPattern.FindString(text); match != "" {
		n, _ := strconv.Atoi(match)
		return n
	}

	// Accumulate number words left to right. A non-number word flushes the
	// running value into the total, so "two hundred three" = 203 while
	// "two apples three" = 5.
	total := 0
	current := 0
	for _, word := range strings.Fields(text) {
		if value, ok := numberWords[word]; ok {
			if value == 100 || value == 1000 {
				if current == 0 {
					current = 1
				}
				current *= value
			} else {
				current += value
			}
			continue
		}
		if current > 0 {
			total += current
			current = 0
		}
	}
	total += current

	if total > 0 {
		return total
	}
	return 1
}
