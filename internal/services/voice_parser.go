package services

import (
	"strings"

	"github.com/foxxcyber/voicecart/internal/models"
)

// triggerRule maps a group of surface keywords to a list action.
// Keywords may be transliterated Hindi as well as English; matching is
// plain substring containment on the normalized transcript.
type triggerRule struct {
	Name     string
	Action   models.CommandAction
	Keywords []string
}

// triggerRules is scanned in order and the first matching group wins.
// Hindi groups come first so "hata do chini" is not swallowed by an
// accidental English match. Order is significant; do not reorder.
var triggerRules = []triggerRule{
	{"remove-hindi", models.ActionRemove, []string{"hatao", "hatado", "hata", "nikalo", "nikal"}},
	{"add-hindi", models.ActionAdd, []string{"jodo", "dalo", "chahiye", "khareedo", "lao"}},
	{"add", models.ActionAdd, []string{"add", "buy", "get", "need", "want"}},
	{"remove", models.ActionRemove, []string{"remove", "delete", "drop"}},
	{"clear", models.ActionClear, []string{"clear all", "empty list", "clear"}},
	{"complete", models.ActionComplete, []string{"complete", "done"}},
}

// stopWords are stripped from the token stream before item extraction
var stopWords = map[string]bool{
	"add": true, "remove": true, "buy": true, "complete": true,
	"from": true, "my": true, "list": true, "a": true, "one": true,
}

// ParseVoiceCommand interprets a raw transcript into a structured command.
// It never fails: a transcript that matches no trigger group yields a
// command with intent "unknown" and action "search", which callers must
// treat as a no-op.
func ParseVoiceCommand(raw string) models.VoiceCommand {
	normalized := strings.ToLower(strings.TrimSpace(raw))

	rule, matched := classify(normalized)
	if !matched {
		return models.VoiceCommand{
			Action: models.ActionSearch,
			Intent: models.IntentUnknown,
			Raw:    raw,
		}
	}

	quantity := ExtractQuantity(normalized)

	// Strip the matched trigger keywords plus the fixed stop-word set,
	// then take the last remaining token as the item. This is a heuristic,
	// not a parse: multi-word names like "olive oil" lose their prefix.
	strip := make(map[string]bool, len(stopWords)+len(rule.Keywords))
	for w := range stopWords {
		strip[w] = true
	}
	for _, kw := range rule.Keywords {
		for _, w := range strings.Fields(kw) {
			strip[w] = true
		}
	}

	var tokens []string
	for _, w := range strings.Fields(normalized) {
		if !strip[w] {
			tokens = append(tokens, w)
		}
	}

	// "dozen" belongs to the quantity, not the item name
	var itemWords []string
	for _, w := range tokens {
		if w == "dozen" {
			quantity *= 12
			continue
		}
		itemWords = append(itemWords, w)
	}

	item := ""
	if len(itemWords) > 0 {
		item = itemWords[len(itemWords)-1]
	}

	category := ResolveCategory(item)
	if item == "" {
		category = ResolveCategory(normalized)
	}

	return models.VoiceCommand{
		Action:   rule.Action,
		Intent:   "shopping." + string(rule.Action),
		Item:     item,
		Quantity: quantity,
		Category: category,
		Raw:      raw,
	}
}

// classify finds the first trigger group whose keywords appear in the text
func classify(normalized string) (triggerRule, bool) {
	if normalized == "" {
		return triggerRule{}, false
	}
	for _, rule := range triggerRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(normalized, kw) {
				return rule, true
			}
		}
	}
	return triggerRule{}, false
}
