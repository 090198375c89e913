package services

import (
	"testing"

	"github.com/foxxcyber/voicecart/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestParseVoiceCommand(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		action   models.CommandAction
		intent   string
		item     string
		quantity int
		category string
	}{
		{
			name:     "simple add",
			raw:      "add milk",
			action:   models.ActionAdd,
			intent:   "shopping.add",
			item:     "milk",
			quantity: 1,
			category: "dairy",
		},
		{
			name:     "add via need",
			raw:      "i need water",
			action:   models.ActionAdd,
			intent:   "shopping.add",
			item:     "water",
			quantity: 1,
			category: "beverages",
		},
		{
			name:     "remove with quantity",
			raw:      "remove two apples",
			action:   models.ActionRemove,
			intent:   "shopping.remove",
			item:     "apples",
			quantity: 2,
			category: "produce",
		},
		{
			name:     "remove with filler words",
			raw:      "delete the bread from my list",
			action:   models.ActionRemove,
			intent:   "shopping.remove",
			item:     "bread",
			quantity: 1,
			category: "pantry",
		},
		{
			name:     "hindi remove",
			raw:      "hata do chini",
			action:   models.ActionRemove,
			intent:   "shopping.remove",
			item:     "chini",
			quantity: 1,
			category: "other",
		},
		{
			name:     "hindi add",
			raw:      "chahiye doodh",
			action:   models.ActionAdd,
			intent:   "shopping.add",
			item:     "doodh",
			quantity: 1,
			category: "other",
		},
		{
			name:     "clear list",
			raw:      "clear all",
			action:   models.ActionClear,
			intent:   "shopping.clear",
			item:     "",
			quantity: 1,
			category: "other",
		},
		{
			name:     "complete via done",
			raw:      "done with milk",
			action:   models.ActionComplete,
			intent:   "shopping.complete",
			item:     "milk",
			quantity: 1,
			category: "dairy",
		},
		{
			name:     "mixed case input",
			raw:      "Add MILK",
			action:   models.ActionAdd,
			intent:   "shopping.add",
			item:     "milk",
			quantity: 1,
			category: "dairy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ParseVoiceCommand(tt.raw)
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, tt.intent, cmd.Intent)
			assert.Equal(t, tt.item, cmd.Item)
			assert.Equal(t, tt.quantity, cmd.Quantity)
			assert.Equal(t, tt.category, cmd.Category)
			assert.Equal(t, tt.raw, cmd.Raw)
		})
	}
}

func TestParseVoiceCommand_Unknown(t *testing.T) {
	for _, raw := range []string{"xyz nonsense", "hello there", ""} {
		cmd := ParseVoiceCommand(raw)
		assert.Equal(t, models.ActionSearch, cmd.Action, "raw %q", raw)
		assert.Equal(t, models.IntentUnknown, cmd.Intent, "raw %q", raw)
		assert.Empty(t, cmd.Item, "raw %q", raw)
		assert.Equal(t, raw, cmd.Raw, "raw %q", raw)
	}
}

// "dozen" is consumed by the quantity and never survives as the item name.
func TestParseVoiceCommand_DozenStrippedFromItem(t *testing.T) {
	cmd := ParseVoiceCommand("buy a dozen eggs")
	assert.Equal(t, models.ActionAdd, cmd.Action)
	assert.Equal(t, "eggs", cmd.Item)
	assert.Equal(t, "dairy", cmd.Category)
	assert.NotContains(t, cmd.Item, "dozen")
}

// Hindi trigger groups are checked before English ones.
func TestParseVoiceCommand_HindiPriority(t *testing.T) {
	// "nikal" must win even though the transcript also says "get"
	cmd := ParseVoiceCommand("nikal do and get bread")
	assert.Equal(t, models.ActionRemove, cmd.Action)
}
