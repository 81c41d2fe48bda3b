// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackingList(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		names   []string
		wantErr bool
	}{
		{"bare_array", `[{"name":"Hat","checked":false,"compartment":"Top","weight":80}]`, []string{"Hat"}, false},
		{"json_fence", "```json\n[{\"name\":\"Hat\"}]\n```", []string{"Hat"}, false},
		{"plain_fence", "```\n[{\"name\":\"Hat\"}]\n```", []string{"Hat"}, false},
		{"surrounding_whitespace", "\n\n  [{\"name\":\"Hat\"}]  \n", []string{"Hat"}, false},
		{"drops_nameless", `[{"name":""},{"name":"Hat"}]`, []string{"Hat"}, false},
		{"empty_array", `[]`, []string{}, false},
		{"extra_keys_ignored", `[{"name":"Hat","reason":"sun"}]`, []string{"Hat"}, false},
		{"object", `{"items":[]}`, nil, true},
		{"prose", `You should pack a hat.`, nil, true},
		{"null", `null`, nil, true},
		{"truncated", `[{"name":"Hat"`, nil, true},
		{"wrong_types", `[{"name":42}]`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parsePackingList(tt.reply)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			names := make([]string, 0, len(items))
			for _, item := range items {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestParsePackingList_Defaults(t *testing.T) {
	items, err := parsePackingList(`[{"name":"Hat","reason":"sun"},{"name":"Rock","weight":-5,"compartment":"Outer"}]`)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Main Compartment", items[0].Compartment)
	assert.Nil(t, items[0].Weight)
	assert.Nil(t, items[0].Extra)
	assert.Equal(t, "Outer", items[1].Compartment)
	assert.Nil(t, items[1].Weight)
}

func TestTotalWeight(t *testing.T) {
	w := func(grams float64) *float64 { return &grams }

	assert.Equal(t, 1700.0, TotalWeight([]PackingItem{{Weight: w(500)}, {Weight: w(1200)}, {}}))
	assert.Zero(t, TotalWeight(nil))
	assert.Equal(t, 0.5, TotalWeight([]PackingItem{{Weight: w(0.25)}, {Weight: w(0.25)}}))
}

func TestPrompts(t *testing.T) {
	prompt := packingListPrompt(Details{Destination: "Kyoto", Purpose: "leisure", Duration: "5 days", Weather: "mild"})
	assert.Contains(t, prompt, "traveling to Kyoto for leisure")
	assert.Contains(t, prompt, "5 days")
	assert.Contains(t, prompt, "JSON array")

	assert.Contains(t, suggestionsPrompt("Kyoto", "business"), "traveling to Kyoto for business,")
	assert.Contains(t, suggestionsPrompt("Kyoto", ""), "traveling to Kyoto,")
}

func TestDetailsMerge(t *testing.T) {
	stored := Details{Destination: "Kyoto", Purpose: "leisure", Duration: "5 days", Weather: "mild"}

	merged := Details{Weather: "rainy", Purpose: "  "}.merge(stored)
	assert.Equal(t, Details{Destination: "Kyoto", Purpose: "leisure", Duration: "5 days", Weather: "rainy"}, merged)
}
