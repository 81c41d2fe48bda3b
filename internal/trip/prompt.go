// Copyright (c) 2026 Travelpack. All rights reserved.

package trip

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/travelpack/travelpack/pkg/pointer"
	"github.com/travelpack/travelpack/pkg/slice"
)

const assistantPreamble = "You are a helpful travel assistant. "

// packingListPrompt asks for a machine-readable packing list.
func packingListPrompt(details Details) string {
	return assistantPreamble + fmt.Sprintf(
		"I am traveling to %s for %s. The trip is %s long, and the weather is %s. "+
			"Reply with only a JSON array of packing items and no other text. "+
			`Each item is an object with the keys "name" (string), "checked" (always false), `+
			`"compartment" (string, for example "Main Compartment" or "Toiletry Bag") `+
			`and "weight" (estimated weight in grams, number).`,
		details.Destination, details.Purpose, details.Duration, details.Weather,
	)
}

// suggestionsPrompt asks for free-text travel tips.
func suggestionsPrompt(destination, purpose string) string {
	if strings.TrimSpace(purpose) == "" {
		return assistantPreamble + fmt.Sprintf(
			"Can you suggest some tips for traveling to %s, such as places to visit and time management tips?",
			destination,
		)
	}
	return assistantPreamble + fmt.Sprintf(
		"Can you suggest some tips for traveling to %s for %s, such as places to visit and time management tips?",
		destination, purpose,
	)
}

var errNotAnArray = errors.New("collaborator reply is not a JSON array")

// parsePackingList decodes a collaborator reply into items. A surrounding
// Markdown code fence is tolerated; anything else that is not a JSON array
// of items is an error. Items without a name are dropped.
func parsePackingList(reply string) ([]PackingItem, error) {
	body := stripCodeFence(reply)
	if !strings.HasPrefix(body, "[") {
		return nil, errNotAnArray
	}

	var items []PackingItem
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("decode collaborator reply: %w", err)
	}

	kept := slice.Filter(slice.Map(items, normalizeGenerated), func(item PackingItem) bool {
		return item.Name != ""
	})
	if kept == nil {
		kept = []PackingItem{}
	}

	return withDefaultCompartment(kept), nil
}

// normalizeGenerated trims the name, drops a negative weight estimate and
// discards any keys the model invented.
func normalizeGenerated(item PackingItem) PackingItem {
	item.Name = strings.TrimSpace(item.Name)
	item.Extra = nil
	if pointer.Val(item.Weight) < 0 {
		item.Weight = nil
	}
	return item
}

// stripCodeFence removes a leading ``` or ```json line and a trailing ```.
func stripCodeFence(reply string) string {
	body := strings.TrimSpace(reply)
	if !strings.HasPrefix(body, "```") {
		return body
	}

	if newline := strings.IndexByte(body, '\n'); newline >= 0 {
		body = body[newline+1:]
	} else {
		body = strings.TrimPrefix(body, "```")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
