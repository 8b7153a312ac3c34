package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
)

// EncodeEffect renders an effect chain as JSON text for storage. A nil
// effect encodes as the empty string.
func EncodeEffect(e *effects.Effect) (string, error) {
	if e == nil {
		return "", nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("encode effect: %w", err)
	}
	return string(data), nil
}

// DecodeEffect parses text written by EncodeEffect.
func DecodeEffect(text string) (*effects.Effect, error) {
	if text == "" {
		return nil, nil
	}
	var e effects.Effect
	if err := json.Unmarshal([]byte(text), &e); err != nil {
		return nil, fmt.Errorf("decode effect: %w", err)
	}
	return &e, nil
}

// EncodeDeckEntries renders a deck list as JSON text for storage.
func EncodeDeckEntries(entries []DeckEntry) (string, error) {
	if entries == nil {
		entries = []DeckEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode deck entries: %w", err)
	}
	return string(data), nil
}

// DecodeDeckEntries parses text written by EncodeDeckEntries.
func DecodeDeckEntries(text string) ([]DeckEntry, error) {
	var entries []DeckEntry
	if err := json.Unmarshal([]byte(text), &entries); err != nil {
		return nil, fmt.Errorf("decode deck entries: %w", err)
	}
	return entries, nil
}
