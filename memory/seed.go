package memory

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"

	"MemoryMorse/morse"
)

// LoadSeed parses a JSON-with-comments list of memories. Missing Morse is
// derived from the text and sentiments are normalized.
func LoadSeed(data []byte) ([]Memory, error) {
	var seed []Memory
	if err := json.Unmarshal(jsonc.ToJSON(data), &seed); err != nil {
		return nil, fmt.Errorf("parse memory seed: %w", err)
	}
	for i := range seed {
		if seed[i].ID == "" {
			return nil, fmt.Errorf("parse memory seed: entry %d has no id", i)
		}
		if seed[i].Morse == "" {
			seed[i].Morse = morse.Encode(seed[i].Text)
		}
		seed[i].Sentiment = ParseSentiment(string(seed[i].Sentiment))
	}
	return seed, nil
}
