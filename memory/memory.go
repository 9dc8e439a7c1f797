// Package memory holds the lighthouse's messages and the rules around them:
// the submission form, the decode console, the journal of decoded memories
// and the playlist the lighthouse broadcasts from.
package memory

import (
	"strings"
	"time"

	"github.com/rs/xid"

	"MemoryMorse/morse"
)

// Sentiment tints the beam. It has no effect on timing.
type Sentiment string

const (
	Positive Sentiment = "positive"
	Neutral  Sentiment = "neutral"
	Negative Sentiment = "negative"
)

// ParseSentiment maps s to a Sentiment, defaulting to Neutral.
func ParseSentiment(s string) Sentiment {
	switch Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case Positive:
		return Positive
	case Negative:
		return Negative
	}
	return Neutral
}

// Memory is one message the lighthouse can flash.
type Memory struct {
	ID        string    `json:"id" yaml:"id"`
	Text      string    `json:"text" yaml:"text"`
	Morse     string    `json:"morse,omitempty" yaml:"morse"`
	Date      time.Time `json:"date" yaml:"date"`
	Sentiment Sentiment `json:"sentiment" yaml:"sentiment"`
	Theme     string    `json:"theme" yaml:"theme"`
	Favorite  bool      `json:"favorite" yaml:"favorite"`
}

// New builds a Memory from text, encoding it to Morse and assigning a fresh
// ID.
func New(text string, sentiment Sentiment, at time.Time) Memory {
	return Memory{
		ID:        xid.New().String(),
		Text:      text,
		Morse:     morse.Encode(text),
		Date:      at,
		Sentiment: sentiment,
	}
}

// Welcome is shown before any memory has been submitted.
var Welcome = Memory{
	ID:        "welcome",
	Text:      "Welcome to Memory Morse",
	Morse:     "... --- ...",
	Sentiment: Neutral,
}
