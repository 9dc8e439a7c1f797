package memory

import (
	"errors"
	"strings"
	"sync"

	"MemoryMorse/morse"
)

// ErrEmptyTranslation is returned when the user submits a blank decoding.
var ErrEmptyTranslation = errors.New("please enter your decoded message")

// Verdict is the outcome of a decode attempt.
type Verdict struct {
	Correct  bool
	Got      string // canonical form of the submission
	Expected string // canonical form of the answer
	Memory   Memory // the memory the attempt was checked against
}

// Console checks decode attempts against the message currently on the
// lighthouse.
type Console struct {
	OnSubmitDecoding func(text string)

	mu       sync.RWMutex
	expected Memory
}

// SetExpected sets the memory the next attempts are checked against.
func (c *Console) SetExpected(m Memory) {
	c.mu.Lock()
	c.expected = m
	c.mu.Unlock()
}

// Expected returns the memory being decoded.
func (c *Console) Expected() Memory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.expected
}

// Submit invokes OnSubmitDecoding for a non-blank attempt and compares it to
// the expected memory. Case, spacing and characters Morse cannot carry are
// ignored.
func (c *Console) Submit(text string) (Verdict, error) {
	if strings.TrimSpace(text) == "" {
		return Verdict{}, ErrEmptyTranslation
	}
	if c.OnSubmitDecoding != nil {
		c.OnSubmitDecoding(text)
	}

	m := c.Expected()
	want := answer(m)
	got := morse.Canonical(text)
	return Verdict{Correct: want != "" && got == want, Got: got, Expected: want, Memory: m}, nil
}

func answer(m Memory) string {
	if m.Text != "" {
		return morse.Canonical(m.Text)
	}
	// Memories built from raw Morse have no text; decode what is flashed.
	text, err := morse.Decode(m.Morse)
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}
