package memory

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"MemoryMorse/morse"
)

// MaxLength is the longest memory the form accepts, in characters.
const MaxLength = 100

var (
	ErrEmptyMemory   = errors.New("memory is empty")
	ErrMemoryTooLong = errors.New("memory is too long")
)

// Submission is what the form hands to its host.
type Submission struct {
	Text  string
	Morse string
}

// Form validates memories before handing them to OnSubmit.
type Form struct {
	OnSubmit func(Submission)
}

// Preview returns the Morse encoding shown under the text box.
func (f *Form) Preview(text string) string {
	return morse.Encode(text)
}

// Remaining returns how many characters are left; negative once over the
// limit.
func (f *Form) Remaining(text string) int {
	return MaxLength - utf8.RuneCountInString(text)
}

// Validate reports why text cannot be submitted, or nil.
func (f *Form) Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMemory
	}
	if n := utf8.RuneCountInString(text); n > MaxLength {
		return fmt.Errorf("%d of %d characters: %w", n, MaxLength, ErrMemoryTooLong)
	}
	return nil
}

// Submit validates text and, when it passes, invokes OnSubmit.
func (f *Form) Submit(text string) (Submission, error) {
	if err := f.Validate(text); err != nil {
		return Submission{}, err
	}
	sub := Submission{Text: text, Morse: f.Preview(text)}
	if f.OnSubmit != nil {
		f.OnSubmit(sub)
	}
	return sub, nil
}
