package morse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownToken is returned by Decode for a token missing from the table.
var ErrUnknownToken = errors.New("unknown morse token")

// Entry pairs a character with its Morse token.
type Entry struct {
	Char  rune
	Token string
}

// table order is the order shown in the console's reference card.
var table = []Entry{
	{'a', ".-"}, {'b', "-..."}, {'c', "-.-."}, {'d', "-.."}, {'e', "."},
	{'f', "..-."}, {'g', "--."}, {'h', "...."}, {'i', ".."}, {'j', ".---"},
	{'k', "-.-"}, {'l', ".-.."}, {'m', "--"}, {'n', "-."}, {'o', "---"},
	{'p', ".--."}, {'q', "--.-"}, {'r', ".-."}, {'s', "..."}, {'t', "-"},
	{'u', "..-"}, {'v', "...-"}, {'w', ".--"}, {'x', "-..-"}, {'y', "-.--"},
	{'z', "--.."},
	{'0', "-----"}, {'1', ".----"}, {'2', "..---"}, {'3', "...--"},
	{'4', "....-"}, {'5', "....."}, {'6', "-...."}, {'7', "--..."},
	{'8', "---.."}, {'9', "----."},
	{' ', "/"},
	{'.', ".-.-.-"}, {',', "--..--"}, {'?', "..--.."}, {'\'', ".----."},
	{'!', "-.-.--"}, {'/', "-..-."}, {'(', "-.--."}, {')', "-.--.-"},
	{'&', ".-..."}, {':', "---..."}, {';', "-.-.-."}, {'=', "-...-"},
	{'+', ".-.-."}, {'-', "-....-"}, {'_', "..--.-"}, {'"', ".-..-."},
	{'$', "...-..-"}, {'@', ".--.-."},
}

var (
	toMorse = make(map[rune]string, len(table))
	toText  = make(map[string]rune, len(table))
)

func init() {
	for _, e := range table {
		toMorse[e.Char] = e.Token
		toText[e.Token] = e.Char
	}
}

// Reference returns the table in display order.
func Reference() []Entry {
	out := make([]Entry, len(table))
	copy(out, table)
	return out
}

// Encode lowercases text and joins the token of every known character with
// a single space. A literal space becomes "/". Unknown characters are
// dropped.
func Encode(text string) string {
	tokens := make([]string, 0, len(text))
	for _, r := range strings.ToLower(text) {
		if tok, ok := toMorse[r]; ok {
			tokens = append(tokens, tok)
		}
	}
	return strings.Join(tokens, " ")
}

// Decode inverts Encode. Tokens are separated by any run of whitespace; a
// token that is not an exact table match is an error.
func Decode(code string) (string, error) {
	var b strings.Builder
	for _, tok := range strings.Fields(code) {
		r, ok := toText[tok]
		if !ok {
			return "", fmt.Errorf("decode %q: %w", tok, ErrUnknownToken)
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// Canonical reduces text to what survives a trip through Morse: lower case,
// no untranslatable characters, single spaces, no leading or trailing space.
func Canonical(text string) string {
	// Encode only emits table tokens, so Decode cannot fail here.
	decoded, _ := Decode(Encode(text))
	return strings.Join(strings.Fields(decoded), " ")
}
