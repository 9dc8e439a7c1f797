// Package morse converts between text, Morse code strings and the timed
// symbol sequences the lighthouse flashes.
package morse

import "time"

// Symbol is one timing unit of a Morse message.
type Symbol int

const (
	Dot Symbol = iota
	Dash
	Space // word gap, the beam stays dark
)

func (s Symbol) String() string {
	switch s {
	case Dot:
		return "dot"
	case Dash:
		return "dash"
	case Space:
		return "space"
	}
	return "unknown"
}

// Sequence is an ordered list of symbols. It is rebuilt, never edited.
type Sequence []Symbol

// Parse scans code one character at a time. Only '.', '-' and ' ' carry
// timing; every other character, including the '/' word separator, is
// dropped.
func Parse(code string) Sequence {
	seq := make(Sequence, 0, len(code))
	for _, r := range code {
		switch r {
		case '.':
			seq = append(seq, Dot)
		case '-':
			seq = append(seq, Dash)
		case ' ':
			seq = append(seq, Space)
		}
	}
	return seq
}

func (s Sequence) String() string {
	b := make([]byte, len(s))
	for i, sym := range s {
		switch sym {
		case Dot:
			b[i] = '.'
		case Dash:
			b[i] = '-'
		default:
			b[i] = ' '
		}
	}
	return string(b)
}

// Timing holds the beam durations for each symbol.
type Timing struct {
	DotOn     time.Duration `yaml:"dot_on"`
	DashOn    time.Duration `yaml:"dash_on"`
	SymbolGap time.Duration `yaml:"symbol_gap"` // dark time after a dot or dash
	WordGap   time.Duration `yaml:"word_gap"`   // dark time of a Space
}

// DefaultTiming is the lighthouse's standard rhythm: a dash is three dots.
var DefaultTiming = Timing{
	DotOn:     200 * time.Millisecond,
	DashOn:    600 * time.Millisecond,
	SymbolGap: 200 * time.Millisecond,
	WordGap:   600 * time.Millisecond,
}

// Durations returns how long the beam is lit for sym and how long it stays
// dark before the next symbol. A Space is never lit.
func (t Timing) Durations(sym Symbol) (on, off time.Duration) {
	switch sym {
	case Dash:
		return t.DashOn, t.SymbolGap
	case Space:
		return 0, t.WordGap
	default:
		return t.DotOn, t.SymbolGap
	}
}

// Cycle returns the length of one full pass over seq.
func (t Timing) Cycle(seq Sequence) time.Duration {
	var total time.Duration
	for _, sym := range seq {
		on, off := t.Durations(sym)
		total += on + off
	}
	return total
}

// Valid reports whether every lit and dark period is positive.
func (t Timing) Valid() bool {
	return t.DotOn > 0 && t.DashOn > 0 && t.SymbolGap > 0 && t.WordGap > 0
}
