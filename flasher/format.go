package flasher

import (
	"fmt"
	"time"
)

// FormatDuration renders d as ss.s seconds, or mm:ss once it reaches a
// minute.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	sec := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// FormatProgress renders the position line of the lighthouse overlay.
func FormatProgress(s Snapshot) string {
	if s.Length == 0 {
		return fmt.Sprintf("no symbols, %d cycles", s.Cycles)
	}
	return fmt.Sprintf("symbol %d/%d, %d cycles", s.Index, s.Length, s.Cycles)
}
