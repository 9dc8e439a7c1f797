// Package control defines lightweight command messages used by the UI to
// request lighthouse changes from the application command loop. The loop
// centralizes those changes so the flasher is only ever reconfigured from
// one goroutine.
package control

import "MemoryMorse/memory"

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdShow CommandType = iota // put Memory on the lighthouse
	CmdStart
	CmdStop
	CmdNext    // advance the playlist
	CmdEnqueue // add Memory to the playlist
	CmdAudio   // enable or mute the tone per Enabled
)

func (t CommandType) String() string {
	switch t {
	case CmdShow:
		return "show"
	case CmdStart:
		return "start"
	case CmdStop:
		return "stop"
	case CmdNext:
		return "next"
	case CmdEnqueue:
		return "enqueue"
	case CmdAudio:
		return "audio"
	}
	return "unknown"
}

// Command is the message sent from the UI to AppManager.commandLoop. The
// optional Reply channel is used by the loop to confirm completion back to
// the sender.
type Command struct {
	Type    CommandType
	Memory  memory.Memory // CmdShow, CmdEnqueue
	Enabled bool          // CmdAudio
	Reply   chan error    // optional reply channel
}
