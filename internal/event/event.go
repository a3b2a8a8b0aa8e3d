// Package event defines the internal event stream vocabulary for gram.
//
// Events are produced by the terminal multiplexer (input, render ticks,
// resizes) or posted by the backend service (data arrival). They are consumed
// only by the main loop and are immutable once constructed.
package event

// Event is a single occurrence from the outside world or the runtime itself.
type Event interface {
	isEvent()
}

// Init is the first event on the stream, emitted once when the producer
// task starts.
type Init struct{}

// Quit requests immediate session teardown. It is produced by the reserved
// fail-safe keybinding inside the multiplexer, bypassing the action layer.
type Quit struct{}

// Render is emitted at the configured frame rate and drives the draw pass.
type Render struct{}

// KeyPress is a single key press. Key repeat and key release notifications
// are filtered out by the multiplexer.
type KeyPress struct {
	Key
}

// Mouse is a pointer notification, forwarded unfiltered.
type MouseMsg struct {
	Mouse
}

// Resize reports the new terminal dimensions in cells.
type Resize struct {
	Width  int
	Height int
}

// Paste carries the text of one bracketed-paste block.
type Paste struct {
	Text string
}

// FocusGained and FocusLost are placeholder variants for terminal focus
// notifications. The multiplexer currently decodes but does not act on them.
type FocusGained struct{}
type FocusLost struct{}

// DataKind identifies which backend dataset a DataArrived event refers to.
type DataKind int

const (
	DataChats DataKind = iota
	DataHistory
	DataRead
	DataSent
	DataIncoming
)

func (k DataKind) String() string {
	switch k {
	case DataChats:
		return "chats"
	case DataHistory:
		return "history"
	case DataRead:
		return "read"
	case DataSent:
		return "sent"
	case DataIncoming:
		return "incoming"
	default:
		return "unknown"
	}
}

// DataArrived is posted into the event stream by the backend service after a
// fire-and-forget request completes and shared state has been updated.
// Components observe the new data on their next draw; the event itself only
// tells the loop that something changed.
type DataArrived struct {
	Kind   DataKind
	ChatID int64
}

func (Init) isEvent()        {}
func (Quit) isEvent()        {}
func (Render) isEvent()      {}
func (KeyPress) isEvent()    {}
func (MouseMsg) isEvent()    {}
func (Resize) isEvent()      {}
func (Paste) isEvent()       {}
func (FocusGained) isEvent() {}
func (FocusLost) isEvent()   {}
func (DataArrived) isEvent() {}
