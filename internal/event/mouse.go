package event

// MouseButton identifies which button a mouse notification refers to.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseMiddle
	MouseRight
	MouseWheelUp
	MouseWheelDown
)

// MouseAction distinguishes press, release, and motion notifications.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
)

// Mouse describes one pointer notification in terminal cell coordinates,
// zero-based with origin at the top-left of the terminal.
type Mouse struct {
	X      int
	Y      int
	Button MouseButton
	Action MouseAction
	Mod    KeyMod
}
