package ui

import (
	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/frame"
)

// Component is the contract every UI component satisfies.
//
// RegisterActionHandler hands the component the channel it emits follow-up
// actions into; the send side never blocks because the channel is drained by
// the same loop that called Update, so emissions are buffered by the action
// mailbox, not the component.
//
// Update receives every action the loop dispatches, relevant or not, and
// must return quickly without blocking. Draw presents current state into
// the given region and is the only place a component reads shared state.
//
// Focus and Unfocus toggle the focus flag; the main loop guarantees at most
// one component is focused at a time.
type Component interface {
	RegisterActionHandler(actions chan<- action.Action)
	Update(a action.Action)
	Draw(f *frame.Frame, area frame.Rect) error
	Focus()
	Unfocus()
	Focused() bool
}
