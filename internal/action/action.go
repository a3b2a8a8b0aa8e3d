// Package action defines the command vocabulary of gram.
//
// Actions are intents to change UI state, derived from events by the main
// loop's key maps or emitted by components themselves. Every component
// receives every action and pattern-matches on the variants it understands;
// everything else falls through to a no-op default arm. This broadcast
// dispatch keeps component wiring static at the cost of auditing all
// components when a variant is added.
package action

// ComponentName identifies a component in the registry. Components are owned
// by the main loop for the full process lifetime and are never destroyed
// mid-session.
type ComponentName string

const (
	ChatList  ComponentName = "chat_list"
	Prompt    ComponentName = "prompt"
	StatusBar ComponentName = "status_bar"
)

// Action is an intent to change UI or application state.
type Action interface {
	isAction()
}

// Lifecycle

// Quit ends the session after best-effort terminal restoration.
type Quit struct{}

// Suspend hands the terminal back to the shell (job control). The main loop
// resumes the UI when the process receives SIGCONT.
type Suspend struct{}

// Focus transfer

// FocusComponent moves focus to the named component. The previously focused
// component is unfocused first, so exactly one component holds focus.
type FocusComponent struct {
	Name ComponentName
}

// Chat list navigation

type ChatListNext struct{}
type ChatListPrevious struct{}
type ChatListUnselect struct{}
type ChatListOpen struct{}

// Prompt editing

// PromptInput appends text to the prompt, from typed runes, bracketed
// paste, or the system clipboard.
type PromptInput struct {
	Text string
}

type PromptBackspace struct{}

// PromptSubmit sends the prompt content to the open chat and clears it.
type PromptSubmit struct{}

func (Quit) isAction()             {}
func (Suspend) isAction()          {}
func (FocusComponent) isAction()   {}
func (ChatListNext) isAction()     {}
func (ChatListPrevious) isAction() {}
func (ChatListUnselect) isAction() {}
func (ChatListOpen) isAction()     {}
func (PromptInput) isAction()      {}
func (PromptBackspace) isAction()  {}
func (PromptSubmit) isAction()     {}
