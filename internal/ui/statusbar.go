package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/frame"
	"github.com/solvere/gram/internal/tg"
)

// StatusBar shows the open chat title and focus-dependent key hints. It is
// never focusable; Focus is a no-op and Focused always reports false. It
// tracks who holds focus by watching the FocusComponent broadcasts.
type StatusBar struct {
	store *tg.Context
	focus action.ComponentName
}

// NewStatusBar creates a status bar over the shared store.
func NewStatusBar(store *tg.Context) *StatusBar {
	return &StatusBar{store: store, focus: action.ChatList}
}

// RegisterActionHandler is a no-op; the status bar emits nothing.
func (s *StatusBar) RegisterActionHandler(chan<- action.Action) {}

// Focus is a no-op; the status bar never takes focus.
func (s *StatusBar) Focus() {}

// Unfocus is a no-op.
func (s *StatusBar) Unfocus() {}

// Focused always reports false.
func (s *StatusBar) Focused() bool { return false }

// Update tracks focus transfers; everything else is a no-op.
func (s *StatusBar) Update(a action.Action) {
	switch act := a.(type) {
	case action.FocusComponent:
		s.focus = act.Name
	default:
	}
}

// hint pairs a key label with what it does.
type hint struct {
	key  string
	desc string
}

var chatListHints = []hint{
	{"↑/↓", "navigate"},
	{"enter", "open"},
	{"esc", "clear"},
	{"ctrl+q", "quit"},
}

var promptHints = []hint{
	{"enter", "send"},
	{"ctrl+v", "paste"},
	{"esc", "back to chats"},
	{"ctrl+q", "quit"},
}

// Draw renders one line: the open chat title on the left, key hints for the
// focused component on the right.
func (s *StatusBar) Draw(f *frame.Frame, area frame.Rect) error {
	width := area.Dx()
	if width < 4 || area.Dy() < 1 {
		return nil
	}

	title := "gram"
	if chatID, user := s.store.OpenChat(); chatID != tg.NoOpenChat {
		if chat, ok := s.store.ChatByID(chatID); ok {
			title = chat.Name
		} else if user != nil {
			title = user.FullName()
		}
	}
	left := StatusTitleStyle.Render(title)

	hints := chatListHints
	if s.focus == action.Prompt {
		hints = promptHints
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, StatusKeyStyle.Render(h.key)+" "+h.desc)
	}
	right := strings.Join(parts, "  ")

	pad := width - ansi.StringWidth(left) - ansi.StringWidth(right) - 2
	if pad < 1 {
		pad = 1
	}
	line := left + strings.Repeat(" ", pad) + right

	f.DrawString(StatusBarStyle.Render(ansi.Truncate(line, width-2, "")), area)
	return nil
}
