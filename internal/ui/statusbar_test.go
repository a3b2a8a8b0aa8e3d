package ui

import (
	"testing"

	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/tg"
)

func TestStatusBarNeverTakesFocus(t *testing.T) {
	s := NewStatusBar(tg.NewContext())

	s.Focus()
	if s.Focused() {
		t.Error("status bar reported focused")
	}
}

func TestStatusBarTracksFocusTransfers(t *testing.T) {
	s := NewStatusBar(tg.NewContext())
	if s.focus != action.ChatList {
		t.Errorf("initial focus = %q, want chat list", s.focus)
	}

	s.Update(action.FocusComponent{Name: action.Prompt})
	if s.focus != action.Prompt {
		t.Errorf("focus = %q after transfer, want prompt", s.focus)
	}

	s.Update(action.ChatListNext{})
	if s.focus != action.Prompt {
		t.Errorf("focus = %q after unrelated action, want prompt", s.focus)
	}
}
