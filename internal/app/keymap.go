package app

import (
	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/clipboard"
	"github.com/solvere/gram/internal/event"
	"github.com/solvere/gram/internal/keys"
)

// translateKey maps one key press to zero or more actions depending on
// which component holds focus. Unbound keys translate to nothing.
func (a *App) translateKey(k event.Key) []action.Action {
	s := k.String()

	// Session-wide bindings, independent of focus.
	switch s {
	case keys.CtrlC:
		return []action.Action{action.Quit{}}
	case keys.CtrlZ:
		return []action.Action{action.Suspend{}}
	}

	switch a.Focus() {
	case action.Prompt:
		return a.translatePromptKey(k, s)
	default:
		return translateChatListKey(s)
	}
}

func translateChatListKey(s string) []action.Action {
	switch s {
	case keys.Down, "j", keys.CtrlN:
		return []action.Action{action.ChatListNext{}}
	case keys.Up, "k", keys.CtrlP:
		return []action.Action{action.ChatListPrevious{}}
	case keys.Enter:
		return []action.Action{action.ChatListOpen{}}
	case keys.Escape:
		return []action.Action{action.ChatListUnselect{}}
	case "q":
		return []action.Action{action.Quit{}}
	}
	return nil
}

func (a *App) translatePromptKey(k event.Key, s string) []action.Action {
	switch s {
	case keys.Enter:
		return []action.Action{action.PromptSubmit{}}
	case keys.Backspace:
		return []action.Action{action.PromptBackspace{}}
	case keys.Escape:
		return []action.Action{action.FocusComponent{Name: action.ChatList}}
	case keys.Space:
		return []action.Action{action.PromptInput{Text: " "}}
	case keys.CtrlV:
		if text := clipboard.ReadText(); text != "" {
			return []action.Action{action.PromptInput{Text: text}}
		}
		return nil
	}

	// Plain and shifted runes feed the composition; anything with ctrl or
	// alt held is a binding, bound or not.
	if k.Code == event.KeyRune && k.Mod&(event.ModCtrl|event.ModAlt) == 0 {
		return []action.Action{action.PromptInput{Text: string(k.Rune)}}
	}
	return nil
}

// translateMouse maps wheel scrolling over the session to chat list
// navigation while the chat list is focused. Everything else is unbound.
func (a *App) translateMouse(m event.Mouse) []action.Action {
	if a.Focus() != action.ChatList {
		return nil
	}
	switch m.Button {
	case event.MouseWheelUp:
		return []action.Action{action.ChatListPrevious{}}
	case event.MouseWheelDown:
		return []action.Action{action.ChatListNext{}}
	}
	return nil
}
