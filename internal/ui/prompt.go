package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/frame"
	"github.com/solvere/gram/internal/tg"
)

// Prompt is the message composition line. Text accumulates from typed
// runes, bracketed paste, and clipboard paste; submit fires a
// fire-and-forget SendMessage for the open chat and clears the line.
type Prompt struct {
	store   *tg.Context
	actions chan<- action.Action

	text    string
	focused bool
}

// NewPrompt creates a prompt over the shared store.
func NewPrompt(store *tg.Context) *Prompt {
	return &Prompt{store: store}
}

// RegisterActionHandler wires the follow-up action channel.
func (p *Prompt) RegisterActionHandler(actions chan<- action.Action) {
	p.actions = actions
}

// Focus marks the prompt focused.
func (p *Prompt) Focus() { p.focused = true }

// Unfocus clears the focus flag.
func (p *Prompt) Unfocus() { p.focused = false }

// Focused reports whether the prompt currently has focus.
func (p *Prompt) Focused() bool { return p.focused }

// Text returns the current composition text.
func (p *Prompt) Text() string { return p.text }

// Update reacts to prompt actions; everything else is a no-op.
func (p *Prompt) Update(a action.Action) {
	switch act := a.(type) {
	case action.PromptInput:
		p.text += act.Text
	case action.PromptBackspace:
		p.backspace()
	case action.PromptSubmit:
		p.submit()
	default:
	}
}

// backspace removes the last grapheme cluster, not the last byte or rune,
// so multi-rune emoji disappear in one keystroke.
func (p *Prompt) backspace() {
	if p.text == "" {
		return
	}
	gr := uniseg.NewGraphemes(p.text)
	last := 0
	for gr.Next() {
		start, _ := gr.Positions()
		last = start
	}
	p.text = p.text[:last]
}

// submit sends the composed text to the open chat. With no open chat or an
// empty line it does nothing; the text is kept so nothing is lost.
func (p *Prompt) submit() {
	text := strings.TrimSpace(p.text)
	if text == "" {
		return
	}
	chatID, _ := p.store.OpenChat()
	if chatID == tg.NoOpenChat {
		return
	}
	p.store.Send(tg.NewSendMessage(chatID, text))
	p.text = ""
}

// Draw renders the composition line inside a bordered panel. The cursor
// block is shown only while focused.
func (p *Prompt) Draw(f *frame.Frame, area frame.Rect) error {
	width, height := area.Dx(), area.Dy()
	if width < 4 || height < 3 {
		return nil
	}

	panel := PanelStyle
	if p.focused {
		panel = PanelFocusedStyle
	}
	innerWidth := width - 2

	var line string
	switch {
	case p.text == "" && !p.focused:
		line = PromptPlaceholderStyle.Render("select a chat, then type your message")
	default:
		visible := ansi.Truncate(p.text, innerWidth-3, "…")
		line = PromptTextStyle.Render(visible)
		if p.focused {
			line += CursorStyle.Render(" ")
		}
	}

	view := panel.Width(innerWidth).Height(height - 2).Render(" " + line)
	f.DrawString(view, area)
	return nil
}
