package ui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/frame"
	"github.com/solvere/gram/internal/logger"
	"github.com/solvere/gram/internal/tg"
)

// noSelection is the selected-index sentinel for "nothing selected".
const noSelection = -1

// maxNameCells caps how many terminal cells a chat name may take in a row,
// measured in display cells so wide runes count double.
const maxNameCells = 24

// entry is one presentable chat row, derived from the store's index.
type entry struct {
	chatID   int64
	name     string
	preview  string
	when     string
	unread   int
	marked   bool
	online   bool
	verified bool
	user     *tg.User
}

// ChatList shows the chat index and owns the selection state. Navigation is
// pure state manipulation; opening a chat writes the shared open-chat state,
// hands focus to the prompt, and fires the history and read-marker requests.
type ChatList struct {
	store   *tg.Context
	actions chan<- action.Action

	entries  []entry
	selected int
	offset   int
	focused  bool
	pageSize int

	log *slog.Logger
}

// NewChatList creates a chat list over the shared store. pageSize is the
// LoadChats window used for the midpoint prefetch.
func NewChatList(store *tg.Context, pageSize int) *ChatList {
	return &ChatList{
		store:    store,
		selected: noSelection,
		pageSize: pageSize,
		log:      logger.ComponentLogger("ChatList"),
	}
}

// RegisterActionHandler wires the channel follow-up actions are emitted into.
func (c *ChatList) RegisterActionHandler(actions chan<- action.Action) {
	c.actions = actions
}

// Focus marks the chat list focused.
func (c *ChatList) Focus() { c.focused = true }

// Unfocus clears the focus flag.
func (c *ChatList) Unfocus() { c.focused = false }

// Focused reports whether the chat list currently has focus.
func (c *ChatList) Focused() bool { return c.focused }

// Selected returns the selected index, or noSelection.
func (c *ChatList) Selected() int { return c.selected }

// Len returns how many entries the last draw pass pulled from the store.
func (c *ChatList) Len() int { return len(c.entries) }

// Update reacts to chat list actions; everything else is a no-op.
func (c *ChatList) Update(a action.Action) {
	switch a.(type) {
	case action.ChatListNext:
		c.next()
	case action.ChatListPrevious:
		c.previous()
	case action.ChatListUnselect:
		c.selected = noSelection
	case action.ChatListOpen:
		c.open()
	default:
	}
}

// next advances the selection by one, capped at the last entry. Selecting
// past the midpoint of the loaded window prefetches the next batch so the
// user never waits at the bottom of the list.
func (c *ChatList) next() {
	if len(c.entries) == 0 {
		return
	}
	prev := c.selected
	if c.selected == noSelection {
		c.selected = 0
	} else if c.selected < len(c.entries)-1 {
		c.selected++
	}
	if c.selected != prev && c.selected == len(c.entries)/2 {
		c.log.Debug("midpoint reached, prefetching", "index", c.selected, "loaded", len(c.entries))
		c.store.Send(tg.NewLoadChats(tg.ChatListMain, len(c.entries)+c.pageSize))
	}
}

// previous moves the selection up by one, floored at the first entry. From
// no selection it lands on the first entry, same as next.
func (c *ChatList) previous() {
	if len(c.entries) == 0 {
		return
	}
	if c.selected == noSelection || c.selected == 0 {
		c.selected = 0
		return
	}
	c.selected--
}

// open confirms the current selection. Without a selection it does nothing.
// The order matters: the open-chat state must be written before focus moves
// to the prompt, and the history request must be in flight before the read
// marker so the backend marks what is about to be displayed.
func (c *ChatList) open() {
	if c.selected == noSelection || c.selected >= len(c.entries) {
		return
	}
	e := c.entries[c.selected]

	c.store.SetOpenChat(e.chatID, e.user)
	c.emit(action.FocusComponent{Name: action.Prompt})
	c.store.Send(tg.NewGetChatHistory(e.chatID, c.pageSize))
	c.store.Send(tg.NewViewMessages(e.chatID))
}

func (c *ChatList) emit(a action.Action) {
	if c.actions == nil {
		return
	}
	c.actions <- a
}

// Draw re-pulls the chat index wholesale and renders the visible rows. When
// the index is not ready yet the previous entries are kept, so the list
// never flickers to empty during a reload.
func (c *ChatList) Draw(f *frame.Frame, area frame.Rect) error {
	if chats, ready := c.store.ChatsIndex(); ready {
		c.rebuild(chats)
	}

	width, height := area.Dx(), area.Dy()
	if width < 4 || height < 3 {
		return nil
	}

	panel := PanelStyle
	if c.focused {
		panel = PanelFocusedStyle
	}
	innerWidth := width - 2
	innerHeight := height - 2

	title := PanelTitleStyle.Render("Chats")
	rows := c.visibleRows(innerWidth, innerHeight-1)

	content := title
	if len(rows) > 0 {
		content += "\n" + strings.Join(rows, "\n")
	} else {
		content += "\n" + RowMutedStyle.Render(" loading chats...")
	}

	view := panel.Width(innerWidth).Height(innerHeight).Render(content)
	f.DrawString(view, area)
	return nil
}

// rebuild derives presentation rows from a fresh index snapshot and clamps
// the selection if the list shrank underneath it.
func (c *ChatList) rebuild(chats []tg.Chat) {
	entries := make([]entry, 0, len(chats))
	for _, chat := range chats {
		e := entry{
			chatID:   chat.ID,
			name:     chat.Name,
			unread:   chat.UnreadCount,
			marked:   chat.MarkedUnread,
			online:   chat.IsOnline(),
			verified: chat.IsVerified(),
			user:     chat.User,
		}
		if chat.LastMessage != nil {
			e.preview = previewText(chat.LastMessage.Text)
			e.when = previewTime(chat.LastMessage.Timestamp)
		}
		entries = append(entries, e)
	}
	c.entries = entries

	if c.selected >= len(c.entries) {
		if len(c.entries) == 0 {
			c.selected = noSelection
		} else {
			c.selected = len(c.entries) - 1
		}
	}
}

// visibleRows renders the window of entries around the selection.
func (c *ChatList) visibleRows(width, height int) []string {
	if height < 1 || len(c.entries) == 0 {
		return nil
	}

	if c.selected != noSelection {
		if c.selected < c.offset {
			c.offset = c.selected
		}
		if c.selected >= c.offset+height {
			c.offset = c.selected - height + 1
		}
	}
	if c.offset > len(c.entries)-1 {
		c.offset = len(c.entries) - 1
	}
	if c.offset < 0 {
		c.offset = 0
	}

	end := c.offset + height
	if end > len(c.entries) {
		end = len(c.entries)
	}

	rows := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		rows = append(rows, c.renderRow(c.entries[i], i == c.selected, width))
	}
	return rows
}

// renderRow lays out one chat row: glyphs, name, unread badge, timestamp on
// the first visual column group, truncated preview after.
func (c *ChatList) renderRow(e entry, selected bool, width int) string {
	glyph := " "
	if e.online {
		glyph = OnlineGlyphStyle.Render("●")
	}

	name := runewidth.Truncate(e.name, maxNameCells, "…")
	if e.verified {
		name += " " + VerifiedGlyphStyle.Render("✓")
	}

	badge := ""
	switch {
	case e.unread > 0:
		badge = UnreadBadgeStyle.Render(fmt.Sprintf(" (%d)", e.unread))
	case e.marked:
		badge = UnreadBadgeStyle.Render(" ●")
	}

	line := glyph + " " + name + badge
	if e.when != "" {
		pad := width - ansi.StringWidth(line) - ansi.StringWidth(e.when) - 3
		if pad > 0 {
			line += strings.Repeat(" ", pad) + RowMutedStyle.Render(e.when)
		}
	}

	row := line
	if e.preview != "" {
		row += "\n" + RowMutedStyle.Render("  "+ansi.Truncate(e.preview, width-4, "…"))
	}

	style := RowStyle
	if selected {
		style = RowSelectedStyle
	}
	return style.Width(width).Render(ansi.Truncate(row, width*2, ""))
}

// previewText flattens a message to a single line.
func previewText(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i] + "…"
	}
	return strings.TrimSpace(text)
}

// previewTime renders a compact timestamp: clock time today, date otherwise.
func previewTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	now := time.Now()
	if ts.Year() == now.Year() && ts.YearDay() == now.YearDay() {
		return ts.Format("15:04")
	}
	return ts.Format("Jan 02")
}

