package app

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/config"
	"github.com/solvere/gram/internal/event"
	"github.com/solvere/gram/internal/frame"
	"github.com/solvere/gram/internal/terminal"
	"github.com/solvere/gram/internal/tg"
)

// newTestApp builds an app over an in-memory pipe terminal and a demo
// backend. The terminal is not entered; tests that need the full loop use
// runTestApp instead.
func newTestApp(t *testing.T) *App {
	t.Helper()
	term := terminal.New(terminal.WithTTY(strings.NewReader(""), io.Discard))
	return New(config.Default(), "test", term, tg.NewDemoMemory(5))
}

// runTestApp starts the full loop over a pipe and returns a writer for
// synthetic input plus the loop's result channel.
func runTestApp(t *testing.T) (*App, func(string), <-chan error) {
	t.Helper()

	pr, pw := io.Pipe()
	term := terminal.New(
		terminal.WithTTY(pr, io.Discard),
		terminal.WithFrameRate(60),
	)
	a := New(config.Default(), "test", term, tg.NewDemoMemory(5))
	a.config.NotificationsEnabled = false

	result := make(chan error, 1)
	go func() {
		result <- a.Run(context.Background())
	}()

	// Give the loop a size so draw passes run and the chat list rebuilds
	// its entries from the store.
	term.Post(event.Resize{Width: 80, Height: 24})

	write := func(s string) {
		if _, err := pw.Write([]byte(s)); err != nil {
			t.Fatalf("pipe write failed: %v", err)
		}
	}
	t.Cleanup(func() { pw.Close() })
	return a, write, result
}

// waitFor polls until the condition holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestInitialFocusIsChatList(t *testing.T) {
	a := newTestApp(t)

	if a.Focus() != action.ChatList {
		t.Errorf("focus = %q, want chat list", a.Focus())
	}
	if !a.chatList.Focused() {
		t.Error("chat list not focused")
	}
	if a.prompt.Focused() {
		t.Error("prompt focused at start")
	}
}

func TestFocusTransferIsExclusive(t *testing.T) {
	a := newTestApp(t)

	a.dispatch(action.FocusComponent{Name: action.Prompt})

	if a.Focus() != action.Prompt {
		t.Errorf("focus = %q, want prompt", a.Focus())
	}
	if a.chatList.Focused() {
		t.Error("chat list still focused after transfer")
	}
	if !a.prompt.Focused() {
		t.Error("prompt not focused after transfer")
	}

	a.dispatch(action.FocusComponent{Name: action.ChatList})
	if a.prompt.Focused() || !a.chatList.Focused() {
		t.Error("focus did not return to the chat list")
	}
}

func TestStatusBarNeverGainsFocus(t *testing.T) {
	a := newTestApp(t)

	a.dispatch(action.FocusComponent{Name: action.StatusBar})

	if a.statusBar.Focused() {
		t.Error("status bar reported focus")
	}
}

func TestDispatchBroadcastsToAllComponents(t *testing.T) {
	a := newTestApp(t)
	a.store.SetChats([]tg.Chat{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}})
	f := frame.New(80, 24)
	if err := a.chatList.Draw(f, frame.NewRect(0, 0, 40, 20)); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// One action goes to everyone; only the chat list reacts, and the
	// status bar sees focus transfers it was not addressed by.
	a.dispatch(action.ChatListNext{})
	if got := a.chatList.Selected(); got != 0 {
		t.Errorf("selected = %d, want 0", got)
	}

	a.dispatch(action.PromptInput{Text: "x"})
	if got := a.chatList.Selected(); got != 0 {
		t.Errorf("selected changed on a prompt action: %d", got)
	}
	if a.prompt.Text() != "x" {
		t.Errorf("prompt text = %q", a.prompt.Text())
	}
}

func TestKeymapDependsOnFocus(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name  string
		focus action.ComponentName
		key   event.Key
		want  action.Action
	}{
		{"chat list down arrow", action.ChatList, event.Key{Code: event.KeyDown}, action.ChatListNext{}},
		{"chat list vim down", action.ChatList, event.Key{Code: event.KeyRune, Rune: 'j'}, action.ChatListNext{}},
		{"chat list vim up", action.ChatList, event.Key{Code: event.KeyRune, Rune: 'k'}, action.ChatListPrevious{}},
		{"chat list enter opens", action.ChatList, event.Key{Code: event.KeyEnter}, action.ChatListOpen{}},
		{"chat list esc clears", action.ChatList, event.Key{Code: event.KeyEscape}, action.ChatListUnselect{}},
		{"chat list q quits", action.ChatList, event.Key{Code: event.KeyRune, Rune: 'q'}, action.Quit{}},
		{"prompt enter submits", action.Prompt, event.Key{Code: event.KeyEnter}, action.PromptSubmit{}},
		{"prompt backspace", action.Prompt, event.Key{Code: event.KeyBackspace}, action.PromptBackspace{}},
		{"prompt esc returns to list", action.Prompt, event.Key{Code: event.KeyEscape}, action.FocusComponent{Name: action.ChatList}},
		{"prompt rune composes", action.Prompt, event.Key{Code: event.KeyRune, Rune: 'q'}, action.PromptInput{Text: "q"}},
		{"prompt space composes", action.Prompt, event.Key{Code: event.KeySpace}, action.PromptInput{Text: " "}},
		{"ctrl+c quits anywhere", action.Prompt, event.Key{Code: event.KeyRune, Rune: 'c', Mod: event.ModCtrl}, action.Quit{}},
		{"ctrl+z suspends anywhere", action.ChatList, event.Key{Code: event.KeyRune, Rune: 'z', Mod: event.ModCtrl}, action.Suspend{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.setFocus(tt.focus)
			got := a.translateKey(tt.key)
			if len(got) != 1 {
				t.Fatalf("translated to %d actions, want 1", len(got))
			}
			if got[0] != tt.want {
				t.Errorf("action = %#v, want %#v", got[0], tt.want)
			}
		})
	}
}

func TestUnboundKeysTranslateToNothing(t *testing.T) {
	a := newTestApp(t)

	unbound := []event.Key{
		{Code: event.KeyF5},
		{Code: event.KeyRune, Rune: 'x', Mod: event.ModAlt},
		{Code: event.KeyPgUp},
	}
	for _, k := range unbound {
		if got := a.translateKey(k); len(got) != 0 {
			t.Errorf("key %q translated to %v, want nothing", k.String(), got)
		}
	}

	// Unbound in the chat list, but a composing rune in the prompt.
	a.setFocus(action.Prompt)
	if got := a.translateKey(event.Key{Code: event.KeyRune, Rune: 'x', Mod: event.ModAlt}); len(got) != 0 {
		t.Errorf("alt chord composed text: %v", got)
	}
}

func TestWheelScrollsChatListOnlyWhenFocused(t *testing.T) {
	a := newTestApp(t)

	down := event.Mouse{Button: event.MouseWheelDown, Action: event.MousePress}
	if got := a.translateMouse(down); len(got) != 1 {
		t.Fatalf("wheel down = %v", got)
	}

	a.setFocus(action.Prompt)
	if got := a.translateMouse(down); len(got) != 0 {
		t.Errorf("wheel bound while prompt focused: %v", got)
	}
}

func TestRunQuitsOnReservedKey(t *testing.T) {
	_, write, result := runTestApp(t)

	write("\x11") // ctrl+q

	select {
	case err := <-result:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not quit on the reserved key")
	}
}

func TestTeardownReleasesForwarder(t *testing.T) {
	a, write, result := runTestApp(t)

	write("\x11") // ctrl+q
	select {
	case <-result:
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not quit")
	}

	select {
	case <-a.forwarderDone:
	case <-time.After(5 * time.Second):
		t.Fatal("forwarder still running after teardown")
	}
}

func TestBrowseOpenComposeSendFlow(t *testing.T) {
	a, write, result := runTestApp(t)

	// The Init event fires the initial LoadChats; a later draw pass pulls
	// the index into the list.
	waitFor(t, "chat index", func() bool {
		_, ready := a.store.ChatsIndex()
		return ready
	})
	// Several frames at 60fps, so at least one draw pass rebuilt the
	// entries before navigation starts.
	time.Sleep(200 * time.Millisecond)

	// Move onto the third chat and open it.
	write("jjj\r")
	waitFor(t, "open chat and prompt focus", func() bool {
		id, _ := a.store.OpenChat()
		return id == 1002 && a.Focus() == action.Prompt
	})

	// Compose and send; the echo lands in the open chat buffer.
	write("hi there\r")
	waitFor(t, "sent message in buffer", func() bool {
		msgs := a.store.Messages()
		return len(msgs) > 0 && msgs[len(msgs)-1].Text == "hi there" && msgs[len(msgs)-1].Outgoing
	})

	// Esc returns focus to the list; q now quits again.
	write("\x1b")
	waitFor(t, "focus back on chat list", func() bool {
		return a.Focus() == action.ChatList
	})
	write("q")

	select {
	case err := <-result:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop did not quit")
	}
}
