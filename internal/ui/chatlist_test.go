package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/solvere/gram/internal/action"
	"github.com/solvere/gram/internal/frame"
	"github.com/solvere/gram/internal/tg"
)

// seedChats fills the store with n chats named chat-0..chat-n-1.
func seedChats(store *tg.Context, n int) {
	chats := make([]tg.Chat, n)
	for i := range chats {
		chats[i] = tg.Chat{ID: int64(i + 1), Name: fmt.Sprintf("chat-%d", i)}
	}
	store.SetChats(chats)
}

// newTestChatList returns a chat list whose entries are already rebuilt from
// a store seeded with n chats.
func newTestChatList(t *testing.T, n int) (*ChatList, *tg.Context, chan action.Action) {
	t.Helper()

	store := tg.NewContext()
	seedChats(store, n)

	actions := make(chan action.Action, 16)
	list := NewChatList(store, 20)
	list.RegisterActionHandler(actions)

	// Entries are pulled from the store during Draw.
	f := frame.New(80, 24)
	if err := list.Draw(f, frame.NewRect(0, 0, 40, 20)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	return list, store, actions
}

func drainRequests(store *tg.Context) []tg.Request {
	var reqs []tg.Request
	for {
		select {
		case req := <-store.Requests():
			reqs = append(reqs, req)
		case <-time.After(50 * time.Millisecond):
			return reqs
		}
	}
}

func TestSelectionStateMachine(t *testing.T) {
	tests := []struct {
		name    string
		entries int
		actions []action.Action
		want    int
	}{
		{"initially unselected", 3, nil, noSelection},
		{"first next selects index zero", 3, []action.Action{action.ChatListNext{}}, 0},
		{"next advances", 3, []action.Action{action.ChatListNext{}, action.ChatListNext{}}, 1},
		{"next caps at last entry", 3, []action.Action{
			action.ChatListNext{}, action.ChatListNext{}, action.ChatListNext{},
			action.ChatListNext{}, action.ChatListNext{},
		}, 2},
		{"previous from unselected lands on zero", 3, []action.Action{action.ChatListPrevious{}}, 0},
		{"previous floors at zero", 3, []action.Action{
			action.ChatListNext{}, action.ChatListPrevious{}, action.ChatListPrevious{},
		}, 0},
		{"previous steps back", 4, []action.Action{
			action.ChatListNext{}, action.ChatListNext{}, action.ChatListNext{}, action.ChatListPrevious{},
		}, 1},
		{"unselect clears", 3, []action.Action{
			action.ChatListNext{}, action.ChatListNext{}, action.ChatListUnselect{},
		}, noSelection},
		{"next on empty list stays unselected", 0, []action.Action{action.ChatListNext{}}, noSelection},
		{"previous on empty list stays unselected", 0, []action.Action{action.ChatListPrevious{}}, noSelection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, _, _ := newTestChatList(t, tt.entries)
			for _, a := range tt.actions {
				list.Update(a)
			}
			if got := list.Selected(); got != tt.want {
				t.Errorf("selected = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIrrelevantActionsAreIgnored(t *testing.T) {
	list, _, _ := newTestChatList(t, 3)
	list.Update(action.ChatListNext{})

	list.Update(action.PromptInput{Text: "hello"})
	list.Update(action.PromptSubmit{})
	list.Update(action.Quit{})

	if got := list.Selected(); got != 0 {
		t.Errorf("selected = %d after unrelated actions, want 0", got)
	}
}

func TestMidpointPrefetchFiresExactlyOnce(t *testing.T) {
	list, store, _ := newTestChatList(t, 5)

	// Three next presses walk 0, 1, 2; index 2 is the midpoint of five
	// loaded entries, so exactly one prefetch goes out.
	list.Update(action.ChatListNext{})
	list.Update(action.ChatListNext{})
	list.Update(action.ChatListNext{})

	reqs := drainRequests(store)
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want exactly 1 prefetch", len(reqs))
	}
	load, ok := reqs[0].(tg.LoadChats)
	if !ok {
		t.Fatalf("request = %T, want tg.LoadChats", reqs[0])
	}
	if load.Limit <= 5 {
		t.Errorf("prefetch limit = %d, want a window larger than the loaded 5", load.Limit)
	}
}

func TestMidpointPrefetchNotRepeatedAtRest(t *testing.T) {
	list, store, _ := newTestChatList(t, 5)

	for i := 0; i < 3; i++ {
		list.Update(action.ChatListNext{})
	}
	// Further next presses at the cap do not cross the midpoint again.
	for i := 0; i < 4; i++ {
		list.Update(action.ChatListNext{})
	}

	// The index walks 2 -> 3 -> 4 and stays; only the transition onto 2
	// crossed the midpoint.
	if reqs := drainRequests(store); len(reqs) != 1 {
		t.Errorf("got %d requests, want 1", len(reqs))
	}
}

func TestPrefetchNeverBlocksNavigation(t *testing.T) {
	list, _, _ := newTestChatList(t, 100)

	// Nobody drains the request mailbox; navigation must still run through
	// the whole list without stalling.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			list.Update(action.ChatListNext{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("navigation blocked on an undrained request mailbox")
	}
	if got := list.Selected(); got != 99 {
		t.Errorf("selected = %d, want 99", got)
	}
}

func TestOpenWritesStateThenFocusThenRequests(t *testing.T) {
	store := tg.NewContext()
	// Four entries: the walk to index 1 stays short of the midpoint, so the
	// only requests are the ones the open fires.
	seedChats(store, 4)

	list := NewChatList(store, 20)
	f := frame.New(80, 24)
	if err := list.Draw(f, frame.NewRect(0, 0, 40, 20)); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	// Unbuffered channel: at the moment the focus transfer is received, the
	// open-chat state must already be written and no request may be out yet.
	actions := make(chan action.Action)
	list.RegisterActionHandler(actions)

	type observation struct {
		openChat    int64
		focusTarget action.ComponentName
	}
	observed := make(chan observation, 1)
	go func() {
		a := <-actions
		fc := a.(action.FocusComponent)
		chatID, _ := store.OpenChat()
		observed <- observation{
			openChat:    chatID,
			focusTarget: fc.Name,
		}
	}()

	list.Update(action.ChatListNext{})
	list.Update(action.ChatListNext{})
	list.Update(action.ChatListOpen{})

	obs := <-observed
	if obs.openChat != 2 {
		t.Errorf("open chat at focus time = %d, want 2", obs.openChat)
	}
	if obs.focusTarget != action.Prompt {
		t.Errorf("focus target = %q, want %q", obs.focusTarget, action.Prompt)
	}

	reqs := drainRequests(store)
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want history then read-marker", len(reqs))
	}
	hist, ok := reqs[0].(tg.GetChatHistory)
	if !ok || hist.ChatID != 2 {
		t.Errorf("first request = %#v, want GetChatHistory for chat 2", reqs[0])
	}
	view, ok := reqs[1].(tg.ViewMessages)
	if !ok || view.ChatID != 2 {
		t.Errorf("second request = %#v, want ViewMessages for chat 2", reqs[1])
	}
}

func TestOpenWithoutSelectionIsNoOp(t *testing.T) {
	list, store, actions := newTestChatList(t, 3)

	list.Update(action.ChatListOpen{})

	if chatID, _ := store.OpenChat(); chatID != tg.NoOpenChat {
		t.Errorf("open chat = %d, want none", chatID)
	}
	if len(actions) != 0 {
		t.Errorf("%d actions emitted on no-op open", len(actions))
	}
	if reqs := drainRequests(store); len(reqs) != 0 {
		t.Errorf("%d requests fired on no-op open", len(reqs))
	}
}

func TestDrawRepullsIndexWholesale(t *testing.T) {
	list, store, _ := newTestChatList(t, 3)
	f := frame.New(80, 24)
	area := frame.NewRect(0, 0, 40, 20)

	seedChats(store, 6)
	if err := list.Draw(f, area); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(list.entries) != 6 {
		t.Errorf("entries = %d after grow, want 6", len(list.entries))
	}
}

func TestSelectionClampsWhenListShrinks(t *testing.T) {
	list, store, _ := newTestChatList(t, 5)
	f := frame.New(80, 24)
	area := frame.NewRect(0, 0, 40, 20)

	for i := 0; i < 5; i++ {
		list.Update(action.ChatListNext{})
	}
	if got := list.Selected(); got != 4 {
		t.Fatalf("precondition: selected = %d, want 4", got)
	}

	seedChats(store, 2)
	if err := list.Draw(f, area); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := list.Selected(); got != 1 {
		t.Errorf("selected = %d after shrink to 2, want 1", got)
	}

	store.SetChats(nil)
	if err := list.Draw(f, area); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := list.Selected(); got != noSelection {
		t.Errorf("selected = %d after shrink to empty, want unselected", got)
	}
}

func TestNotReadyIndexKeepsPreviousEntries(t *testing.T) {
	list, _, _ := newTestChatList(t, 3)

	// A store that has never completed a load reports not ready; the list
	// keeps what it has instead of blanking.
	fresh := tg.NewContext()
	list.store = fresh

	f := frame.New(80, 24)
	if err := list.Draw(f, frame.NewRect(0, 0, 40, 20)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if len(list.entries) != 3 {
		t.Errorf("entries = %d, want previous 3 kept", len(list.entries))
	}
}

// TestBrowseAndOpenFlow walks the full scenario: load five chats, move down
// three times, confirm. One prefetch at the midpoint, then the open
// sequence for the third chat.
func TestBrowseAndOpenFlow(t *testing.T) {
	list, store, actions := newTestChatList(t, 5)

	list.Update(action.ChatListNext{})
	list.Update(action.ChatListNext{})
	list.Update(action.ChatListNext{})
	if got := list.Selected(); got != 2 {
		t.Fatalf("selected = %d after three nexts, want 2", got)
	}

	list.Update(action.ChatListOpen{})

	chatID, _ := store.OpenChat()
	if chatID != 3 {
		t.Errorf("open chat = %d, want 3", chatID)
	}

	select {
	case a := <-actions:
		fc, ok := a.(action.FocusComponent)
		if !ok || fc.Name != action.Prompt {
			t.Errorf("emitted %#v, want FocusComponent(Prompt)", a)
		}
	default:
		t.Error("no focus transfer emitted")
	}

	reqs := drainRequests(store)
	if len(reqs) != 3 {
		t.Fatalf("got %d requests, want prefetch + history + read-marker", len(reqs))
	}
	if _, ok := reqs[0].(tg.LoadChats); !ok {
		t.Errorf("first request = %T, want the midpoint prefetch", reqs[0])
	}
	if hist, ok := reqs[1].(tg.GetChatHistory); !ok || hist.ChatID != 3 {
		t.Errorf("second request = %#v, want GetChatHistory for chat 3", reqs[1])
	}
	if view, ok := reqs[2].(tg.ViewMessages); !ok || view.ChatID != 3 {
		t.Errorf("third request = %#v, want ViewMessages for chat 3", reqs[2])
	}
}
