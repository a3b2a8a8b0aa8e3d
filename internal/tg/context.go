package tg

import (
	"sync"

	"github.com/solvere/gram/internal/mailbox"
)

// Context is the single shared store for chat state. Components read it
// during Draw; only the backend Service writes the chat index and message
// buffer, and only the chat list writes the open-chat fields, so each field
// has one writer and last-write-wins is safe under the RWMutex.
//
// Context also carries the request mailbox. Enqueueing a request never
// blocks and never waits for a result.
type Context struct {
	mu sync.RWMutex

	chats      []Chat
	chatsReady bool

	openChatID   int64
	openUser     *User
	openMessages []MessageEntry

	requests *mailbox.Mailbox[Request]
}

// NoOpenChat is the openChatID sentinel for "no chat is open".
const NoOpenChat int64 = 0

// NewContext creates an empty store with a live request mailbox.
func NewContext() *Context {
	return &Context{
		requests: mailbox.New[Request](),
	}
}

// ChatsIndex returns a snapshot of the chat index. ready is false until the
// first LoadChats completes; callers keep their previous state in that case.
func (c *Context) ChatsIndex() (chats []Chat, ready bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.chatsReady {
		return nil, false
	}
	out := make([]Chat, len(c.chats))
	copy(out, c.chats)
	return out, true
}

// SetChats replaces the chat index wholesale and marks it ready.
func (c *Context) SetChats(chats []Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chats = chats
	c.chatsReady = true
}

// ChatByID looks up a chat in the current index.
func (c *Context) ChatByID(id int64) (Chat, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, chat := range c.chats {
		if chat.ID == id {
			return chat, true
		}
	}
	return Chat{}, false
}

// OpenChat returns the currently open chat id and its peer, or NoOpenChat
// and nil when nothing is open.
func (c *Context) OpenChat() (int64, *User) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.openChatID, c.openUser
}

// SetOpenChat records which chat the user is looking at and drops the
// previous chat's message buffer.
func (c *Context) SetOpenChat(id int64, user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openChatID = id
	c.openUser = user
	c.openMessages = nil
}

// ClearOpenChat resets the open-chat state entirely.
func (c *Context) ClearOpenChat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.openChatID = NoOpenChat
	c.openUser = nil
	c.openMessages = nil
}

// Messages returns a snapshot of the open chat's message buffer.
func (c *Context) Messages() []MessageEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]MessageEntry, len(c.openMessages))
	copy(out, c.openMessages)
	return out
}

// SetMessages replaces the open chat's message buffer, but only when the
// history still belongs to the chat that is open. A history answer that
// arrives after the user moved on is discarded.
func (c *Context) SetMessages(chatID int64, msgs []MessageEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openChatID != chatID {
		return
	}
	c.openMessages = msgs
}

// AppendMessage adds one message to the open chat's buffer when the chat
// matches; otherwise it is dropped here and only the index row changes.
func (c *Context) AppendMessage(msg MessageEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openChatID != msg.ChatID {
		return
	}
	c.openMessages = append(c.openMessages, msg)
}

// Send enqueues a backend request. It never blocks; the return value is
// false only after Close, which callers may ignore during teardown.
func (c *Context) Send(req Request) bool {
	return c.requests.Send(req)
}

// Requests exposes the request stream for the Service.
func (c *Context) Requests() <-chan Request {
	return c.requests.Out()
}

// Close shuts the request mailbox. Pending requests are still delivered.
func (c *Context) Close() {
	c.requests.Close()
}
