// Package tg holds the shared chat state and the boundary to the chat
// backend. UI components read the store through Context and hand work to the
// backend as fire-and-forget requests; the Service consumes those requests,
// talks to a Client, writes results back into the store, and announces them
// through the event stream.
package tg

import (
	"strings"
	"time"
)

// User is a chat participant as known to the backend.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	Online    bool
	Verified  bool
}

// FullName joins the first and last name, falling back to the username.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// MessageEntry is a single message in a chat history.
type MessageEntry struct {
	ID        int64
	ChatID    int64
	SenderID  int64
	Text      string
	Timestamp time.Time
	Outgoing  bool
}

// Chat is one row of the chat index. User is nil for group chats.
type Chat struct {
	ID           int64
	Name         string
	User         *User
	LastMessage  *MessageEntry
	UnreadCount  int
	MarkedUnread bool

	// Read markers as reported by the backend; outbox tracks how far the
	// peer has read our messages.
	LastReadInboxID  int64
	LastReadOutboxID int64
}

// IsOnline reports whether the chat's peer is currently online. Group chats
// have no single peer and always report false.
func (c Chat) IsOnline() bool {
	return c.User != nil && c.User.Online
}

// IsVerified reports whether the peer carries the backend's verified mark.
func (c Chat) IsVerified() bool {
	return c.User != nil && c.User.Verified
}

// HasUnread reports whether the row should show an unread indicator, either
// from an actual unread count or a manual marked-unread flag.
func (c Chat) HasUnread() bool {
	return c.UnreadCount > 0 || c.MarkedUnread
}
