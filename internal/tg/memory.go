package tg

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/solvere/gram/internal/errors"
)

// Memory is an in-memory Client used by tests and --demo runs. It keeps a
// seeded chat index and per-chat histories, answers with pagination, and can
// simulate incoming traffic through the Streamer interface.
type Memory struct {
	mu        sync.Mutex
	chats     []Chat
	histories map[int64][]MessageEntry
	nextMsgID int64
	selfID    int64

	incoming chan MessageEntry
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{
		histories: make(map[int64][]MessageEntry),
		nextMsgID: 1,
		selfID:    1,
		incoming:  make(chan MessageEntry, 16),
	}
}

var demoNames = []string{
	"Ada Lovelace", "Grace Hopper", "Alan Turing", "Edsger Dijkstra",
	"Barbara Liskov", "Donald Knuth", "Margaret Hamilton", "Ken Thompson",
	"Frances Allen", "Dennis Ritchie", "Radia Perlman", "Tony Hoare",
}

// NewDemoMemory returns a backend seeded with n chats, each with a short
// history, suitable for the demo mode.
func NewDemoMemory(n int) *Memory {
	m := NewMemory()
	base := time.Now().Add(-time.Duration(n) * time.Hour)
	for i := 0; i < n; i++ {
		name := demoNames[i%len(demoNames)]
		if i >= len(demoNames) {
			name = fmt.Sprintf("%s %d", name, i/len(demoNames)+1)
		}
		user := &User{
			ID:        int64(100 + i),
			FirstName: name,
			Online:    i%3 == 0,
			Verified:  i%5 == 0,
		}
		chat := Chat{
			ID:          int64(1000 + i),
			Name:        name,
			User:        user,
			UnreadCount: i % 4,
		}
		m.SeedChat(chat, []string{
			"hey, are you around?",
			"let me know when you've had a look",
		}, base.Add(time.Duration(i)*time.Hour))
	}
	return m
}

// SeedChat installs a chat with a prebuilt history. The last history entry
// becomes the index row's preview.
func (m *Memory) SeedChat(chat Chat, texts []string, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var history []MessageEntry
	for i, text := range texts {
		msg := MessageEntry{
			ID:        m.nextMsgID,
			ChatID:    chat.ID,
			SenderID:  chat.ID,
			Text:      text,
			Timestamp: at.Add(time.Duration(i) * time.Minute),
		}
		m.nextMsgID++
		history = append(history, msg)
	}
	if len(history) > 0 {
		last := history[len(history)-1]
		chat.LastMessage = &last
	}
	m.histories[chat.ID] = history
	m.chats = append(m.chats, chat)
}

// LoadChats returns up to limit chats. The archive list is empty in the
// in-memory backend.
func (m *Memory) LoadChats(_ context.Context, list ChatList, limit int) ([]Chat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if list == ChatListArchive {
		return nil, nil
	}
	n := len(m.chats)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Chat, n)
	copy(out, m.chats[:n])
	return out, nil
}

// ChatHistory returns the most recent limit messages in chronological order.
func (m *Memory) ChatHistory(_ context.Context, chatID int64, limit int) ([]MessageEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history, ok := m.histories[chatID]
	if !ok {
		return nil, errors.ChatNotFound(chatID)
	}
	start := 0
	if limit > 0 && len(history) > limit {
		start = len(history) - limit
	}
	out := make([]MessageEntry, len(history)-start)
	copy(out, history[start:])
	return out, nil
}

// ViewMessages clears the chat's unread count.
func (m *Memory) ViewMessages(_ context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.chats {
		if m.chats[i].ID == chatID {
			m.chats[i].UnreadCount = 0
			m.chats[i].MarkedUnread = false
			return nil
		}
	}
	return errors.ChatNotFound(chatID)
}

// SendMessage appends an outgoing message to the chat's history and echoes
// it back.
func (m *Memory) SendMessage(_ context.Context, chatID int64, text string) (MessageEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.histories[chatID]; !ok {
		return MessageEntry{}, errors.ChatNotFound(chatID)
	}
	msg := MessageEntry{
		ID:        m.nextMsgID,
		ChatID:    chatID,
		SenderID:  m.selfID,
		Text:      text,
		Timestamp: time.Now(),
		Outgoing:  true,
	}
	m.nextMsgID++
	m.histories[chatID] = append(m.histories[chatID], msg)
	return msg, nil
}

// Incoming exposes the simulated-traffic stream, satisfying Streamer.
func (m *Memory) Incoming() <-chan MessageEntry {
	return m.incoming
}

// Deliver simulates an incoming message: it is appended to the chat's
// history and pushed onto the incoming stream.
func (m *Memory) Deliver(chatID int64, text string) error {
	m.mu.Lock()
	history, ok := m.histories[chatID]
	if !ok {
		m.mu.Unlock()
		return errors.ChatNotFound(chatID)
	}
	msg := MessageEntry{
		ID:        m.nextMsgID,
		ChatID:    chatID,
		SenderID:  chatID,
		Text:      text,
		Timestamp: time.Now(),
	}
	m.nextMsgID++
	m.histories[chatID] = append(history, msg)
	m.mu.Unlock()

	m.incoming <- msg
	return nil
}

var demoLines = []string{
	"did you see the latest build?",
	"running a bit late, start without me",
	"that fix worked, thanks!",
	"can you review my branch when you get a chance?",
	"lunch?",
}

// StartTraffic delivers a random demo message to a random chat on each tick
// until ctx is cancelled.
func (m *Memory) StartTraffic(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.mu.Lock()
				if len(m.chats) == 0 {
					m.mu.Unlock()
					continue
				}
				chatID := m.chats[rand.Intn(len(m.chats))].ID
				m.mu.Unlock()
				_ = m.Deliver(chatID, demoLines[rand.Intn(len(demoLines))])
			}
		}
	}()
}
