package tg

import (
	"context"
	"log/slog"

	"github.com/solvere/gram/internal/event"
	"github.com/solvere/gram/internal/logger"
)

// Client is the backend boundary. Implementations talk to the real chat
// network; Memory fakes one for tests and demo runs.
type Client interface {
	// LoadChats returns up to limit chats from the given list, most recent
	// activity first.
	LoadChats(ctx context.Context, list ChatList, limit int) ([]Chat, error)
	// ChatHistory returns the most recent limit messages of a chat in
	// chronological order.
	ChatHistory(ctx context.Context, chatID int64, limit int) ([]MessageEntry, error)
	// ViewMessages marks the chat's loaded messages as displayed.
	ViewMessages(ctx context.Context, chatID int64) error
	// SendMessage delivers text to a chat and returns the echoed message.
	SendMessage(ctx context.Context, chatID int64, text string) (MessageEntry, error)
}

// Streamer is implemented by clients that push unsolicited incoming
// messages. The Service consumes the stream when present.
type Streamer interface {
	Incoming() <-chan MessageEntry
}

// Service drains the request mailbox, calls the client, writes results into
// the store, and posts DataArrived into the event stream so the main loop
// learns that a redraw is worthwhile. Request failures are logged and
// swallowed; a fire-and-forget request has nobody to return an error to.
type Service struct {
	store  *Context
	client Client
	post   func(event.Event)
	log    *slog.Logger
	done   chan struct{}
}

// NewService wires a Service to the store, a client, and the event sink.
// post is typically Terminal.Post.
func NewService(store *Context, client Client, post func(event.Event)) *Service {
	return &Service{
		store:  store,
		client: client,
		post:   post,
		log:    logger.ComponentLogger("Service"),
		done:   make(chan struct{}),
	}
}

// Start launches the request consumer and, when the client streams incoming
// traffic, a second consumer for that. Both stop when ctx is cancelled or
// their source channel closes.
func (s *Service) Start(ctx context.Context) {
	go s.consumeRequests(ctx)
	if streamer, ok := s.client.(Streamer); ok {
		go s.consumeIncoming(ctx, streamer.Incoming())
	}
}

// Done is closed when the request consumer has exited.
func (s *Service) Done() <-chan struct{} {
	return s.done
}

func (s *Service) consumeRequests(ctx context.Context) {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return
		case req, ok := <-s.store.Requests():
			if !ok {
				return
			}
			s.handle(ctx, req)
		}
	}
}

func (s *Service) handle(ctx context.Context, req Request) {
	switch r := req.(type) {
	case LoadChats:
		chats, err := s.client.LoadChats(ctx, r.List, r.Limit)
		if err != nil {
			s.log.Warn("load chats failed", "request_id", r.RequestID(), "error", err)
			return
		}
		s.store.SetChats(chats)
		s.post(event.DataArrived{Kind: event.DataChats})

	case GetChatHistory:
		msgs, err := s.client.ChatHistory(ctx, r.ChatID, r.Limit)
		if err != nil {
			s.log.Warn("chat history failed", "request_id", r.RequestID(), "chat_id", r.ChatID, "error", err)
			return
		}
		s.store.SetMessages(r.ChatID, msgs)
		s.post(event.DataArrived{Kind: event.DataHistory, ChatID: r.ChatID})

	case ViewMessages:
		if err := s.client.ViewMessages(ctx, r.ChatID); err != nil {
			s.log.Warn("view messages failed", "request_id", r.RequestID(), "chat_id", r.ChatID, "error", err)
			return
		}
		s.clearUnread(r.ChatID)
		s.post(event.DataArrived{Kind: event.DataRead, ChatID: r.ChatID})

	case SendMessage:
		msg, err := s.client.SendMessage(ctx, r.ChatID, r.Text)
		if err != nil {
			s.log.Warn("send message failed", "request_id", r.RequestID(), "chat_id", r.ChatID, "error", err)
			return
		}
		s.store.AppendMessage(msg)
		s.updateLastMessage(msg, false)
		s.post(event.DataArrived{Kind: event.DataSent, ChatID: r.ChatID})

	default:
		s.log.Warn("unhandled request", "request_id", req.RequestID())
	}
}

func (s *Service) consumeIncoming(ctx context.Context, in <-chan MessageEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			s.store.AppendMessage(msg)
			s.updateLastMessage(msg, true)
			s.post(event.DataArrived{Kind: event.DataIncoming, ChatID: msg.ChatID})
		}
	}
}

// updateLastMessage refreshes the index row for the message's chat so the
// list preview and unread badge stay current without a full reload.
func (s *Service) updateLastMessage(msg MessageEntry, unread bool) {
	chats, ready := s.store.ChatsIndex()
	if !ready {
		return
	}
	openID, _ := s.store.OpenChat()
	for i := range chats {
		if chats[i].ID != msg.ChatID {
			continue
		}
		m := msg
		chats[i].LastMessage = &m
		if unread && msg.ChatID != openID {
			chats[i].UnreadCount++
		}
		s.store.SetChats(chats)
		return
	}
}

func (s *Service) clearUnread(chatID int64) {
	chats, ready := s.store.ChatsIndex()
	if !ready {
		return
	}
	for i := range chats {
		if chats[i].ID != chatID {
			continue
		}
		chats[i].UnreadCount = 0
		chats[i].MarkedUnread = false
		s.store.SetChats(chats)
		return
	}
}
