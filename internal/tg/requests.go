package tg

import "github.com/google/uuid"

// ChatList selects which backend chat folder a LoadChats request targets.
type ChatList int

const (
	ChatListMain ChatList = iota
	ChatListArchive
)

func (l ChatList) String() string {
	switch l {
	case ChatListArchive:
		return "archive"
	default:
		return "main"
	}
}

// Request is a fire-and-forget unit of backend work. Every request carries a
// uuid so log lines for a request's lifecycle can be correlated; callers
// never wait on a reply, results come back through the store and the event
// stream.
type Request interface {
	RequestID() uuid.UUID
	isRequest()
}

type requestID struct {
	ID uuid.UUID
}

func (r requestID) RequestID() uuid.UUID { return r.ID }

func newRequestID() requestID {
	return requestID{ID: uuid.New()}
}

// LoadChats asks the backend for up to Limit chats from the given list,
// replacing the store's chat index wholesale on completion.
type LoadChats struct {
	requestID
	List  ChatList
	Limit int
}

func (LoadChats) isRequest() {}

// NewLoadChats builds a LoadChats request with a fresh correlation id.
func NewLoadChats(list ChatList, limit int) LoadChats {
	return LoadChats{requestID: newRequestID(), List: list, Limit: limit}
}

// GetChatHistory asks for the most recent Limit messages of a chat. Results
// replace the open-chat message buffer when the chat is still open.
type GetChatHistory struct {
	requestID
	ChatID int64
	Limit  int
}

func (GetChatHistory) isRequest() {}

// NewGetChatHistory builds a GetChatHistory request with a fresh correlation id.
func NewGetChatHistory(chatID int64, limit int) GetChatHistory {
	return GetChatHistory{requestID: newRequestID(), ChatID: chatID, Limit: limit}
}

// ViewMessages tells the backend all currently loaded messages of a chat
// have been displayed, clearing its unread state.
type ViewMessages struct {
	requestID
	ChatID int64
}

func (ViewMessages) isRequest() {}

// NewViewMessages builds a ViewMessages request with a fresh correlation id.
func NewViewMessages(chatID int64) ViewMessages {
	return ViewMessages{requestID: newRequestID(), ChatID: chatID}
}

// SendMessage sends Text to a chat. The echoed message is appended to the
// open-chat buffer when it comes back.
type SendMessage struct {
	requestID
	ChatID int64
	Text   string
}

func (SendMessage) isRequest() {}

// NewSendMessage builds a SendMessage request with a fresh correlation id.
func NewSendMessage(chatID int64, text string) SendMessage {
	return SendMessage{requestID: newRequestID(), ChatID: chatID, Text: text}
}
