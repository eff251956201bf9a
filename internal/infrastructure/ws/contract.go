package ws

import "github.com/parleychat/parley/internal/domain"

// Event is the envelope for everything pushed to clients.
type Event struct {
	Type   string `json:"type"`
	RoomID string `json:"room"`
	Data   any    `json:"data"`
}

// Inbound is the shape of a raw inbound frame: a chat message body.
type Inbound struct {
	Data string `json:"data"`
}

// Payload structs
type MemberListPayload struct {
	Members []string `json:"members"`
}

type MessageLogPayload struct {
	Messages []domain.Message `json:"messages"`
}

func NewChatMessage(roomID string, msg domain.Message) *Event {
	return &Event{
		Type:   ChatMessage,
		RoomID: roomID,
		Data:   msg,
	}
}

func NewMemberList(roomID string, members []string) *Event {
	return &Event{
		Type:   Members,
		RoomID: roomID,
		Data:   MemberListPayload{Members: members},
	}
}

func NewPreviousMessages(roomID string, messages []domain.Message) *Event {
	return &Event{
		Type:   PreviousMessages,
		RoomID: roomID,
		Data:   MessageLogPayload{Messages: messages},
	}
}
