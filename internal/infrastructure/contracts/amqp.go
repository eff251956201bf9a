package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	Room string `json:"room"`
	Data []byte `json:"data"`
}

// Routing keys - using consistent event/command patterns
const (
	EventRoomCreated  = "room.created"
	EventMemberJoined = "member.joined"
	EventMemberLeft   = "member.left"
	EventChatArchived = "chat.archived"
)
