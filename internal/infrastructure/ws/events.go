package ws

const (
	// Outbound event types. ChatMessage carries {name, message, timestamp};
	// Members carries the full member-name list; PreviousMessages replays
	// the room's log to a newly connected client.
	ChatMessage      = "message"
	Members          = "members"
	PreviousMessages = "previous-messages"
)
