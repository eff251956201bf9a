package messaging

const (
	ChatEventsQueue = "chat_events"
	DeadLetterQueue = "dead_letter_queue"
)

// ChatEventData is the payload carried by every room lifecycle event.
type ChatEventData struct {
	Room     string `json:"room"`
	Name     string `json:"name,omitempty"`
	RecordID string `json:"recordId,omitempty"`
}
