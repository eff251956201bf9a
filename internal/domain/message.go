package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is the wire and storage format for message timestamps.
// Second precision, recorded at server receipt.
const TimestampLayout = "2006-01-02 15:04:05"

var ErrArchiveFailed = errors.New("archive write failed")

// Message is one chat message. Immutable once appended; the body is
// arbitrary client-supplied text and is not sanitized here.
type Message struct {
	Name      string `json:"name" bson:"name"`
	Body      string `json:"message" bson:"message"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
}

func NewMessage(name, body string, at time.Time) Message {
	return Message{
		Name:      name,
		Body:      body,
		Timestamp: at.Format(TimestampLayout),
	}
}

// ArchiveRecord is a durable point-in-time copy of a room's message log.
// Every export produces a fresh record; records are never updated.
type ArchiveRecord struct {
	ID         string    `bson:"_id" json:"id"`
	RoomID     string    `bson:"room_id" json:"roomId"`
	Messages   []Message `bson:"messages" json:"messages"`
	ArchivedAt time.Time `bson:"archived_at" json:"archivedAt"`
}

type ArchiveRepository interface {
	Insert(ctx context.Context, record *ArchiveRecord) error
}

func NewArchiveRecord(roomCode string, messages []Message) *ArchiveRecord {
	return &ArchiveRecord{
		ID:         uuid.NewString(),
		RoomID:     roomCode,
		Messages:   messages,
		ArchivedAt: time.Now(),
	}
}
