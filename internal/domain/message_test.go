package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessageFormatsTimestamp(t *testing.T) {
	at := time.Date(2025, 7, 4, 18, 5, 9, 123456789, time.UTC)

	msg := NewMessage("alice", "hello", at)

	assert.Equal(t, "alice", msg.Name)
	assert.Equal(t, "hello", msg.Body)
	assert.Equal(t, "2025-07-04 18:05:09", msg.Timestamp)
}

func TestNewMessageKeepsEmptyBody(t *testing.T) {
	msg := NewMessage("alice", "", time.Now())
	assert.Equal(t, "", msg.Body)
}

func TestNewArchiveRecord(t *testing.T) {
	messages := []Message{
		NewMessage("alice", "hi", time.Now()),
		NewMessage("bob", "hey", time.Now()),
	}

	record := NewArchiveRecord("ABCDEF", messages)

	require.NotNil(t, record)
	assert.NotEmpty(t, record.ID)
	assert.Equal(t, "ABCDEF", record.RoomID)
	assert.Equal(t, messages, record.Messages)
	assert.WithinDuration(t, time.Now(), record.ArchivedAt, time.Minute)

	other := NewArchiveRecord("ABCDEF", messages)
	assert.NotEqual(t, record.ID, other.ID)
}
