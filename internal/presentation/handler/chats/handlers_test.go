package chats

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/logging"
	"github.com/parleychat/parley/internal/persistence/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Init() {}

func (nopLogger) Debug(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Debugf(string, ...any)                                                         {}
func (nopLogger) Info(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Infof(string, ...any)                                                          {}
func (nopLogger) Warn(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Warnf(string, ...any)                                                          {}
func (nopLogger) Error(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Errorf(string, ...any)                                                         {}
func (nopLogger) Fatal(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Fatalf(string, ...any)                                                         {}

type memoryArchive struct {
	records []*domain.ArchiveRecord
}

func (a *memoryArchive) Insert(_ context.Context, record *domain.ArchiveRecord) error {
	a.records = append(a.records, record)
	return nil
}

func saveChat(t *testing.T, handler *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, "/api/save-chat", bytes.NewReader(payload))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SaveChatHandler(w, r)
	return w
}

func TestSaveChat(t *testing.T) {
	store := repository.NewMemoryRoomStore()
	archive := &memoryArchive{}
	handler := NewHandler(chat.NewArchiver(store, archive, nopLogger{}, nil))

	require.NoError(t, store.CreateRoom(context.Background(), "ABCDEF"))
	require.NoError(t, store.AppendMessage(context.Background(), "ABCDEF", domain.NewMessage("alice", "hi", time.Now())))

	w := saveChat(t, handler, map[string]string{"room": "ABCDEF"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Chat saved successfully", resp["message"])
	assert.NotEmpty(t, resp["id"])

	require.Len(t, archive.records, 1)
	assert.Equal(t, "ABCDEF", archive.records[0].RoomID)
	require.Len(t, archive.records[0].Messages, 1)
}

func TestSaveChatUnknownRoom(t *testing.T) {
	handler := NewHandler(chat.NewArchiver(repository.NewMemoryRoomStore(), &memoryArchive{}, nopLogger{}, nil))

	w := saveChat(t, handler, map[string]string{"room": "NOROOM"})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Room does not exist", resp["error"])
}

func TestSaveChatRequiresRoom(t *testing.T) {
	handler := NewHandler(chat.NewArchiver(repository.NewMemoryRoomStore(), &memoryArchive{}, nopLogger{}, nil))

	w := saveChat(t, handler, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
