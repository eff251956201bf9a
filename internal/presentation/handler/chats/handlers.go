package chats

import (
	"errors"
	"log"
	"net/http"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/json"
)

type Handler struct {
	archiver *chat.Archiver
}

func NewHandler(archiver *chat.Archiver) *Handler {
	return &Handler{archiver: archiver}
}

// SaveChatHandler exports the room's current message log to the archive.
// Repeated calls produce separate records.
func (h *Handler) SaveChatHandler(w http.ResponseWriter, r *http.Request) {
	var req saveChatRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.Room == "" {
		json.WriteError(w, http.StatusBadRequest, domain.ErrRoomCodeRequired, "Room code is required")
		return
	}

	id, err := h.archiver.ExportRoom(r.Context(), req.Room)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			json.WriteError(w, http.StatusNotFound, err, "Room does not exist")
			return
		}
		log.Printf("Failed to save chat for room %s: %v", req.Room, err)
		json.WriteError(w, http.StatusInternalServerError, err, "Failed to save chat")
		return
	}

	json.Write(w, http.StatusOK, saveChatResponse{Message: "Chat saved successfully", ID: id})
}
