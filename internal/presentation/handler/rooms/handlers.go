package rooms

import (
	"context"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/json"
	"github.com/parleychat/parley/internal/infrastructure/validate"
	"github.com/parleychat/parley/internal/infrastructure/ws"
	"github.com/parleychat/parley/internal/presentation/utils"
)

var validateName = validate.Field("name", validate.Required(), validate.MaxLength(64))

type Handler struct {
	directory *chat.Directory
	presence  *chat.Presence
	router    *chat.Router
	rooms     *ws.RoomManager
}

func NewHandler(
	directory *chat.Directory,
	presence *chat.Presence,
	router *chat.Router,
	rooms *ws.RoomManager,
) *Handler {
	return &Handler{
		directory: directory,
		presence:  presence,
		router:    router,
		rooms:     rooms,
	}
}

// CreateRoomHandler allocates a fresh room code, binds the caller's session
// to it, and returns the pair. The name is self-asserted; nothing checks it
// against other members.
func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := validateName(req.Name); err != nil {
		json.WriteError(w, http.StatusBadRequest, domain.ErrNameRequired, "Name is required")
		return
	}

	code, err := h.directory.CreateRoom(r.Context())
	if err != nil {
		log.Printf("Failed to create room: %v", err)
		json.WriteError(w, http.StatusInternalServerError, err, "Failed to create room")
		return
	}

	sess := domain.Session{Room: code, Name: req.Name}
	utils.SetSessionCookie(w, sess)

	json.Write(w, http.StatusCreated, sessionResponse{Room: code, Name: req.Name})
}

// JoinRoomHandler binds the caller's session to an existing room. An unknown
// code is always RoomNotFound, whatever the supplied name.
func (h *Handler) JoinRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req joinRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := validateName(req.Name); err != nil {
		json.WriteError(w, http.StatusBadRequest, domain.ErrNameRequired, "Name is required")
		return
	}

	exists, err := h.directory.Exists(r.Context(), req.Code)
	if err != nil {
		log.Printf("Failed to join room %s: %v", req.Code, err)
		json.WriteError(w, http.StatusInternalServerError, err, "Failed to join room")
		return
	}
	if !exists {
		json.WriteError(w, http.StatusNotFound, domain.ErrRoomNotFound, "Room does not exist")
		return
	}

	sess := domain.Session{Room: req.Code, Name: req.Name}
	utils.SetSessionCookie(w, sess)

	json.Write(w, http.StatusOK, sessionResponse{Room: req.Code, Name: req.Name})
}

// ConnectHandler upgrades to a websocket and hands the connection to the
// presence manager. The session binding is resolved once, here, and threaded
// through every subsequent presence and message operation. A connection with
// no valid binding stays open but receives nothing; the real-time path
// fails quiet.
func (h *Handler) ConnectHandler(w http.ResponseWriter, r *http.Request) {
	sess := utils.ResolveSession(r)

	conn, err := h.rooms.Upgrade(w, r)
	if err != nil {
		log.Printf("WebSocket upgrade failed for room %s: %v", sess.Room, err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString(), sess.Room, sess.Name)

	go client.WriteMessage()

	// The request context dies with this handler; connection-scoped work
	// gets its own.
	ctx := context.Background()

	h.presence.Connect(ctx, sess, client)

	client.ReadMessage(
		func(text string) {
			h.router.HandleIncoming(ctx, sess, text)
		},
		func() {
			h.presence.Disconnect(ctx, sess, client)
			// Guard-failed clients never joined a delivery group, so
			// Disconnect leaves their send channel open.
			client.CloseSend()
		},
	)
}
