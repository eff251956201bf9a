package chat

import (
	"context"
	"time"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/logging"
	"github.com/parleychat/parley/internal/infrastructure/metrics"
	"github.com/parleychat/parley/internal/infrastructure/ws"
)

// Router validates inbound messages against their session binding, fans them
// out, and appends them to the room's log. Broadcast happens before the
// durable append so delivery latency never waits on the store.
type Router struct {
	store  domain.RoomStore
	rooms  *ws.RoomManager
	logger logging.Logger
	now    func() time.Time
}

func NewRouter(store domain.RoomStore, rooms *ws.RoomManager, logger logging.Logger) *Router {
	return &Router{
		store:  store,
		rooms:  rooms,
		logger: logger,
		now:    time.Now,
	}
}

// HandleIncoming accepts any string as a message body, including the empty
// one. Unknown rooms and invalid bindings are silent no-ops.
func (r *Router) HandleIncoming(ctx context.Context, sess domain.Session, text string) {
	if !sess.Valid() {
		return
	}

	exists, err := r.store.Exists(ctx, sess.Room)
	if err != nil || !exists {
		return
	}

	msg := domain.NewMessage(sess.Name, text, r.now())

	r.rooms.Broadcast(ws.NewChatMessage(sess.Room, msg))
	metrics.MessagesBroadcast.Inc()

	if err := r.store.AppendMessage(ctx, sess.Room, msg); err != nil {
		// The room already saw this message; the log did not. Peers and the
		// transcript have diverged.
		metrics.StoreAppendFailures.Inc()
		r.logger.Error(logging.Realtime, logging.Broadcast, "append failed after broadcast", map[logging.ExtraKey]any{
			logging.RoomCode:     sess.Room,
			logging.DisplayName:  sess.Name,
			logging.ErrorMessage: err.Error(),
		})
	}
}
