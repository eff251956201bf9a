package chat

import (
	"context"
	"errors"
	"log"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/logging"
	"github.com/parleychat/parley/internal/infrastructure/metrics"
)

// EventPublisher pushes room lifecycle events onto the message bus. A nil
// publisher disables eventing; every service tolerates that.
type EventPublisher interface {
	PublishRoomCreated(ctx context.Context, room string) error
	PublishMemberJoined(ctx context.Context, room, name string) error
	PublishMemberLeft(ctx context.Context, room, name string) error
	PublishChatArchived(ctx context.Context, room, recordID string) error
}

// Directory owns room-code allocation and existence checks.
type Directory struct {
	store     domain.RoomStore
	logger    logging.Logger
	publisher EventPublisher
}

func NewDirectory(store domain.RoomStore, logger logging.Logger, publisher EventPublisher) *Directory {
	return &Directory{
		store:     store,
		logger:    logger,
		publisher: publisher,
	}
}

// CreateRoom samples codes until one claims successfully, then returns it
// with empty members and messages already initialized. The claim itself is
// create-if-absent, so a concurrent creator racing on the same code loses
// cleanly and this loop just draws again.
func (d *Directory) CreateRoom(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		code, err := domain.NewRoomCode()
		if err != nil {
			return "", err
		}

		err = d.store.CreateRoom(ctx, code)
		if errors.Is(err, domain.ErrRoomAlreadyExists) {
			continue
		}
		if err != nil {
			return "", err
		}

		metrics.RoomsCreated.Inc()
		d.logger.Info(logging.Realtime, logging.Directory, "room created", map[logging.ExtraKey]any{
			logging.RoomCode: code,
		})

		if d.publisher != nil {
			if err := d.publisher.PublishRoomCreated(ctx, code); err != nil {
				log.Printf("Error publishing room created: %v\n", err)
			}
		}

		return code, nil
	}
}

// Exists is a pure existence check with no side effect.
func (d *Directory) Exists(ctx context.Context, code string) (bool, error) {
	return d.store.Exists(ctx, code)
}
