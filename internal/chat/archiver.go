package chat

import (
	"context"
	"fmt"
	"log"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/logging"
	"github.com/parleychat/parley/internal/infrastructure/metrics"
)

// Archiver snapshots a room's message log into long-term storage. The live
// room is left untouched; every export writes a fresh, independent record.
type Archiver struct {
	store     domain.RoomStore
	archive   domain.ArchiveRepository
	logger    logging.Logger
	publisher EventPublisher
}

func NewArchiver(store domain.RoomStore, archive domain.ArchiveRepository, logger logging.Logger, publisher EventPublisher) *Archiver {
	return &Archiver{
		store:     store,
		archive:   archive,
		logger:    logger,
		publisher: publisher,
	}
}

// ExportRoom returns the id of the archive record it created.
func (a *Archiver) ExportRoom(ctx context.Context, code string) (string, error) {
	exists, err := a.store.Exists(ctx, code)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.ErrRoomNotFound
	}

	messages, err := a.store.Messages(ctx, code)
	if err != nil {
		return "", err
	}

	record := domain.NewArchiveRecord(code, messages)
	if err := a.archive.Insert(ctx, record); err != nil {
		metrics.ArchiveFailures.Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrArchiveFailed, err)
	}

	metrics.ArchiveExports.Inc()
	a.logger.Info(logging.Realtime, logging.Archive, "room archived", map[logging.ExtraKey]any{
		logging.RoomCode: code,
	})

	if a.publisher != nil {
		if err := a.publisher.PublishChatArchived(ctx, code, record.ID); err != nil {
			log.Printf("Error publishing chat archived: %v\n", err)
		}
	}

	return record.ID, nil
}
