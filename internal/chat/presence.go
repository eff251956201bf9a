package chat

import (
	"context"
	"log"
	"sort"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/logging"
	"github.com/parleychat/parley/internal/infrastructure/ws"
)

// Presence translates connection lifecycle into membership mutations and
// broadcast notifications. Both handlers fail quiet: a missing binding or an
// unknown room leaves the connection without presence and surfaces nothing.
type Presence struct {
	store     domain.RoomStore
	rooms     *ws.RoomManager
	logger    logging.Logger
	publisher EventPublisher
}

func NewPresence(store domain.RoomStore, rooms *ws.RoomManager, logger logging.Logger, publisher EventPublisher) *Presence {
	return &Presence{
		store:     store,
		rooms:     rooms,
		logger:    logger,
		publisher: publisher,
	}
}

// Connect joins the client to its room's delivery group, records the name in
// the member set, and sends three things in order: the member list to this
// client, the member list to the whole room, and the message log replay to
// this client. Both member lists come from the same post-join snapshot.
func (p *Presence) Connect(ctx context.Context, sess domain.Session, client *ws.Client) {
	if !p.guard(ctx, sess) {
		return
	}

	p.rooms.AddClient(client)

	members, err := p.store.UpdateMembers(ctx, sess.Room, func(members map[string]bool) {
		members[sess.Name] = true
	})
	if err != nil {
		p.logger.Error(logging.Realtime, logging.Presence, "failed to record join", map[logging.ExtraKey]any{
			logging.RoomCode:     sess.Room,
			logging.DisplayName:  sess.Name,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	names := memberNames(members)
	client.Deliver(ws.NewMemberList(sess.Room, names))
	p.rooms.Broadcast(ws.NewMemberList(sess.Room, names))

	previous, err := p.store.Messages(ctx, sess.Room)
	if err != nil {
		p.logger.Error(logging.Realtime, logging.Presence, "failed to load history", map[logging.ExtraKey]any{
			logging.RoomCode:     sess.Room,
			logging.ErrorMessage: err.Error(),
		})
		return
	}
	client.Deliver(ws.NewPreviousMessages(sess.Room, previous))

	if p.publisher != nil {
		if err := p.publisher.PublishMemberJoined(ctx, sess.Room, sess.Name); err != nil {
			log.Printf("Error publishing member joined: %v\n", err)
		}
	}
}

// Disconnect always detaches the connection from its delivery group, then
// removes the name from the member set and broadcasts the updated list. When
// the name was never present no broadcast happens.
func (p *Presence) Disconnect(ctx context.Context, sess domain.Session, client *ws.Client) {
	p.rooms.RemoveClient(client)

	if !p.guard(ctx, sess) {
		return
	}

	removed := false
	members, err := p.store.UpdateMembers(ctx, sess.Room, func(members map[string]bool) {
		if _, ok := members[sess.Name]; ok {
			delete(members, sess.Name)
			removed = true
		}
	})
	if err != nil {
		p.logger.Error(logging.Realtime, logging.Presence, "failed to record leave", map[logging.ExtraKey]any{
			logging.RoomCode:     sess.Room,
			logging.DisplayName:  sess.Name,
			logging.ErrorMessage: err.Error(),
		})
		return
	}

	if !removed {
		return
	}

	p.rooms.Broadcast(ws.NewMemberList(sess.Room, memberNames(members)))

	if p.publisher != nil {
		if err := p.publisher.PublishMemberLeft(ctx, sess.Room, sess.Name); err != nil {
			log.Printf("Error publishing member left: %v\n", err)
		}
	}
}

func (p *Presence) guard(ctx context.Context, sess domain.Session) bool {
	if !sess.Valid() {
		return false
	}

	exists, err := p.store.Exists(ctx, sess.Room)
	if err != nil {
		p.logger.Error(logging.Realtime, logging.Presence, "existence check failed", map[logging.ExtraKey]any{
			logging.RoomCode:     sess.Room,
			logging.ErrorMessage: err.Error(),
		})
		return false
	}

	return exists
}

func memberNames(members map[string]bool) []string {
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
