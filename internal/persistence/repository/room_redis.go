package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/parleychat/parley/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	membersField  = "members"
	messagesField = "messages"
)

// redisRoomStore keeps each room in a hash at room:<code> with two
// JSON-encoded fields, members and messages. Read-modify-write on a field is
// serialized by a per-room-per-field mutex, so concurrent mutations within
// this process cannot overwrite each other; cross-process writers still race
// at the hash level, which matches what the store itself guarantees.
type redisRoomStore struct {
	rdb    *redis.Client
	tracer trace.Tracer
	// Per room+field locks spanning the read-modify-write cycle
	locks sync.Map // map[string]*sync.Mutex
}

func NewRedisRoomStore(rdb *redis.Client, tracer trace.Tracer) domain.RoomStore {
	return &redisRoomStore{
		rdb:    rdb,
		tracer: tracer,
	}
}

func roomKey(code string) string {
	return fmt.Sprintf("room:%s", code)
}

func (s *redisRoomStore) fieldLock(code, field string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(code+":"+field, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

func (s *redisRoomStore) CreateRoom(ctx context.Context, code string) error {
	ctx, span := s.tracer.Start(ctx, "roomStore.CreateRoom")
	defer span.End()

	span.SetAttributes(attribute.String("room.code", code))

	// HSetNX is the create-if-absent claim: the first writer wins and a
	// racing creator sees the code as taken.
	claimed, err := s.rdb.HSetNX(ctx, roomKey(code), membersField, "{}").Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to claim room code")
		return err
	}
	if !claimed {
		span.SetAttributes(attribute.Bool("room.claimed", false))
		return domain.ErrRoomAlreadyExists
	}

	if err := s.rdb.HSet(ctx, roomKey(code), messagesField, "[]").Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to initialize message log")
		return err
	}

	span.SetStatus(codes.Ok, "room created")
	return nil
}

func (s *redisRoomStore) Exists(ctx context.Context, code string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "roomStore.Exists")
	defer span.End()

	span.SetAttributes(attribute.String("room.code", code))

	n, err := s.rdb.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "existence check failed")
		return false, err
	}

	return n > 0, nil
}

func (s *redisRoomStore) Members(ctx context.Context, code string) (map[string]bool, error) {
	ctx, span := s.tracer.Start(ctx, "roomStore.Members")
	defer span.End()

	span.SetAttributes(attribute.String("room.code", code))

	members, err := s.readMembers(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read members")
		return nil, err
	}

	span.SetAttributes(attribute.Int("room.member_count", len(members)))
	return members, nil
}

func (s *redisRoomStore) Messages(ctx context.Context, code string) ([]domain.Message, error) {
	ctx, span := s.tracer.Start(ctx, "roomStore.Messages")
	defer span.End()

	span.SetAttributes(attribute.String("room.code", code))

	messages, err := s.readMessages(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read messages")
		return nil, err
	}

	span.SetAttributes(attribute.Int("room.message_count", len(messages)))
	return messages, nil
}

func (s *redisRoomStore) UpdateMembers(ctx context.Context, code string, fn func(members map[string]bool)) (map[string]bool, error) {
	ctx, span := s.tracer.Start(ctx, "roomStore.UpdateMembers")
	defer span.End()

	span.SetAttributes(attribute.String("room.code", code))

	lock := s.fieldLock(code, membersField)
	lock.Lock()
	defer lock.Unlock()

	members, err := s.readMembers(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read members")
		return nil, err
	}

	fn(members)

	data, err := json.Marshal(members)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if err := s.rdb.HSet(ctx, roomKey(code), membersField, data).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write members")
		return nil, err
	}

	span.SetAttributes(attribute.Int("room.member_count", len(members)))
	span.SetStatus(codes.Ok, "members updated")
	return members, nil
}

func (s *redisRoomStore) AppendMessage(ctx context.Context, code string, msg domain.Message) error {
	ctx, span := s.tracer.Start(ctx, "roomStore.AppendMessage")
	defer span.End()

	span.SetAttributes(attribute.String("room.code", code))

	lock := s.fieldLock(code, messagesField)
	lock.Lock()
	defer lock.Unlock()

	messages, err := s.readMessages(ctx, code)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read messages")
		return err
	}

	messages = append(messages, msg)

	data, err := json.Marshal(messages)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := s.rdb.HSet(ctx, roomKey(code), messagesField, data).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write messages")
		return err
	}

	span.SetStatus(codes.Ok, "message appended")
	return nil
}

func (s *redisRoomStore) readMembers(ctx context.Context, code string) (map[string]bool, error) {
	raw, err := s.rdb.HGet(ctx, roomKey(code), membersField).Result()
	if err == redis.Nil {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	members := make(map[string]bool)
	if err := json.Unmarshal([]byte(raw), &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *redisRoomStore) readMessages(ctx context.Context, code string) ([]domain.Message, error) {
	raw, err := s.rdb.HGet(ctx, roomKey(code), messagesField).Result()
	if err == redis.Nil {
		return nil, domain.ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}

	messages := make([]domain.Message, 0)
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
