package chat

import (
	"context"
	"strings"
	"testing"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/persistence/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomAllocatesCode(t *testing.T) {
	store := repository.NewMemoryRoomStore()
	publisher := &recordingPublisher{}
	directory := NewDirectory(store, nopLogger{}, publisher)

	code, err := directory.CreateRoom(context.Background())
	require.NoError(t, err)

	assert.Len(t, code, domain.CodeLength)
	assert.Equal(t, strings.ToUpper(code), code)

	exists, err := store.Exists(context.Background(), code)
	require.NoError(t, err)
	assert.True(t, exists)

	members, err := store.Members(context.Background(), code)
	require.NoError(t, err)
	assert.Empty(t, members)

	messages, err := store.Messages(context.Background(), code)
	require.NoError(t, err)
	assert.Empty(t, messages)

	events := publisher.all()
	require.Len(t, events, 1)
	assert.Equal(t, publishedEvent{Kind: "room.created", Room: code}, events[0])
}

type collidingStore struct {
	*repository.MemoryRoomStore
	collisions int
	attempts   int
}

func (s *collidingStore) CreateRoom(ctx context.Context, code string) error {
	s.attempts++
	if s.attempts <= s.collisions {
		return domain.ErrRoomAlreadyExists
	}
	return s.MemoryRoomStore.CreateRoom(ctx, code)
}

func TestCreateRoomRetriesTakenCodes(t *testing.T) {
	store := &collidingStore{MemoryRoomStore: repository.NewMemoryRoomStore(), collisions: 3}
	directory := NewDirectory(store, nopLogger{}, nil)

	code, err := directory.CreateRoom(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, store.attempts)

	exists, err := store.Exists(context.Background(), code)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateRoomHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	directory := NewDirectory(repository.NewMemoryRoomStore(), nopLogger{}, nil)

	_, err := directory.CreateRoom(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExistsReportsWithoutSideEffects(t *testing.T) {
	store := repository.NewMemoryRoomStore()
	directory := NewDirectory(store, nopLogger{}, nil)

	exists, err := directory.Exists(context.Background(), "ABCDEF")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.CreateRoom(context.Background(), "ABCDEF"))

	exists, err = directory.Exists(context.Background(), "ABCDEF")
	require.NoError(t, err)
	assert.True(t, exists)

	// A malformed code is just an unknown room, not an error.
	exists, err = directory.Exists(context.Background(), "not-a-code")
	require.NoError(t, err)
	assert.False(t, exists)
}
