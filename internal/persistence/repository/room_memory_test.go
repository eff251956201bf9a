package repository

import (
	"context"
	"testing"
	"time"

	"github.com/parleychat/parley/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomClaimsCodeOnce(t *testing.T) {
	store := NewMemoryRoomStore()
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))
	assert.ErrorIs(t, store.CreateRoom(ctx, "ABCDEF"), domain.ErrRoomAlreadyExists)

	members, err := store.Members(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.Empty(t, members)

	messages, err := store.Messages(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestUnknownRoomReads(t *testing.T) {
	store := NewMemoryRoomStore()
	ctx := context.Background()

	_, err := store.Members(ctx, "NOROOM")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = store.Messages(ctx, "NOROOM")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = store.UpdateMembers(ctx, "NOROOM", func(map[string]bool) {})
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	err = store.AppendMessage(ctx, "NOROOM", domain.NewMessage("alice", "hi", time.Now()))
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestUpdateMembersReturnsPostUpdateSnapshot(t *testing.T) {
	store := NewMemoryRoomStore()
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))

	snapshot, err := store.UpdateMembers(ctx, "ABCDEF", func(members map[string]bool) {
		members["alice"] = true
	})
	require.NoError(t, err)
	assert.True(t, snapshot["alice"])

	// The snapshot is a copy; mutating it must not leak into the store.
	snapshot["bob"] = true

	members, err := store.Members(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.NotContains(t, members, "bob")
}

func TestAppendMessagePreservesOrder(t *testing.T) {
	store := NewMemoryRoomStore()
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))

	for _, body := range []string{"first", "second", "third"} {
		require.NoError(t, store.AppendMessage(ctx, "ABCDEF", domain.NewMessage("alice", body, time.Now())))
	}

	messages, err := store.Messages(ctx, "ABCDEF")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Body)
	assert.Equal(t, "second", messages[1].Body)
	assert.Equal(t, "third", messages[2].Body)
}
