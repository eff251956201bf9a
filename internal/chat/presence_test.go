package chat

import (
	"context"
	"testing"
	"time"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/ws"
	"github.com/parleychat/parley/internal/persistence/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPresenceFixture(t *testing.T) (*Presence, *repository.MemoryRoomStore, *ws.RoomManager, *recordingPublisher) {
	t.Helper()

	store := repository.NewMemoryRoomStore()
	rooms := ws.NewRoomManager()
	publisher := &recordingPublisher{}
	return NewPresence(store, rooms, nopLogger{}, publisher), store, rooms, publisher
}

func TestConnectDeliversRosterAndHistory(t *testing.T) {
	presence, store, rooms, publisher := newPresenceFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))
	require.NoError(t, store.AppendMessage(ctx, "ABCDEF", domain.NewMessage("bob", "hi", time.Now())))

	alice := newTestClient("ABCDEF", "alice")
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: "alice"}, alice)

	roster := mustEvent(t, alice.Send, ws.Members)
	require.IsType(t, ws.MemberListPayload{}, roster.Data)
	assert.Equal(t, []string{"alice"}, roster.Data.(ws.MemberListPayload).Members)
	assert.Equal(t, "ABCDEF", roster.RoomID)

	// The room-wide broadcast carries the same post-join snapshot.
	broadcast := mustEvent(t, alice.Send, ws.Members)
	assert.Equal(t, roster.Data, broadcast.Data)

	history := mustEvent(t, alice.Send, ws.PreviousMessages)
	require.IsType(t, ws.MessageLogPayload{}, history.Data)
	messages := history.Data.(ws.MessageLogPayload).Messages
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Body)

	assert.Equal(t, 1, rooms.ClientCount("ABCDEF"))

	members, err := store.Members(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.True(t, members["alice"])

	events := publisher.all()
	require.Len(t, events, 1)
	assert.Equal(t, publishedEvent{Kind: "member.joined", Room: "ABCDEF", Name: "alice"}, events[0])
}

func TestConnectBroadcastsRosterToPeers(t *testing.T) {
	presence, store, _, _ := newPresenceFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))

	alice := newTestClient("ABCDEF", "alice")
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: "alice"}, alice)

	// Drain alice's own join-time events: private roster, broadcast roster,
	// history replay.
	mustEvent(t, alice.Send, ws.Members)
	mustEvent(t, alice.Send, ws.Members)
	mustEvent(t, alice.Send, ws.PreviousMessages)

	bob := newTestClient("ABCDEF", "bob")
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: "bob"}, bob)

	roster := mustEvent(t, alice.Send, ws.Members)
	assert.Equal(t, []string{"alice", "bob"}, roster.Data.(ws.MemberListPayload).Members)
}

func TestConnectUnknownRoomIsSilent(t *testing.T) {
	presence, _, rooms, publisher := newPresenceFixture(t)

	ghost := newTestClient("NOROOM", "alice")
	presence.Connect(context.Background(), domain.Session{Room: "NOROOM", Name: "alice"}, ghost)

	noEvent(t, ghost.Send)
	assert.Equal(t, 0, rooms.ClientCount("NOROOM"))
	assert.Empty(t, publisher.all())
}

func TestConnectInvalidBindingIsSilent(t *testing.T) {
	presence, store, rooms, _ := newPresenceFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))

	nameless := newTestClient("ABCDEF", "")
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: ""}, nameless)

	noEvent(t, nameless.Send)
	assert.Equal(t, 0, rooms.ClientCount("ABCDEF"))
}

func TestDisconnectBroadcastsUpdatedRoster(t *testing.T) {
	presence, store, rooms, publisher := newPresenceFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))

	alice := newTestClient("ABCDEF", "alice")
	bob := newTestClient("ABCDEF", "bob")
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: "alice"}, alice)
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: "bob"}, bob)

	// Drain bob's join-time events.
	mustEvent(t, bob.Send, ws.Members)
	mustEvent(t, bob.Send, ws.Members)
	mustEvent(t, bob.Send, ws.PreviousMessages)

	presence.Disconnect(ctx, domain.Session{Room: "ABCDEF", Name: "alice"}, alice)

	roster := mustEvent(t, bob.Send, ws.Members)
	assert.Equal(t, []string{"bob"}, roster.Data.(ws.MemberListPayload).Members)

	assert.Equal(t, 1, rooms.ClientCount("ABCDEF"))

	members, err := store.Members(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.NotContains(t, members, "alice")

	events := publisher.all()
	assert.Equal(t, publishedEvent{Kind: "member.left", Room: "ABCDEF", Name: "alice"}, events[len(events)-1])
}

func TestDisconnectUnknownMemberSkipsBroadcast(t *testing.T) {
	presence, store, _, publisher := newPresenceFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))

	bob := newTestClient("ABCDEF", "bob")
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: "bob"}, bob)
	mustEvent(t, bob.Send, ws.Members)
	mustEvent(t, bob.Send, ws.Members)
	mustEvent(t, bob.Send, ws.PreviousMessages)

	// Alice never connected; her disconnect must not disturb the room.
	stranger := newTestClient("ABCDEF", "alice")
	presence.Disconnect(ctx, domain.Session{Room: "ABCDEF", Name: "alice"}, stranger)

	noEvent(t, bob.Send)

	for _, ev := range publisher.all() {
		assert.NotEqual(t, "member.left", ev.Kind)
	}
}

func TestDisconnectAlwaysDetachesConnection(t *testing.T) {
	presence, store, rooms, _ := newPresenceFixture(t)
	ctx := context.Background()

	require.NoError(t, store.CreateRoom(ctx, "ABCDEF"))

	alice := newTestClient("ABCDEF", "alice")
	presence.Connect(ctx, domain.Session{Room: "ABCDEF", Name: "alice"}, alice)
	require.Equal(t, 1, rooms.ClientCount("ABCDEF"))

	// Even an invalid binding detaches the physical connection.
	presence.Disconnect(ctx, domain.Session{}, alice)
	assert.Equal(t, 0, rooms.ClientCount("ABCDEF"))

	// The member record survives; only a valid binding can remove it.
	members, err := store.Members(ctx, "ABCDEF")
	require.NoError(t, err)
	assert.True(t, members["alice"])
}
