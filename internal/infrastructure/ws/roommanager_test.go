package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastStaysInRoom(t *testing.T) {
	rm := NewRoomManager()

	alice := NewClient(nil, "a", "ROOM01", "alice")
	bob := NewClient(nil, "b", "ROOM01", "bob")
	carol := NewClient(nil, "c", "ROOM02", "carol")

	rm.AddClient(alice)
	rm.AddClient(bob)
	rm.AddClient(carol)

	rm.Broadcast(NewMemberList("ROOM01", []string{"alice", "bob"}))

	require.Len(t, alice.Send, 1)
	require.Len(t, bob.Send, 1)
	assert.Len(t, carol.Send, 0)

	ev := <-alice.Send
	assert.Equal(t, Members, ev.Type)
	assert.Equal(t, "ROOM01", ev.RoomID)
}

func TestRemoveClientClosesSendChannel(t *testing.T) {
	rm := NewRoomManager()

	alice := NewClient(nil, "a", "ROOM01", "alice")
	rm.AddClient(alice)
	require.Equal(t, 1, rm.ClientCount("ROOM01"))

	rm.RemoveClient(alice)
	assert.Equal(t, 0, rm.ClientCount("ROOM01"))

	_, open := <-alice.Send
	assert.False(t, open)

	// Idempotent, and safe for clients that never joined.
	rm.RemoveClient(alice)
	rm.RemoveClient(NewClient(nil, "b", "ROOM01", "bob"))
}

func TestBroadcastAfterRemoveSkipsClient(t *testing.T) {
	rm := NewRoomManager()

	alice := NewClient(nil, "a", "ROOM01", "alice")
	bob := NewClient(nil, "b", "ROOM01", "bob")
	rm.AddClient(alice)
	rm.AddClient(bob)

	rm.RemoveClient(alice)
	rm.Broadcast(NewMemberList("ROOM01", []string{"bob"}))

	assert.Len(t, bob.Send, 1)
}

func TestDeliverDropsWhenBufferFull(t *testing.T) {
	alice := NewClient(nil, "a", "ROOM01", "alice")

	ev := NewMemberList("ROOM01", nil)
	for i := 0; i < cap(alice.Send)+10; i++ {
		alice.Deliver(ev)
	}

	// Deliver never blocked; the buffer holds exactly its capacity.
	assert.Len(t, alice.Send, cap(alice.Send))
}

func TestCloseSendIsIdempotent(t *testing.T) {
	alice := NewClient(nil, "a", "ROOM01", "alice")

	alice.CloseSend()
	alice.CloseSend()

	_, open := <-alice.Send
	assert.False(t, open)
}
