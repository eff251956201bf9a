package chat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/parleychat/parley/internal/infrastructure/logging"
	"github.com/parleychat/parley/internal/infrastructure/ws"
)

type nopLogger struct{}

func (nopLogger) Init() {}

func (nopLogger) Debug(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Debugf(string, ...any)                                                         {}
func (nopLogger) Info(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Infof(string, ...any)                                                          {}
func (nopLogger) Warn(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any)  {}
func (nopLogger) Warnf(string, ...any)                                                          {}
func (nopLogger) Error(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Errorf(string, ...any)                                                         {}
func (nopLogger) Fatal(logging.Category, logging.SubCategory, string, map[logging.ExtraKey]any) {}
func (nopLogger) Fatalf(string, ...any)                                                         {}

type publishedEvent struct {
	Kind string
	Room string
	Name string
}

// recordingPublisher captures lifecycle events instead of touching a broker.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) record(kind, room, name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Kind: kind, Room: room, Name: name})
}

func (p *recordingPublisher) PublishRoomCreated(_ context.Context, room string) error {
	p.record("room.created", room, "")
	return nil
}

func (p *recordingPublisher) PublishMemberJoined(_ context.Context, room, name string) error {
	p.record("member.joined", room, name)
	return nil
}

func (p *recordingPublisher) PublishMemberLeft(_ context.Context, room, name string) error {
	p.record("member.left", room, name)
	return nil
}

func (p *recordingPublisher) PublishChatArchived(_ context.Context, room, recordID string) error {
	p.record("chat.archived", room, recordID)
	return nil
}

func (p *recordingPublisher) all() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]publishedEvent, len(p.events))
	copy(out, p.events)
	return out
}

func newTestClient(room, name string) *ws.Client {
	return ws.NewClient(nil, "test-"+name, room, name)
}

func mustEvent(t *testing.T, ch <-chan *ws.Event, eventType string) *ws.Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Type == eventType {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event type %q not received", eventType)
	return nil
}

func noEvent(t *testing.T, ch <-chan *ws.Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got %q", ev.Type)
	default:
	}
}
