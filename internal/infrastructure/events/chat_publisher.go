package events

import (
	"context"
	"encoding/json"

	"github.com/parleychat/parley/internal/infrastructure/contracts"
	"github.com/parleychat/parley/internal/infrastructure/messaging"
)

type ChatPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewChatPublisher(rabbitmq *messaging.RabbitMQ) *ChatPublisher {
	return &ChatPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *ChatPublisher) PublishRoomCreated(ctx context.Context, room string) error {
	return p.publish(ctx, contracts.EventRoomCreated, messaging.ChatEventData{Room: room})
}

func (p *ChatPublisher) PublishMemberJoined(ctx context.Context, room, name string) error {
	return p.publish(ctx, contracts.EventMemberJoined, messaging.ChatEventData{Room: room, Name: name})
}

func (p *ChatPublisher) PublishMemberLeft(ctx context.Context, room, name string) error {
	return p.publish(ctx, contracts.EventMemberLeft, messaging.ChatEventData{Room: room, Name: name})
}

func (p *ChatPublisher) PublishChatArchived(ctx context.Context, room, recordID string) error {
	return p.publish(ctx, contracts.EventChatArchived, messaging.ChatEventData{Room: room, RecordID: recordID})
}

func (p *ChatPublisher) publish(ctx context.Context, routingKey string, payload messaging.ChatEventData) error {
	eventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, routingKey, contracts.AmqpMessage{
		Room: payload.Room,
		Data: eventJSON,
	})
}
