package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/parleychat/parley/internal/domain"
	"github.com/parleychat/parley/internal/infrastructure/contracts"
	"github.com/parleychat/parley/internal/infrastructure/messaging"
	"github.com/rabbitmq/amqp091-go"
)

var auditEventTypes = map[string]domain.RoomEventType{
	contracts.EventRoomCreated:  domain.EventRoomCreated,
	contracts.EventMemberJoined: domain.EventMemberJoined,
	contracts.EventMemberLeft:   domain.EventMemberLeft,
	contracts.EventChatArchived: domain.EventChatArchived,
}

// chatConsumer drains the chat events queue and records each event as an
// audit document.
type chatConsumer struct {
	rabbitmq  *messaging.RabbitMQ
	auditRepo domain.RoomAuditRepository
}

func NewChatConsumer(rabbitmq *messaging.RabbitMQ, auditRepo domain.RoomAuditRepository) *chatConsumer {
	return &chatConsumer{
		rabbitmq:  rabbitmq,
		auditRepo: auditRepo,
	}
}

func (c *chatConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.ChatEventsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		var payload messaging.ChatEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			log.Printf("Failed to unmarshal event payload: %v", err)
			return err
		}

		eventType, ok := auditEventTypes[msg.RoutingKey]
		if !ok {
			log.Printf("Unknown routing key %q, dropping", msg.RoutingKey)
			return nil
		}

		metadata := map[string]any{}
		if payload.Name != "" {
			metadata["name"] = payload.Name
		}
		if payload.RecordID != "" {
			metadata["record_id"] = payload.RecordID
		}

		return c.auditRepo.Log(ctx, domain.NewAuditLog(payload.Room, eventType, metadata))
	})
}
