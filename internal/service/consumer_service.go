package service

import (
	"context"

	"marknote-be/internal/pkg/logger"
	"marknote-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventRelay forwards events to NATS JetStream or live websocket clients.
type EventRelay interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	relays     []EventRelay
	logger     logger.ILogger
}

// NewConsumerService drains the resource event topic and hands every event
// to each relay in order. With no relays events are only logged.
func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	relays []EventRelay,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		relays:     relays,
		logger:     logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	event, err := events.Decode(msg.Payload)
	if err != nil {
		cs.logger.Error("EVENTS", "Dropping undecodable event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Redelivery cannot fix a bad payload.
		msg.Ack()
		return
	}

	cs.logger.Info("EVENTS", event.EventType(), event.Payload())

	for _, relay := range cs.relays {
		if err := relay.Publish(ctx, event); err != nil {
			cs.logger.Warn("EVENTS", "Failed to relay event", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}

	msg.Ack()
}
