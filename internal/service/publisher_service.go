package service

import (
	"context"
	"encoding/json"
	"fmt"

	"os-help-bot/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService puts resolved turns on the in-process event bus.
type IPublisherService interface {
	Publish(ctx context.Context, event events.TurnResolved) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) Publish(_ context.Context, event events.TurnResolved) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal turn event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_type", event.EventType())
	msg.Metadata.Set("user_id", event.UserID)

	return ps.publisher.Publish(ps.topicName, msg)
}
