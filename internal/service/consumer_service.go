package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"os-help-bot/internal/entity"
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/internal/repository/unitofwork"
	"os-help-bot/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventForwarder ships events off-process; implemented by nats.Publisher.
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	forwarder  EventForwarder               // optional
	uowFactory unitofwork.RepositoryFactory // optional
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	forwarder EventForwarder,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		forwarder:  forwarder,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

// Consume subscribes and processes turn events until ctx is done or the
// subscriber is closed.
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
	// Always Ack: a failed side effect is logged, not redelivered.
	defer msg.Ack()

	var event events.TurnResolved
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("EVENTS", "Failed to unmarshal turn event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	cs.logger.Info("EVENTS", "Turn resolved", map[string]interface{}{
		"turn_id":     event.TurnID,
		"user_id":     event.UserID,
		"path":        event.Path,
		"state":       event.State,
		"sources":     event.Sources,
		"duration_ms": event.DurationMs,
	})

	if cs.forwarder != nil {
		fctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := cs.forwarder.Publish(fctx, event); err != nil {
			cs.logger.Warn("EVENTS", "Failed to forward turn event", map[string]interface{}{
				"turn_id": event.TurnID,
				"error":   err.Error(),
			})
		}
		cancel()
	}

	if cs.uowFactory != nil {
		if err := cs.saveTranscript(ctx, event); err != nil {
			cs.logger.Error("EVENTS", "Failed to store transcript", map[string]interface{}{
				"turn_id": event.TurnID,
				"error":   err.Error(),
			})
		}
	}
}

func (cs *consumerService) saveTranscript(ctx context.Context, event events.TurnResolved) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	repo := uow.TranscriptRepository()
	rows := []*entity.SupportMessage{
		{
			TurnId:    event.TurnID,
			UserId:    event.UserID,
			Role:      entity.RoleUser,
			Content:   event.Message,
			CreatedAt: event.OccurredAt,
		},
		{
			TurnId:  event.TurnID,
			UserId:  event.UserID,
			Role:    entity.RoleBot,
			Content: event.Reply,
			Path:    event.Path,
			Sources: event.Sources,
			Links:   event.Links,
			// Keeps the bot row after the user row when ordering by time
			CreatedAt: event.OccurredAt.Add(time.Millisecond),
		},
	}
	for _, row := range rows {
		if err := repo.Create(ctx, row); err != nil {
			_ = uow.Rollback()
			return fmt.Errorf("create %s message: %w", row.Role, err)
		}
	}

	return uow.Commit()
}
