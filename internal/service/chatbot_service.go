package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"os-help-bot/internal/dto"
	"os-help-bot/internal/entity"
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/internal/repository/specification"
	"os-help-bot/internal/repository/unitofwork"
	"os-help-bot/pkg/events"
	"os-help-bot/pkg/rag/executor"
	"os-help-bot/pkg/rag/session"
	"os-help-bot/pkg/store"

	"github.com/google/uuid"
)

// ErrTranscriptDisabled is returned by transcript reads when no database is configured.
var ErrTranscriptDisabled = errors.New("transcript store is not configured")

const (
	defaultTranscriptLimit = 50
	maxTranscriptLimit     = 500
)

// IChatbotService defines the chatbot service interface
type IChatbotService interface {
	SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	GetSession(ctx context.Context, userId string) (*dto.SessionResponse, error)
	ResetSession(ctx context.Context, userId string) (*dto.SessionResponse, error)
	GetTranscript(ctx context.Context, userId string, query dto.TranscriptQuery) (*dto.TranscriptResponse, error)
	PurgeTranscript(ctx context.Context, userId string) error
	Health(ctx context.Context) *dto.HealthResponse
}

// TurnHandler resolves one message; implemented by executor.Orchestrator.
type TurnHandler interface {
	HandleIncoming(ctx context.Context, userID, message string) (*executor.Reply, error)
}

type chatbotService struct {
	pipeline   TurnHandler
	sessions   *session.Manager
	publisher  IPublisherService
	uowFactory unitofwork.RepositoryFactory // nil when the transcript is disabled
	logger     logger.ILogger
}

func NewChatbotService(
	pipeline TurnHandler,
	sessions *session.Manager,
	publisher IPublisherService,
	uowFactory unitofwork.RepositoryFactory,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		pipeline:   pipeline,
		sessions:   sessions,
		publisher:  publisher,
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *chatbotService) SendMessage(ctx context.Context, request *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	start := time.Now()

	reply, err := s.pipeline.HandleIncoming(ctx, request.UserId, request.Message)
	if err != nil {
		return nil, fmt.Errorf("handle message: %w", err)
	}

	res := &dto.SendMessageResponse{
		TurnId:  uuid.New(),
		Reply:   reply.Text,
		Links:   splitLinks(reply.Links),
		Path:    reply.Path,
		State:   reply.State,
		Sources: candidateSources(reply),
	}

	// Event delivery is best effort; the user already has an answer.
	if s.publisher != nil {
		event := events.TurnResolved{
			TurnID:     res.TurnId,
			UserID:     request.UserId,
			Message:    request.Message,
			Reply:      res.Reply,
			Path:       res.Path,
			State:      res.State,
			Sources:    res.Sources,
			Links:      res.Links,
			DurationMs: time.Since(start).Milliseconds(),
			OccurredAt: time.Now().UTC(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("CHATBOT", "Failed to publish turn event", map[string]interface{}{
				"turn_id": res.TurnId,
				"error":   err.Error(),
			})
		}
	}

	return res, nil
}

func (s *chatbotService) GetSession(ctx context.Context, userId string) (*dto.SessionResponse, error) {
	snap, ok := s.sessions.Snapshot(userId)
	if !ok {
		// Unknown users are at the start of onboarding.
		return &dto.SessionResponse{UserId: userId, State: store.StateAwaitingOS}, nil
	}
	return toSessionResponse(snap), nil
}

func (s *chatbotService) ResetSession(ctx context.Context, userId string) (*dto.SessionResponse, error) {
	return toSessionResponse(s.sessions.Reset(userId)), nil
}

// GetTranscript returns the newest stored messages of a user, oldest first,
// with the total number of rows matching the filters.
func (s *chatbotService) GetTranscript(ctx context.Context, userId string, query dto.TranscriptQuery) (*dto.TranscriptResponse, error) {
	if s.uowFactory == nil {
		return nil, ErrTranscriptDisabled
	}
	limit := query.Limit
	if limit <= 0 {
		limit = defaultTranscriptLimit
	}
	if limit > maxTranscriptLimit {
		limit = maxTranscriptLimit
	}

	filters := []specification.Specification{specification.ByUserID{UserID: userId}}
	if query.Role != "" {
		filters = append(filters, specification.ByRole{Role: query.Role})
	}
	if query.TurnId != "" {
		turnId, err := uuid.Parse(query.TurnId)
		if err != nil {
			return nil, fmt.Errorf("invalid turn id: %w", err)
		}
		filters = append(filters, specification.ByTurnID{TurnID: turnId})
	}

	repo := s.uowFactory.NewUnitOfWork(ctx).TranscriptRepository()
	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, fmt.Errorf("count transcript: %w", err)
	}
	messages, err := repo.FindAll(ctx, append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit},
	)...)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	// Oldest first for display.
	res := &dto.TranscriptResponse{
		Total:    total,
		Messages: make([]*dto.TranscriptMessageResponse, 0, len(messages)),
	}
	for i := len(messages) - 1; i >= 0; i-- {
		res.Messages = append(res.Messages, toTranscriptResponse(messages[i]))
	}
	return res, nil
}

// PurgeTranscript soft-deletes every stored message of a user.
func (s *chatbotService) PurgeTranscript(ctx context.Context, userId string) error {
	if s.uowFactory == nil {
		return ErrTranscriptDisabled
	}
	if err := s.uowFactory.NewUnitOfWork(ctx).TranscriptRepository().DeleteByUserId(ctx, userId); err != nil {
		return fmt.Errorf("purge transcript: %w", err)
	}
	s.logger.Info("CHATBOT", "Transcript purged", map[string]interface{}{"user_id": userId})
	return nil
}

func (s *chatbotService) Health(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:         "ok",
		ActiveSessions: s.sessions.Active(),
		Transcript:     s.uowFactory != nil,
	}
}

func splitLinks(links string) []string {
	var out []string
	for _, line := range strings.Split(links, "\n") {
		if u := strings.TrimSpace(strings.TrimPrefix(line, "- ")); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func candidateSources(reply *executor.Reply) []string {
	sources := make([]string, 0, len(reply.Candidates))
	for _, c := range reply.Candidates {
		sources = append(sources, c.Source)
	}
	return sources
}

func toSessionResponse(snap store.Snapshot) *dto.SessionResponse {
	return &dto.SessionResponse{
		UserId:      snap.UserID,
		State:       snap.State,
		OSLabel:     snap.OSLabel,
		HelpType:    snap.HelpType,
		AnswerStyle: snap.AnswerStyle,
		CreatedAt:   snap.CreatedAt,
		UpdatedAt:   snap.UpdatedAt,
	}
}

func toTranscriptResponse(m *entity.SupportMessage) *dto.TranscriptMessageResponse {
	return &dto.TranscriptMessageResponse{
		Id:        m.Id,
		TurnId:    m.TurnId,
		Role:      m.Role,
		Content:   m.Content,
		Path:      m.Path,
		Sources:   m.Sources,
		Links:     m.Links,
		CreatedAt: m.CreatedAt,
	}
}
