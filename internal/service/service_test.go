package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"os-help-bot/internal/dto"
	"os-help-bot/internal/entity"
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/internal/repository/contract"
	"os-help-bot/internal/repository/memory"
	"os-help-bot/internal/repository/specification"
	"os-help-bot/internal/repository/unitofwork"
	"os-help-bot/pkg/events"
	"os-help-bot/pkg/rag/aggregate"
	"os-help-bot/pkg/rag/executor"
	"os-help-bot/pkg/rag/session"
	"os-help-bot/pkg/rag/state"
	"os-help-bot/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubPipeline struct {
	reply *executor.Reply
	err   error
}

func (s stubPipeline) HandleIncoming(ctx context.Context, userID, message string) (*executor.Reply, error) {
	return s.reply, s.err
}

type recordingForwarder struct {
	got chan events.Event
}

func (r *recordingForwarder) Publish(ctx context.Context, event events.Event) error {
	r.got <- event
	return nil
}

// In-memory transcript store behind the unit-of-work contract.
type memoryTranscript struct {
	mu       sync.Mutex
	rows     []*entity.SupportMessage
	failNext bool
}

func (m *memoryTranscript) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &memoryUnit{store: m}
}

type memoryUnit struct {
	store   *memoryTranscript
	pending []*entity.SupportMessage
}

func (u *memoryUnit) Begin(ctx context.Context) error { return nil }

func (u *memoryUnit) Commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.rows = append(u.store.rows, u.pending...)
	return nil
}

func (u *memoryUnit) Rollback() error {
	u.pending = nil
	return nil
}

func (u *memoryUnit) TranscriptRepository() contract.TranscriptRepository {
	return u
}

func (u *memoryUnit) Create(ctx context.Context, message *entity.SupportMessage) error {
	u.store.mu.Lock()
	fail := u.store.failNext
	u.store.failNext = false
	u.store.mu.Unlock()
	if fail {
		return errors.New("insert failed")
	}
	u.pending = append(u.pending, message)
	return nil
}

// matches applies the filter specs the service uses; ordering and paging are
// left to FindAll.
func matches(m *entity.SupportMessage, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch f := spec.(type) {
		case specification.ByUserID:
			if m.UserId != f.UserID {
				return false
			}
		case specification.ByRole:
			if m.Role != f.Role {
				return false
			}
		case specification.ByTurnID:
			if m.TurnId != f.TurnID {
				return false
			}
		}
	}
	return true
}

// FindAll returns newest first, as the real query does.
func (u *memoryUnit) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SupportMessage, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	limit := len(u.store.rows)
	for _, spec := range specs {
		if p, ok := spec.(specification.Pagination); ok && p.Limit > 0 {
			limit = p.Limit
		}
	}
	out := make([]*entity.SupportMessage, 0, len(u.store.rows))
	for i := len(u.store.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if matches(u.store.rows[i], specs) {
			out = append(out, u.store.rows[i])
		}
	}
	return out, nil
}

func (u *memoryUnit) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	var n int64
	for _, row := range u.store.rows {
		if matches(row, specs) {
			n++
		}
	}
	return n, nil
}

func (u *memoryUnit) DeleteByUserId(ctx context.Context, userId string) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	kept := u.store.rows[:0]
	for _, row := range u.store.rows {
		if row.UserId != userId {
			kept = append(kept, row)
		}
	}
	u.store.rows = kept
	return nil
}

func (m *memoryTranscript) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func newSessions() *session.Manager {
	return session.NewManager(memory.NewSessionRepository(), logger.NewNopLogger())
}

func TestSendMessagePublishesTurnAndStoresTranscript(t *testing.T) {
	log := logger.NewNopLogger()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	transcript := &memoryTranscript{}
	forwarder := &recordingForwarder{got: make(chan events.Event, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumer := NewConsumerService(pubSub, "turns", forwarder, transcript, log)
	require.NoError(t, consumer.Consume(ctx))

	pipeline := stubPipeline{reply: &executor.Reply{
		Text:  "Based on your OS (linux), here's what I found:\nx",
		Links: "- https://a\n- https://b",
		Path:  executor.PathMultiSource,
		State: store.StateReady,
		Candidates: []aggregate.Candidate{
			{Source: aggregate.SourceExtractiveQA, Text: "x"},
		},
	}}
	svc := NewChatbotService(pipeline, newSessions(), NewPublisherService("turns", pubSub), transcript, log)

	res, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{UserId: "u1", Message: "what is a kernel"})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a", "https://b"}, res.Links)
	assert.Equal(t, []string{aggregate.SourceExtractiveQA}, res.Sources)

	select {
	case evt := <-forwarder.got:
		assert.Equal(t, events.TypeTurnResolved, evt.EventType())
		assert.Equal(t, res.TurnId, evt.(events.TurnResolved).TurnID)
	case <-time.After(2 * time.Second):
		t.Fatal("turn event was not forwarded")
	}

	require.Eventually(t, func() bool { return transcript.count() == 2 }, 2*time.Second, 10*time.Millisecond)

	transcriptRes, err := svc.GetTranscript(context.Background(), "u1", dto.TranscriptQuery{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, transcriptRes.Total)
	msgs := transcriptRes.Messages
	require.Len(t, msgs, 2)
	assert.Equal(t, entity.RoleUser, msgs[0].Role)
	assert.Equal(t, "what is a kernel", msgs[0].Content)
	assert.Equal(t, entity.RoleBot, msgs[1].Role)
	assert.Equal(t, executor.PathMultiSource, msgs[1].Path)

	bots, err := svc.GetTranscript(context.Background(), "u1", dto.TranscriptQuery{Role: entity.RoleBot, TurnId: res.TurnId.String()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, bots.Total)
	require.Len(t, bots.Messages, 1)
	assert.Equal(t, res.TurnId, bots.Messages[0].TurnId)

	_, err = svc.GetTranscript(context.Background(), "u1", dto.TranscriptQuery{TurnId: "not-a-uuid"})
	assert.Error(t, err)

	require.NoError(t, svc.PurgeTranscript(context.Background(), "u1"))
	assert.Equal(t, 0, transcript.count())
}

func TestSendMessagePropagatesPipelineError(t *testing.T) {
	svc := NewChatbotService(stubPipeline{err: state.ErrSessionReady}, newSessions(), nil, nil, logger.NewNopLogger())

	_, err := svc.SendMessage(context.Background(), &dto.SendMessageRequest{UserId: "u1", Message: "hi"})
	assert.ErrorIs(t, err, state.ErrSessionReady)
}

func TestSessionEndpoints(t *testing.T) {
	sessions := newSessions()
	svc := NewChatbotService(stubPipeline{}, sessions, nil, nil, logger.NewNopLogger())

	res, err := svc.GetSession(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, store.StateAwaitingOS, res.State)

	s := sessions.LoadOrCreate("u1")
	s.Lock()
	s.OSLabel, s.OSLabelSet = "linux", true
	s.Unlock()

	res, err = svc.GetSession(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, store.StateAwaitingHelpType, res.State)
	assert.Equal(t, "linux", res.OSLabel)

	res, err = svc.ResetSession(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, store.StateAwaitingOS, res.State)
	assert.Empty(t, res.OSLabel)

	health := svc.Health(context.Background())
	assert.Equal(t, 1, health.ActiveSessions)
	assert.False(t, health.Transcript)
}

func TestGetTranscriptDisabled(t *testing.T) {
	svc := NewChatbotService(stubPipeline{}, newSessions(), nil, nil, logger.NewNopLogger())

	_, err := svc.GetTranscript(context.Background(), "u1", dto.TranscriptQuery{Limit: 10})
	assert.ErrorIs(t, err, ErrTranscriptDisabled)
	assert.ErrorIs(t, svc.PurgeTranscript(context.Background(), "u1"), ErrTranscriptDisabled)
}

func TestSplitLinks(t *testing.T) {
	assert.Nil(t, splitLinks(""))
	assert.Equal(t, []string{"https://a", "https://b"}, splitLinks("- https://a\n- https://b\n"))
}
